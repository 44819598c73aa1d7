package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"game-telemetry/internal/config"
)

type recordingServer struct {
	mu       sync.Mutex
	paths    []string
	tokens   []string
	requests map[string]bool
	events   int
}

func (s *recordingServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, r.URL.Path)
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/participants":
		_, _ = w.Write([]byte(`{"id":"P1"}`))
	case "/api/session/start":
		if body["mode"] != "agent" || body["participant_id"] != "P1" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_request"}`))
			return
		}
		_, _ = w.Write([]byte(`{"session_id":"S1","ingest_token":"tok"}`))
	case "/api/events/batch":
		s.tokens = append(s.tokens, r.Header.Get("Authorization"))
		rid, _ := body["request_id"].(string)
		if s.requests[rid] {
			w.WriteHeader(http.StatusConflict)
			return
		}
		s.requests[rid] = true
		n := len(body["events"].([]any))
		s.events += n
		_ = json.NewEncoder(w).Encode(map[string]any{"accepted": true, "count": n})
	case "/api/session/end":
		_, _ = w.Write([]byte(`{"ok":true}`))
	case "/api/gameplay":
		frames, _ := body["frames"].([]any)
		if len(frames) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"id":"skipped-ai-agent","message":"skipped"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestPlaySessionDrivesFullLifecycle(t *testing.T) {
	rec := &recordingServer{requests: map[string]bool{}}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	cfg := config.BotConfig{APIURL: srv.URL + "/", Nickname: "beginner", Skill: "beginner", Sessions: 1, EventsPerBatch: 4, Batches: 3}
	if err := playSession(context.Background(), newClient(cfg.APIURL), cfg, rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("play session: %v", err)
	}
	want := "/api/participants,/api/session/start,/api/events/batch,/api/events/batch,/api/events/batch,/api/session/end,/api/gameplay"
	if got := strings.Join(rec.paths, ","); got != want {
		t.Fatalf("call sequence:\n got %s\nwant %s", got, want)
	}
	if rec.events != 12 {
		t.Fatalf("events sent = %d, want 12", rec.events)
	}
	for _, tok := range rec.tokens {
		if tok != "Bearer tok" {
			t.Fatalf("batch sent with authorization %q", tok)
		}
	}
}

func TestClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).sendBatch(context.Background(), "tok", "S2", "r", nil)
	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden || apiErr.Code != "forbidden" {
		t.Fatalf("err = %v", err)
	}
}
