package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type apiError struct {
	Status int
	Code   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Code)
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *client) post(ctx context.Context, path, token string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "telemetry-bot/1")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		return &apiError{Status: resp.StatusCode, Code: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *client) registerParticipant(ctx context.Context) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.post(ctx, "/api/participants", "", map[string]any{"cohort": "bot"}, &out)
	return out.ID, err
}

type startResponse struct {
	SessionID   string `json:"session_id"`
	IngestToken string `json:"ingest_token"`
}

func (c *client) startSession(ctx context.Context, participantID, skill string, seed int64) (startResponse, error) {
	var out startResponse
	err := c.post(ctx, "/api/session/start", "", map[string]any{
		"participant_id": participantID,
		"mode":           "agent",
		"agent_skill":    skill,
		"model_version":  "v1",
		"seed":           seed,
	}, &out)
	return out, err
}

type event struct {
	TMS     int64          `json:"t_ms"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type batchResponse struct {
	Accepted  bool `json:"accepted"`
	Count     int  `json:"count"`
	Duplicate bool `json:"duplicate"`
}

func (c *client) sendBatch(ctx context.Context, token, sessionID, requestID string, events []event) (batchResponse, error) {
	var out batchResponse
	err := c.post(ctx, "/api/events/batch", token, map[string]any{
		"session_id": sessionID,
		"request_id": requestID,
		"events":     events,
	}, &out)
	return out, err
}

func (c *client) endSession(ctx context.Context, sessionID string, durationMS int64, result map[string]any) error {
	return c.post(ctx, "/api/session/end", "", map[string]any{
		"session_id":  sessionID,
		"duration_ms": durationMS,
		"result":      result,
	}, nil)
}

func (c *client) submitGameplay(ctx context.Context, body map[string]any) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.post(ctx, "/api/gameplay", "", body, &out)
	return out.ID, err
}
