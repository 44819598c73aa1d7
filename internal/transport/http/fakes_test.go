package httptransport

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"game-telemetry/internal/store"
)

// memStore is an in-memory stand-in for *store.Store covering every narrow
// interface the services declare.
type memStore struct {
	mu           sync.Mutex
	seq          int
	participants map[string]store.Participant
	sessions     map[string]store.Session
	events       map[string][]store.EventInput
	batches      map[string]int
	gameplays    []store.GamePlay
	replays      map[string]store.Replay
	pingErr      error
}

func newMemStore() *memStore {
	return &memStore{
		participants: map[string]store.Participant{},
		sessions:     map[string]store.Session{},
		events:       map[string][]store.EventInput{},
		batches:      map[string]int{},
		replays:      map[string]store.Replay{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%04d", prefix, m.seq)
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) CreateParticipant(_ context.Context, p store.Participant) (*store.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID("P")
	p.CreatedAt = time.Now().UTC()
	m.participants[p.ID] = p
	return &p, nil
}

func (m *memStore) ParticipantExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.participants[id]
	return ok, nil
}

func (m *memStore) CreateSession(_ context.Context, s store.Session) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.nextID("S")
	m.sessions[s.ID] = s
	return &s, nil
}

func (m *memStore) SessionExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	return ok, nil
}

func (m *memStore) EndSession(_ context.Context, id string, endedAt time.Time, durationMS *int64, result json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return store.ErrNotFound
	}
	if s.EndedAt != nil {
		return store.ErrAlreadyEnded
	}
	s.EndedAt, s.DurationMS, s.Result = &endedAt, durationMS, result
	m.sessions[id] = s
	return nil
}

func (m *memStore) AppendEvents(_ context.Context, sessionID, requestID string, events []store.EventInput) (store.AppendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if requestID != "" {
		if n, ok := m.batches[sessionID+"/"+requestID]; ok {
			return store.AppendResult{Count: n, Duplicate: true}, nil
		}
		m.batches[sessionID+"/"+requestID] = len(events)
	}
	m.events[sessionID] = append(m.events[sessionID], events...)
	return store.AppendResult{Count: len(events)}, nil
}

func (m *memStore) CreateGamePlay(_ context.Context, g store.GamePlay) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = m.nextID("G")
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Unix(1_700_000_000, 0).Add(time.Duration(m.seq) * time.Second).UTC()
	}
	m.gameplays = append(m.gameplays, g)
	return g.ID, nil
}

func (m *memStore) ranked(modelID string) []store.GamePlay {
	var out []store.GamePlay
	for _, g := range m.gameplays {
		if modelID == "" || g.ModelID == modelID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memStore) CountGamePlays(_ context.Context, modelID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ranked(modelID)), nil
}

func (m *memStore) ListGamePlayRankings(_ context.Context, modelID string, limit, offset int) ([]store.GamePlay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.ranked(modelID)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (m *memStore) GetReplay(_ context.Context, id string) (*store.Replay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.replays[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &r, nil
}
