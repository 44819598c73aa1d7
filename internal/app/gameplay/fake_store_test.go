package gameplay

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"game-telemetry/internal/store"
)

type memStore struct {
	mu      sync.Mutex
	rows    []store.GamePlay
	seq     int
	failErr error

	listCalls  int
	lastOffset int
}

func (m *memStore) CreateGamePlay(_ context.Context, g store.GamePlay) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return "", m.failErr
	}
	m.seq++
	if g.ID == "" {
		g.ID = fmt.Sprintf("g%06d", m.seq)
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Unix(1_700_000_000, 0).Add(time.Duration(m.seq) * time.Second)
	}
	m.rows = append(m.rows, g)
	return g.ID, nil
}

func (m *memStore) filtered(modelID string) []store.GamePlay {
	out := make([]store.GamePlay, 0, len(m.rows))
	for _, r := range m.rows {
		if modelID == "" || r.ModelID == modelID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out
}

func (m *memStore) CountGamePlays(_ context.Context, modelID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	return len(m.filtered(modelID)), nil
}

func (m *memStore) ListGamePlayRankings(_ context.Context, modelID string, limit, offset int) ([]store.GamePlay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastOffset = offset
	if m.failErr != nil {
		return nil, m.failErr
	}
	rows := m.filtered(modelID)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

var errStoreDown = errors.New("connection refused")
