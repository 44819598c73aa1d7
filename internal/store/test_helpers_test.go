package store

import (
	"context"
	"testing"

	"game-telemetry/internal/testutil"
)

func openStore(t *testing.T) (*Store, context.Context, func()) {
	t.Helper()
	st, err := New(testutil.OpenSchema(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st, context.Background(), st.Close
}

func mustCreateParticipant(t *testing.T, st *Store, ctx context.Context) string {
	t.Helper()
	p, err := st.CreateParticipant(ctx, Participant{Locale: "en-US"})
	if err != nil {
		t.Fatalf("create participant: %v", err)
	}
	return p.ID
}

func mustCreateSession(t *testing.T, st *Store, ctx context.Context, participantID string) string {
	t.Helper()
	sess, err := st.CreateSession(ctx, Session{ParticipantID: participantID, Mode: "human"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess.ID
}
