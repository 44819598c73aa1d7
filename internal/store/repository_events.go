package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// AppendEvents inserts events in input order inside one transaction. When
// requestID is set, the (session, request) pair is recorded alongside the rows;
// a repeated request inserts nothing and reports the original count.
func (s *Store) AppendEvents(ctx context.Context, sessionID, requestID string, events []EventInput) (AppendResult, error) {
	if err := validateEventInputs(events); err != nil {
		return AppendResult{}, err
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return AppendResult{}, err
	}
	defer tx.Rollback(ctx)

	if requestID != "" {
		tag, err := tx.Exec(ctx, `
			INSERT INTO ingest_batches (session_id, request_id, event_count)
			VALUES ($1, $2, $3)
			ON CONFLICT (session_id, request_id) DO NOTHING
		`, sessionID, requestID, len(events))
		if err != nil {
			return AppendResult{}, err
		}
		if tag.RowsAffected() == 0 {
			var prev int
			if err := tx.QueryRow(ctx, `
				SELECT event_count FROM ingest_batches WHERE session_id = $1 AND request_id = $2
			`, sessionID, requestID).Scan(&prev); err != nil {
				return AppendResult{}, err
			}
			return AppendResult{Count: prev, Duplicate: true}, nil
		}
	}

	if len(events) > 0 {
		batch := &pgx.Batch{}
		for _, ev := range events {
			batch.Queue(`INSERT INTO events (session_id, t_ms, type, payload) VALUES ($1, $2, $3, $4)`,
				sessionID, ev.TMS, ev.Type, []byte(ev.Payload))
		}
		br := tx.SendBatch(ctx, batch)
		for range events {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return AppendResult{}, err
			}
		}
		if err := br.Close(); err != nil {
			return AppendResult{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return AppendResult{}, err
	}
	return AppendResult{Count: len(events)}, nil
}

// ListEvents returns events of a session in insertion order, starting after afterID.
func (s *Store) ListEvents(ctx context.Context, sessionID string, afterID int64, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, session_id, t_ms, type, payload
		FROM events
		WHERE session_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT $3
	`, sessionID, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.SessionID, &e.TMS, &e.Type, &e.Payload); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var errEmptyPayload = errors.New("event payload is empty")

func validateEventInputs(events []EventInput) error {
	for _, ev := range events {
		if len(ev.Payload) == 0 {
			return errEmptyPayload
		}
	}
	return nil
}
