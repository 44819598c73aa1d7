package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// CreateReplay exists for seeding and tests; replay rows are normally written
// by the uploader that also places the blob.
func (s *Store) CreateReplay(ctx context.Context, r Replay) (string, error) {
	if r.ID == "" {
		r.ID = NewID()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO replays (id, session_id, storage_url, frames_count, duration_ms,
		                     compression, schema_version, generated_by, checksum)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		r.ID, r.SessionID, r.StorageURL,
		int8PtrParam(r.FramesCount), int8PtrParam(r.DurationMS),
		textParam(r.Compression), textParam(r.SchemaVersion), textParam(r.GeneratedBy), textParam(r.Checksum),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrConflict
		}
		return "", err
	}
	return r.ID, nil
}

func (s *Store) GetReplay(ctx context.Context, id string) (*Replay, error) {
	var (
		r                                                 Replay
		framesCount, durationMS                           pgtype.Int8
		compression, schemaVersion, generatedBy, checksum pgtype.Text
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT id, session_id, storage_url, frames_count, duration_ms,
		       compression, schema_version, generated_by, checksum, created_at
		FROM replays WHERE id = $1
	`, id).Scan(
		&r.ID, &r.SessionID, &r.StorageURL, &framesCount, &durationMS,
		&compression, &schemaVersion, &generatedBy, &checksum, &r.CreatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	r.FramesCount = int64PtrVal(framesCount)
	r.DurationMS = int64PtrVal(durationMS)
	r.Compression = textVal(compression)
	r.SchemaVersion = textVal(schemaVersion)
	r.GeneratedBy = textVal(generatedBy)
	r.Checksum = textVal(checksum)
	return &r, nil
}
