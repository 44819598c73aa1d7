package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func (s *Store) CreateSession(ctx context.Context, sess Session) (*Session, error) {
	if sess.ID == "" {
		sess.ID = NewID()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now().UTC()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO sessions (id, participant_id, mode, agent_skill, game_version, model_version, seed, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		sess.ID,
		sess.ParticipantID,
		sess.Mode,
		textParam(sess.AgentSkill),
		textParam(sess.GameVersion),
		textParam(sess.ModelVersion),
		int8PtrParam(sess.Seed),
		timestamptzParam(sess.StartedAt),
	)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var (
		sess                              Session
		agentSkill, gameVersion, modelVer pgtype.Text
		seed, durationMS                  pgtype.Int8
		endedAt                           pgtype.Timestamptz
		result                            json.RawMessage
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT id, participant_id, mode, agent_skill, game_version, model_version, seed,
		       started_at, ended_at, duration_ms, result
		FROM sessions WHERE id = $1
	`, id).Scan(
		&sess.ID, &sess.ParticipantID, &sess.Mode, &agentSkill, &gameVersion, &modelVer, &seed,
		&sess.StartedAt, &endedAt, &durationMS, &result,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	sess.AgentSkill = textVal(agentSkill)
	sess.GameVersion = textVal(gameVersion)
	sess.ModelVersion = textVal(modelVer)
	sess.Seed = int64PtrVal(seed)
	sess.EndedAt = timePtrVal(endedAt)
	sess.DurationMS = int64PtrVal(durationMS)
	sess.Result = result
	return &sess, nil
}

func (s *Store) SessionExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// EndSession sets the terminal fields once. A second call returns
// ErrAlreadyEnded and leaves the stored values untouched.
func (s *Store) EndSession(ctx context.Context, id string, endedAt time.Time, durationMS *int64, result json.RawMessage) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE sessions
		SET ended_at = $2, duration_ms = $3, result = $4
		WHERE id = $1 AND ended_at IS NULL
	`, id, timestamptzParam(endedAt), int8PtrParam(durationMS), jsonParam(result))
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	exists, err := s.SessionExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrAlreadyEnded
}
