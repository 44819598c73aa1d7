package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func (s *Store) CreateGamePlay(ctx context.Context, g GamePlay) (string, error) {
	if g.ID == "" {
		g.ID = NewID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO gameplays (
			id, nickname, score, final_stage, model_id,
			total_frames, play_duration, enemies_destroyed, shots_fired, hits, deaths,
			frames_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		g.ID, g.Nickname, g.Score, g.FinalStage, textParam(g.ModelID),
		int8PtrParam(g.Stats.TotalFrames),
		float8PtrParam(g.Stats.PlayDuration),
		int8PtrParam(g.Stats.EnemiesDestroyed),
		int8PtrParam(g.Stats.ShotsFired),
		int8PtrParam(g.Stats.Hits),
		int8PtrParam(g.Stats.Deaths),
		jsonParam(g.Frames),
		timestamptzParam(g.CreatedAt),
	)
	if err != nil {
		return "", err
	}
	return g.ID, nil
}

func (s *Store) CountGamePlays(ctx context.Context, modelID string) (int, error) {
	var n int
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(1) FROM gameplays WHERE ($1::text IS NULL OR model_id = $1)
	`, textParam(modelID)).Scan(&n)
	return n, err
}

// ListGamePlayRankings pages through gameplays by score (highest first); ties
// go to the earlier submission, then to the smaller id. Frames are not loaded.
func (s *Store) ListGamePlayRankings(ctx context.Context, modelID string, limit, offset int) ([]GamePlay, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, nickname, score, final_stage, model_id, total_frames, play_duration, created_at
		FROM gameplays
		WHERE ($1::text IS NULL OR model_id = $1)
		ORDER BY score DESC, created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, textParam(modelID), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []GamePlay{}
	for rows.Next() {
		var (
			g            GamePlay
			model        pgtype.Text
			totalFrames  pgtype.Int8
			playDuration pgtype.Float8
		)
		if err := rows.Scan(&g.ID, &g.Nickname, &g.Score, &g.FinalStage, &model, &totalFrames, &playDuration, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.ModelID = textVal(model)
		g.Stats.TotalFrames = int64PtrVal(totalFrames)
		g.Stats.PlayDuration = float64PtrVal(playDuration)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) GetGamePlay(ctx context.Context, id string) (*GamePlay, error) {
	var (
		g                                         GamePlay
		model                                     pgtype.Text
		totalFrames, enemies, shots, hits, deaths pgtype.Int8
		playDuration                              pgtype.Float8
		frames                                    json.RawMessage
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT id, nickname, score, final_stage, model_id,
		       total_frames, play_duration, enemies_destroyed, shots_fired, hits, deaths,
		       frames_data, created_at
		FROM gameplays WHERE id = $1
	`, id).Scan(
		&g.ID, &g.Nickname, &g.Score, &g.FinalStage, &model,
		&totalFrames, &playDuration, &enemies, &shots, &hits, &deaths,
		&frames, &g.CreatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	g.ModelID = textVal(model)
	g.Stats = GamePlayStats{
		TotalFrames:      int64PtrVal(totalFrames),
		PlayDuration:     float64PtrVal(playDuration),
		EnemiesDestroyed: int64PtrVal(enemies),
		ShotsFired:       int64PtrVal(shots),
		Hits:             int64PtrVal(hits),
		Deaths:           int64PtrVal(deaths),
	}
	g.Frames = frames
	return &g, nil
}

func (s *Store) CountGamePlaysByNickname(ctx context.Context, nickname string) (int, error) {
	var n int
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM gameplays WHERE nickname = $1`, nickname).Scan(&n)
	return n, err
}
