package main

import (
	"context"
	"fmt"
	"math/rand"

	"game-telemetry/internal/config"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const frameMS = 16

var eventTypes = []string{"move", "shot", "hit", "pickup"}

// playSession drives one synthetic run end to end. Each batch carries a fresh
// request id so a retried POST is absorbed server-side.
func playSession(ctx context.Context, c *client, cfg config.BotConfig, rnd *rand.Rand) error {
	pid, err := c.registerParticipant(ctx)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	seed := rnd.Int63()
	sess, err := c.startSession(ctx, pid, cfg.Skill, seed)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	logger := log.With().Str("session_id", sess.SessionID).Logger()

	var (
		tms    int64
		sent   int
		score  int64
		kills  int64
		shots  int64
		frames []map[string]any
	)
	for b := 0; b < cfg.Batches; b++ {
		events := make([]event, 0, cfg.EventsPerBatch)
		for i := 0; i < cfg.EventsPerBatch; i++ {
			tms += int64(frameMS * (1 + rnd.Intn(4)))
			typ := eventTypes[rnd.Intn(len(eventTypes))]
			switch typ {
			case "shot":
				shots++
			case "hit":
				kills++
				score += 100
			}
			events = append(events, event{TMS: tms, Type: typ, Payload: map[string]any{"x": rnd.Float64(), "y": rnd.Float64()}})
			frames = append(frames, map[string]any{
				"frame_number":   len(frames) + 1,
				"player_x":       rnd.Float64() * 480,
				"player_y":       600.0,
				"player_lives":   3,
				"player_score":   score,
				"current_weapon": 0,
				"input_left":     rnd.Intn(2),
				"input_right":    rnd.Intn(2),
			})
		}
		resp, err := c.sendBatch(ctx, sess.IngestToken, sess.SessionID, ulid.Make().String(), events)
		if err != nil {
			return fmt.Errorf("send batch %d: %w", b, err)
		}
		sent += resp.Count
	}

	result := map[string]any{"score": score, "kills": kills}
	if err := c.endSession(ctx, sess.SessionID, tms, result); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	playSeconds := float64(tms) / 1000
	id, err := c.submitGameplay(ctx, map[string]any{
		"nickname":    cfg.Nickname,
		"score":       score,
		"final_stage": 1 + kills/10,
		"model_id":    cfg.Skill,
		"statistics": map[string]any{
			"total_frames":      len(frames),
			"play_duration":     playSeconds,
			"enemies_destroyed": kills,
			"shots_fired":       shots,
			"hits":              kills,
			"deaths":            0,
		},
		"frames": frames,
	})
	if err != nil {
		return fmt.Errorf("submit gameplay: %w", err)
	}
	logger.Info().Int("events", sent).Int64("score", score).Str("gameplay_id", id).Msg("session complete")
	return nil
}
