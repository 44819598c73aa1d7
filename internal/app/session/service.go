package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	appagent "game-telemetry/internal/app/agent"
	"game-telemetry/internal/store"

	"github.com/rs/zerolog/log"
)

// Store is the slice of the relational store the session lifecycle writes to.
type Store interface {
	CreateParticipant(ctx context.Context, p store.Participant) (*store.Participant, error)
	ParticipantExists(ctx context.Context, id string) (bool, error)
	CreateSession(ctx context.Context, sess store.Session) (*store.Session, error)
	EndSession(ctx context.Context, id string, endedAt time.Time, durationMS *int64, result json.RawMessage) error
}

type TokenIssuer interface {
	Issue(sessionID string, ttl time.Duration) (string, error)
}

type Service struct {
	store    Store
	tokens   TokenIssuer
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(st Store, tokens TokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{store: st, tokens: tokens, tokenTTL: tokenTTL, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*ParticipantResponse, error) {
	p, err := s.store.CreateParticipant(ctx, store.Participant{
		Locale:        strings.TrimSpace(in.Locale),
		Cohort:        strings.TrimSpace(in.Cohort),
		UserAgentHash: store.HashUserAgent(in.UserAgent),
	})
	if err != nil {
		return nil, err
	}
	return &ParticipantResponse{ID: p.ID, CreatedAt: p.CreatedAt}, nil
}

func (s *Service) Start(ctx context.Context, in StartInput) (*StartResponse, error) {
	if err := validateStart(in); err != nil {
		return nil, err
	}
	ok, err := s.store.ParticipantExists(ctx, in.ParticipantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrParticipantNotFound
	}
	sess, err := s.store.CreateSession(ctx, store.Session{
		ParticipantID: in.ParticipantID,
		Mode:          in.Mode,
		AgentSkill:    in.AgentSkill,
		GameVersion:   in.GameVersion,
		ModelVersion:  in.ModelVersion,
		Seed:          in.Seed,
		StartedAt:     s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(sess.ID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue ingest token: %w", err)
	}
	log.Info().
		Str("session_id", sess.ID).
		Str("participant_id", in.ParticipantID).
		Str("mode", in.Mode).
		Msg("session started")
	return &StartResponse{SessionID: sess.ID, IngestToken: token}, nil
}

func (s *Service) End(ctx context.Context, in EndInput) (*EndResponse, error) {
	if strings.TrimSpace(in.SessionID) == "" {
		return nil, ErrInvalidRequest
	}
	if string(in.Result) == "null" {
		in.Result = nil
	}
	if len(in.Result) > 0 && !isJSONObject(in.Result) {
		return nil, ErrInvalidRequest
	}
	if in.DurationMS != nil && *in.DurationMS < 0 {
		return nil, ErrInvalidRequest
	}
	err := s.store.EndSession(ctx, in.SessionID, s.now().UTC(), in.DurationMS, in.Result)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrSessionNotFound
	case errors.Is(err, store.ErrAlreadyEnded):
		return nil, ErrSessionEnded
	case err != nil:
		return nil, err
	}
	log.Info().Str("session_id", in.SessionID).Msg("session ended")
	return &EndResponse{OK: true}, nil
}

func validateStart(in StartInput) error {
	if strings.TrimSpace(in.ParticipantID) == "" {
		return ErrInvalidRequest
	}
	if in.Mode != ModeHuman && in.Mode != ModeAgent {
		return ErrInvalidRequest
	}
	if in.AgentSkill != "" {
		if _, ok := appagent.BySkill(in.AgentSkill); !ok {
			return ErrInvalidRequest
		}
	}
	return nil
}

func isJSONObject(raw json.RawMessage) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal(raw, &m) == nil && m != nil
}
