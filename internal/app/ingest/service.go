package ingest

import (
	"context"
	"encoding/json"
	"strings"

	"game-telemetry/internal/ingesttoken"
	"game-telemetry/internal/store"

	"github.com/rs/zerolog/log"
)

type Store interface {
	SessionExists(ctx context.Context, id string) (bool, error)
	AppendEvents(ctx context.Context, sessionID, requestID string, events []store.EventInput) (store.AppendResult, error)
}

type TokenVerifier interface {
	Verify(token string) (ingesttoken.Claims, error)
}

type Service struct {
	store  Store
	tokens TokenVerifier
}

func NewService(st Store, tokens TokenVerifier) *Service {
	return &Service{store: st, tokens: tokens}
}

// IngestBatch appends a batch of events to the session the token was minted
// for. Every token failure collapses to ErrUnauthorized; the cause is only logged.
func (s *Service) IngestBatch(ctx context.Context, in BatchInput) (*BatchResponse, error) {
	if in.Token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.tokens.Verify(in.Token)
	if err != nil {
		log.Debug().Err(err).Str("session_id", in.SessionID).Msg("ingest token rejected")
		return nil, ErrUnauthorized
	}
	if claims.SessionID != in.SessionID {
		log.Warn().
			Str("token_session_id", claims.SessionID).
			Str("session_id", in.SessionID).
			Msg("ingest token bound to another session")
		return nil, ErrForbidden
	}
	events, err := toEventInputs(in.Events)
	if err != nil {
		return nil, err
	}
	ok, err := s.store.SessionExists(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	if len(events) == 0 {
		return &BatchResponse{Accepted: true, Count: 0}, nil
	}
	res, err := s.store.AppendEvents(ctx, in.SessionID, strings.TrimSpace(in.RequestID), events)
	if err != nil {
		return nil, err
	}
	if res.Duplicate {
		log.Info().Str("session_id", in.SessionID).Str("request_id", in.RequestID).Msg("duplicate event batch")
	}
	return &BatchResponse{Accepted: true, Count: res.Count, Duplicate: res.Duplicate}, nil
}

func toEventInputs(events []Event) ([]store.EventInput, error) {
	out := make([]store.EventInput, 0, len(events))
	for _, ev := range events {
		if !isJSONObject(ev.Payload) {
			return nil, ErrInvalidRequest
		}
		out = append(out, store.EventInput{TMS: ev.TMS, Type: ev.Type, Payload: ev.Payload})
	}
	return out, nil
}

func isJSONObject(raw json.RawMessage) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal(raw, &m) == nil && m != nil
}
