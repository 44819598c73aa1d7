package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

func (s *Store) CreateParticipant(ctx context.Context, p Participant) (*Participant, error) {
	if p.ID == "" {
		p.ID = NewID()
	}
	var createdAt pgtype.Timestamptz
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO participants (id, locale, cohort, user_agent_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, p.ID, textParam(p.Locale), textParam(p.Cohort), textParam(p.UserAgentHash)).Scan(&createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.Time
	return &p, nil
}

func (s *Store) GetParticipant(ctx context.Context, id string) (*Participant, error) {
	var (
		p                     Participant
		locale, cohort, uaHsh pgtype.Text
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT id, locale, cohort, user_agent_hash, created_at FROM participants WHERE id = $1
	`, id).Scan(&p.ID, &locale, &cohort, &uaHsh, &p.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	p.Locale = textVal(locale)
	p.Cohort = textVal(cohort)
	p.UserAgentHash = textVal(uaHsh)
	return &p, nil
}

func (s *Store) ParticipantExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM participants WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
