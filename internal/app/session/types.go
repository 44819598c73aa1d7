package session

import (
	"encoding/json"
	"time"
)

const (
	ModeHuman = "human"
	ModeAgent = "agent"
)

type RegisterInput struct {
	Locale    string
	Cohort    string
	UserAgent string
}

type ParticipantResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type StartInput struct {
	ParticipantID string
	Mode          string
	AgentSkill    string
	GameVersion   string
	ModelVersion  string
	Seed          *int64
}

type StartResponse struct {
	SessionID   string `json:"session_id"`
	IngestToken string `json:"ingest_token"`
}

type EndInput struct {
	SessionID  string
	DurationMS *int64
	Result     json.RawMessage
}

type EndResponse struct {
	OK bool `json:"ok"`
}
