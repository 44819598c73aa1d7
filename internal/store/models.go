package store

import (
	"encoding/json"
	"time"
)

type Participant struct {
	ID            string
	Locale        string
	Cohort        string
	UserAgentHash string
	CreatedAt     time.Time
}

type Session struct {
	ID            string
	ParticipantID string
	Mode          string
	AgentSkill    string
	GameVersion   string
	ModelVersion  string
	Seed          *int64
	StartedAt     time.Time
	EndedAt       *time.Time
	DurationMS    *int64
	Result        json.RawMessage
}

type Event struct {
	ID        int64
	SessionID string
	TMS       int64
	Type      string
	Payload   json.RawMessage
}

type EventInput struct {
	TMS     int64
	Type    string
	Payload json.RawMessage
}

type AppendResult struct {
	Count     int
	Duplicate bool
}

type GamePlayStats struct {
	TotalFrames      *int64
	PlayDuration     *float64
	EnemiesDestroyed *int64
	ShotsFired       *int64
	Hits             *int64
	Deaths           *int64
}

type GamePlay struct {
	ID         string
	Nickname   string
	Score      int64
	FinalStage int64
	ModelID    string
	Stats      GamePlayStats
	Frames     json.RawMessage
	CreatedAt  time.Time
}

type Replay struct {
	ID            string
	SessionID     string
	StorageURL    string
	FramesCount   *int64
	DurationMS    *int64
	Compression   string
	SchemaVersion string
	GeneratedBy   string
	Checksum      string
	CreatedAt     time.Time
}
