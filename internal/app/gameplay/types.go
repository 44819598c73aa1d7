package gameplay

import (
	"encoding/json"
	"time"
)

type Statistics struct {
	TotalFrames      *int64   `json:"total_frames,omitempty"`
	PlayDuration     *float64 `json:"play_duration,omitempty"`
	EnemiesDestroyed *int64   `json:"enemies_destroyed,omitempty"`
	ShotsFired       *int64   `json:"shots_fired,omitempty"`
	Hits             *int64   `json:"hits,omitempty"`
	Deaths           *int64   `json:"deaths,omitempty"`
}

type SubmitInput struct {
	Nickname   string
	Score      int64
	FinalStage int64
	ModelID    string
	Statistics Statistics
	Frames     []json.RawMessage
}

type SubmitResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type RankQuery struct {
	Page     int
	PageSize int
	ModelID  string
}

type RankingItem struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	Score        int64     `json:"score"`
	FinalStage   int64     `json:"final_stage"`
	ModelID      *string   `json:"model_id"`
	TotalFrames  *int64    `json:"total_frames"`
	PlayDuration *float64  `json:"play_duration"`
	CreatedAt    time.Time `json:"created_at"`
	Rank         int       `json:"rank"`
}

type RankingResponse struct {
	Rankings []RankingItem `json:"rankings"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
