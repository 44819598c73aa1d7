package replay

import "time"

type Metadata struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	FramesCount   *int64    `json:"frames_count"`
	DurationMS    *int64    `json:"duration_ms"`
	Compression   *string   `json:"compression"`
	SchemaVersion *string   `json:"schema_version"`
	GeneratedBy   *string   `json:"generated_by"`
	Checksum      *string   `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	URL           string    `json:"url"`
	ExpiresIn     int       `json:"expires_in"`
}
