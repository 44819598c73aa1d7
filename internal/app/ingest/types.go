package ingest

import "encoding/json"

type Event struct {
	TMS     int64           `json:"t_ms"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type BatchInput struct {
	Token     string
	SessionID string
	RequestID string
	Events    []Event
}

type BatchResponse struct {
	Accepted  bool `json:"accepted"`
	Count     int  `json:"count"`
	Duplicate bool `json:"duplicate,omitempty"`
}
