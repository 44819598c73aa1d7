package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appsession "game-telemetry/internal/app/session"
)

type SessionHandlers struct {
	svc *appsession.Service
}

func NewSessionHandlers(svc *appsession.Service) *SessionHandlers {
	return &SessionHandlers{svc: svc}
}

func (h *SessionHandlers) RegisterParticipant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Locale string `json:"locale"`
			Cohort string `json:"cohort"`
		}
		if !decodeJSON(w, r, &body, true) {
			return
		}
		resp, err := h.svc.Register(r.Context(), appsession.RegisterInput{
			Locale:    body.Locale,
			Cohort:    body.Cohort,
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		metricParticipantCreateTotal.Add(1)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *SessionHandlers) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ParticipantID string `json:"participant_id"`
			Mode          string `json:"mode"`
			AgentSkill    string `json:"agent_skill"`
			GameVersion   string `json:"game_version"`
			ModelVersion  string `json:"model_version"`
			Seed          *int64 `json:"seed"`
		}
		if !decodeJSON(w, r, &body, false) {
			return
		}
		metricSessionStartTotal.Add(1)
		resp, err := h.svc.Start(r.Context(), appsession.StartInput{
			ParticipantID: body.ParticipantID,
			Mode:          body.Mode,
			AgentSkill:    body.AgentSkill,
			GameVersion:   body.GameVersion,
			ModelVersion:  body.ModelVersion,
			Seed:          body.Seed,
		})
		if err != nil {
			metricSessionStartErrors.Add(1)
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *SessionHandlers) End() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SessionID  string          `json:"session_id"`
			DurationMS *int64          `json:"duration_ms"`
			Result     json.RawMessage `json:"result"`
		}
		if !decodeJSON(w, r, &body, false) {
			return
		}
		resp, err := h.svc.End(r.Context(), appsession.EndInput{
			SessionID:  body.SessionID,
			DurationMS: body.DurationMS,
			Result:     body.Result,
		})
		if err != nil {
			writeSessionError(w, err)
			return
		}
		metricSessionEndTotal.Add(1)
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appsession.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, appsession.ErrParticipantNotFound):
		WriteHTTPError(w, http.StatusNotFound, "participant_not_found")
	case errors.Is(err, appsession.ErrSessionNotFound):
		WriteHTTPError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, appsession.ErrSessionEnded):
		WriteHTTPError(w, http.StatusConflict, "session_already_ended")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
