package httptransport

import (
	"errors"
	"net/http"

	appingest "game-telemetry/internal/app/ingest"
)

type EventHandlers struct {
	svc *appingest.Service
}

func NewEventHandlers(svc *appingest.Service) *EventHandlers {
	return &EventHandlers{svc: svc}
}

func (h *EventHandlers) Batch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			metricIngestRejectedTotal.Add(1)
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var body struct {
			SessionID string            `json:"session_id"`
			RequestID string            `json:"request_id"`
			Events    []appingest.Event `json:"events"`
		}
		if !decodeJSON(w, r, &body, false) {
			return
		}
		metricIngestBatchTotal.Add(1)
		resp, err := h.svc.IngestBatch(r.Context(), appingest.BatchInput{
			Token:     token,
			SessionID: body.SessionID,
			RequestID: body.RequestID,
			Events:    body.Events,
		})
		if err != nil {
			switch {
			case errors.Is(err, appingest.ErrUnauthorized):
				metricIngestRejectedTotal.Add(1)
				WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			case errors.Is(err, appingest.ErrForbidden):
				metricIngestForbiddenTotal.Add(1)
				WriteHTTPError(w, http.StatusForbidden, "forbidden")
			case errors.Is(err, appingest.ErrSessionNotFound):
				WriteHTTPError(w, http.StatusNotFound, "session_not_found")
			case errors.Is(err, appingest.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			default:
				metricIngestBatchErrorTotal.Add(1)
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		if resp.Duplicate {
			metricIngestDuplicateTotal.Add(1)
		} else {
			metricIngestEventsTotal.Add(int64(resp.Count))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
