package httptransport

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	appreplay "game-telemetry/internal/app/replay"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ReplayHandlers struct {
	svc *appreplay.Service
}

func NewReplayHandlers(svc *appreplay.Service) *ReplayHandlers {
	return &ReplayHandlers{svc: svc}
}

func (h *ReplayHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricReplayResolveTotal.Add(1)
		resp, err := h.svc.Resolve(r.Context(), chi.URLParam(r, "replay_id"))
		if err != nil {
			writeReplayError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *ReplayHandlers) Download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricReplayDownloadTotal.Add(1)
		replayID := chi.URLParam(r, "replay_id")
		obj, err := h.svc.Download(r.Context(), replayID)
		if err != nil {
			writeReplayError(w, err)
			return
		}
		defer obj.Body.Close()
		w.Header().Set("Content-Type", obj.ContentType)
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, obj.Body); err != nil {
			log.Warn().Err(err).Str("replay_id", replayID).Msg("replay download interrupted")
		}
	}
}

func writeReplayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appreplay.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, appreplay.ErrReplayNotFound):
		WriteHTTPError(w, http.StatusNotFound, "replay_not_found")
	case errors.Is(err, appreplay.ErrReplayFileMissing):
		metricReplayBlobMissing.Add(1)
		WriteHTTPError(w, http.StatusNotFound, "replay_file_missing")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
