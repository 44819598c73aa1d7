package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	appgameplay "game-telemetry/internal/app/gameplay"
)

type GameplayHandlers struct {
	svc *appgameplay.Service
}

func NewGameplayHandlers(svc *appgameplay.Service) *GameplayHandlers {
	return &GameplayHandlers{svc: svc}
}

func (h *GameplayHandlers) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Nickname   string                 `json:"nickname"`
			Score      int64                  `json:"score"`
			FinalStage int64                  `json:"final_stage"`
			ModelID    string                 `json:"model_id"`
			Statistics appgameplay.Statistics `json:"statistics"`
			Frames     []json.RawMessage      `json:"frames"`
		}
		if !decodeJSON(w, r, &body, false) {
			return
		}
		metricGameplaySubmitTotal.Add(1)
		resp, err := h.svc.Submit(r.Context(), appgameplay.SubmitInput{
			Nickname:   body.Nickname,
			Score:      body.Score,
			FinalStage: body.FinalStage,
			ModelID:    body.ModelID,
			Statistics: body.Statistics,
			Frames:     body.Frames,
		})
		if err != nil {
			if errors.Is(err, appgameplay.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			metricGameplayErrorsTotal.Add(1)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal_error", "message": err.Error()})
			return
		}
		if resp.ID == appgameplay.SkippedID {
			metricGameplaySkippedTotal.Add(1)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *GameplayHandlers) Rankings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := queryInt(r, "page", 1)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		pageSize, ok := queryInt(r, "page_size", appgameplay.DefaultPageSize)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		metricRankQueryTotal.Add(1)
		resp, err := h.svc.Rank(r.Context(), appgameplay.RankQuery{
			Page:     page,
			PageSize: pageSize,
			ModelID:  r.URL.Query().Get("model_id"),
		})
		if err != nil {
			if errors.Is(err, appgameplay.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			metricGameplayErrorsTotal.Add(1)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal_error", "message": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func queryInt(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
