package httptransport

import (
	"net/http"

	appagent "game-telemetry/internal/app/agent"
)

func AgentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, appagent.Catalog())
	}
}
