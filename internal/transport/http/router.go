package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	appgameplay "game-telemetry/internal/app/gameplay"
	appingest "game-telemetry/internal/app/ingest"
	appreplay "game-telemetry/internal/app/replay"
	appsession "game-telemetry/internal/app/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Deps struct {
	DB          Pinger
	Sessions    *appsession.Service
	Ingest      *appingest.Service
	Gameplay    *appgameplay.Service
	Replays     *appreplay.Service
	AdminAPIKey string
}

func NewRouter(d Deps) *chi.Mux {
	adminHandlers := NewAdminHandlers(d.DB)
	sessionHandlers := NewSessionHandlers(d.Sessions)
	eventHandlers := NewEventHandlers(d.Ingest)
	gameplayHandlers := NewGameplayHandlers(d.Gameplay)
	replayHandlers := NewReplayHandlers(d.Replays)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Post("/participants", sessionHandlers.RegisterParticipant())
		r.Group(func(r chi.Router) {
			r.Use(BodyCaptureMiddleware(4096))
			r.Post("/session/start", sessionHandlers.Start())
			r.Post("/session/end", sessionHandlers.End())
		})
		r.Post("/events/batch", eventHandlers.Batch())
		r.Get("/agents", AgentsHandler())

		r.Post("/gameplay", gameplayHandlers.Submit())
		r.Get("/gameplay/rankings", gameplayHandlers.Rankings())

		r.Get("/replays/{replay_id}", replayHandlers.Get())
		r.Get("/replays/{replay_id}/download", replayHandlers.Download())

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(d.AdminAPIKey))
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	fmt.Fprintf(&b, "Registered routes (%d):\n", len(routes))
	for _, rt := range routes {
		fmt.Fprintf(&b, "  %-6s %s\n", rt.Method, rt.Path)
	}
	fmt.Print(b.String())
}
