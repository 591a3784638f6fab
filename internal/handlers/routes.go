// internal/handlers/routes.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/broadcast"
	"github.com/aramdraft/aramdraft/internal/catalog"
	"github.com/aramdraft/aramdraft/internal/config"
	"github.com/aramdraft/aramdraft/internal/engine"
	"github.com/aramdraft/aramdraft/internal/middleware"
	"github.com/aramdraft/aramdraft/internal/room"
)

// Routes assembles the HTTP surface: REST endpoints for room setup and the
// gated history view, plus the draft WebSocket.
func Routes(cfg config.Config, log *logrus.Logger, rooms *room.Store, eng *engine.Engine, hub *broadcast.Hub, champs *catalog.Provider) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LogRequests(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/create-room", CreateRoomHandler(rooms, log))
		r.Post("/join-room", JoinPrecheckHandler(eng))
		r.Get("/match/{uuid}", MatchHandler(log))
		r.Get("/version", VersionHandler(champs))

		r.Post("/history/login", HistoryLoginHandler(cfg, log))
		r.Group(func(r chi.Router) {
			r.Use(RequireHistoryToken)
			r.Get("/history", HistoryHandler(log))
		})
	})

	r.Get("/ws", WSHandler(log, eng, hub))

	return r
}

// VersionHandler reports the champion data version the catalog was loaded
// for.
func VersionHandler(champs *catalog.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, apiResponse{"success": true, "version": champs.Version()})
	}
}
