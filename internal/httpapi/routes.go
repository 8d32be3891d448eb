package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/hub"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
	"github.com/DoyleJ11/spell-draft-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.NewGenerator == nil {
		d.NewGenerator = func() spell.Generator { return spell.NewRandom() }
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Public routes
	r.Post("/lobbies", CreateLobby(h, d))
	r.Get("/lobbies", ListLobbies(h))
	r.Get("/lobbies/{code}", GetLobby(h))
	r.Delete("/lobbies/{code}", DeleteLobby(h))
	r.Post("/lobbies/{code}/clicks", PostClick(h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, d.Logger.Named("ws")))
	return r
}
