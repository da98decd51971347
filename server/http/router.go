package serverhttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"match-service/internal/config"
	matchHnd "match-service/internal/match/handler"
	"match-service/internal/middleware"
	"match-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, h *matchHnd.Handler, metrics http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/get-match/{pageID}", h.GetMatch())
		r.Post("/get-match-from-file/", h.GetMatchFromFile())
	})

	return r
}
