package httpapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"granteval-go/internal/auth"
	"granteval-go/internal/events"
	"granteval-go/internal/services/catalog"
	"granteval-go/internal/services/evaluation"
	"granteval-go/internal/services/syncing"
)

type Handler struct {
	catalog     *catalog.Service
	sync        *syncing.Service
	evaluations *evaluation.Service
	hub         *events.Hub
	tokens      *auth.Tokens
	logger      *zap.Logger
}

func NewHandler(
	catalogService *catalog.Service,
	syncService *syncing.Service,
	evaluationService *evaluation.Service,
	hub *events.Hub,
	tokens *auth.Tokens,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:     catalogService,
		sync:        syncService,
		evaluations: evaluationService,
		hub:         hub,
		tokens:      tokens,
		logger:      logger,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.tokens.Middleware)

		r.Get("/events", h.handleEvents)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.handleListProjects)
			r.Post("/sync", h.handleSync)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", h.handleGetProject)
				r.Get("/evaluation", h.handleGetEvaluation)
				r.Put("/evaluation", h.handleUpsertEvaluation)
				r.Get("/scores", h.handleAggregateScores)
			})
		})
	})

	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Post("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Get("/allocs", pprof.Handler("allocs").ServeHTTP)
		r.Get("/block", pprof.Handler("block").ServeHTTP)
		r.Get("/goroutine", pprof.Handler("goroutine").ServeHTTP)
		r.Get("/heap", pprof.Handler("heap").ServeHTTP)
		r.Get("/mutex", pprof.Handler("mutex").ServeHTTP)
		r.Get("/threadcreate", pprof.Handler("threadcreate").ServeHTTP)
	})
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
