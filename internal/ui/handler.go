package ui

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/model"
	"github.com/thep200/github-showcase/internal/showcase"
	"github.com/thep200/github-showcase/pkg/log"
)

// CardArchive reads cards persisted by the consumer.
type CardArchive interface {
	Page(ctx context.Context, account, search string, page, pageSize int) ([]model.RepoCard, int64, error)
}

// Handler manages HTTP requests for the API.
type Handler struct {
	Logger   log.Logger
	Config   *cfg.Config
	Showcase *showcase.Showcase
	Archive  CardArchive
}

func NewHandler(logger log.Logger, config *cfg.Config, sc *showcase.Showcase, archive CardArchive) *Handler {
	return &Handler{
		Logger:   logger,
		Config:   config,
		Showcase: sc,
		Archive:  archive,
	}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(h.logRequest)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/account", h.getAccount)
		r.Get("/repos", h.getRepos)
		r.Get("/languages", h.getLanguages)
		r.Get("/rails", h.getRails)
		r.Get("/cards/{repo}", h.getCard)
		if h.Archive != nil {
			r.Get("/archive", h.getArchive)
		}
	})
	return r
}

func (h *Handler) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := log.WithComponent(r.Context(), "http")
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		h.Logger.Debug(ctx, "%s %s %d", r.Method, r.URL.RequestURI(), ww.Status())
	})
}

// load fetches account and repositories or answers 502.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*showcase.Data, bool) {
	data, err := h.Showcase.Load(r.Context())
	if err != nil {
		h.writeError(w, r, http.StatusBadGateway, showcase.LoadFailedMessage)
		return nil, false
	}
	return data, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error(r.Context(), "Failed to encode JSON response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, map[string]string{"error": message})
}
