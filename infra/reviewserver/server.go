// Package reviewserver serves a review collection page by page over HTTP in
// the format read by reviewsource.HTTPSource.
package reviewserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/reviewlist/domain"
	"github.com/CrestNiraj12/reviewlist/infra/reviewsource"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Catalog provides the full review collection.
type Catalog interface {
	All() ([]domain.Review, error)
}

// Server exposes a Catalog as GET /v1/reviews?offset=N&limit=M.
type Server struct {
	catalog Catalog
	log     zerolog.Logger
}

// New creates a server for catalog.
func New(catalog Catalog, log zerolog.Logger) *Server {
	return &Server{catalog: catalog, log: log}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.healthHandler)
		r.Get("/reviews", s.listReviewsHandler)
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdown <- srv.Shutdown(sctx)
	}()

	s.log.Info().Str("addr", addr).Msg("server has started")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdown; err != nil {
		return err
	}

	s.log.Info().Str("addr", addr).Msg("server has stopped")
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		s.badRequest(w, r, "offset must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil || limit < 1 {
		s.badRequest(w, r, "limit must be a positive integer")
		return
	}
	limit = min(limit, maxLimit)

	all, err := s.catalog.All()
	if err != nil {
		s.log.Error().Err(err).Str("kind", domain.KindOf(err)).Msg("loading catalog failed")
		_ = writeJSONError(w, http.StatusServiceUnavailable, "reviews unavailable")
		return
	}

	data, err := reviewsource.Encode(reviewsource.Slice(all, offset, limit))
	if err != nil {
		s.log.Error().Err(err).Msg("encoding page failed")
		_ = writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	s.log.Debug().Str("query", r.URL.RawQuery).Msg(msg)
	_ = writeJSONError(w, http.StatusBadRequest, msg)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	}
	return writeJSON(w, status, &envelope{Message: message, Status: status})
}
