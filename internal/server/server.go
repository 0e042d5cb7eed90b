package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lealre/courses-backend/internal/api"
	"github.com/lealre/courses-backend/internal/metrics"
	"github.com/lealre/courses-backend/internal/mongodb"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// NewServer wires the HTTP routes to a MongoDB-backed API.
func NewServer(db *mongodb.DB, logger zerolog.Logger, m *metrics.Metrics) http.Handler {
	return NewHandler(api.NewAPI(db, db, m), logger, m)
}

func NewHandler(handlers *api.API, logger zerolog.Logger, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /courses", handlers.ListCourses)
	mux.HandleFunc("GET /courses/{$}", handlers.ListCourses)
	mux.HandleFunc("GET /courses/{course_id}", handlers.GetCourse)
	mux.HandleFunc("GET /courses/{course_id}/chapters/{chapter_name}", handlers.GetChapter)
	mux.HandleFunc("POST /courses/{course_id}/rate_chapter/{chapter_name}", handlers.RateChapter)

	mux.HandleFunc("GET /healthz", handlers.Health)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	return RequestIdMiddleware(logger, m)(mux)
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("server is running")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
