package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lealre/courses-backend/internal/logx"
	"github.com/lealre/courses-backend/internal/metrics"
	"github.com/rs/zerolog"
)

type contextKey string

const requestIdKey contextKey = "requestId"

const RequestIdHeader = "X-Request-Id"

////////////////////////////////////////////////////////////////////////////
//  LOGGER MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

func generateRequestId() string {
	return uuid.NewString()[:8]
}

// responseRecorder wraps http.ResponseWriter to capture status code
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

/*
RequestIdMiddleware creates a unique request ID for each request and stores it in the context.
Creates a logger carrying the request ID, method and path and stores it in the context.
- Logs when receives a request
- Logs when returns the response with the time the request took and status code
- Observes request count and duration when metrics are given

Handlers can retrieve the logger using logx.FromContext(r.Context()).
*/
func RequestIdMiddleware(baseLogger zerolog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId := generateRequestId()
			startTime := time.Now()

			logger := baseLogger.With().
				Str("requestId", requestId).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()

			logger.Debug().Msg("request received")

			ctx := context.WithValue(r.Context(), requestIdKey, requestId)
			ctx = logx.WithLogger(ctx, logger)
			r = r.WithContext(ctx)

			w.Header().Set(RequestIdHeader, requestId)
			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(startTime)
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}

			if m != nil {
				m.ObserveRequest(route, r.Method, recorder.statusCode, duration)
			}

			logger.Info().
				Str("route", route).
				Int("status", recorder.statusCode).
				Dur("duration", duration).
				Msg("request completed")
		})
	}
}

// RequestIdFromContext returns the id assigned by RequestIdMiddleware.
func RequestIdFromContext(ctx context.Context) string {
	if requestId, ok := ctx.Value(requestIdKey).(string); ok {
		return requestId
	}
	return ""
}
