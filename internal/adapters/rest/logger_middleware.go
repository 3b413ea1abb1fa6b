package rest

import (
	"net/http"
	"time"

	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/port"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// requestTraceID берет trace id из заголовка, если это uuid, иначе создает новый.
func requestTraceID(r *http.Request) string {
	if incoming, err := uuid.Parse(r.Header.Get(traceHeader)); err == nil {
		return incoming.String()
	}
	return uuid.New().String()
}

// LoggerMiddleware кладет в контекст логгер и trace id и пишет итог запроса.
// Пробы /healthz пишутся на уровне debug.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := requestTraceID(r)
			reqLogger := logger.WithFields(port.Fields{"trace_id": traceID})

			ctx := contextkeys.ContextWithTraceID(contextkeys.ContextWithLogger(r.Context(), reqLogger), traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set(traceHeader, traceID)
			started := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := port.Fields{
				"http_method":   r.Method,
				"http_path":     r.URL.Path,
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(started).Milliseconds(),
			}
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				reqLogger.Error("Request failed", nil, fields)
			case ww.Status() >= http.StatusBadRequest:
				reqLogger.Warn("Request rejected", fields)
			case r.URL.Path == "/healthz":
				reqLogger.Debug("Health probe", fields)
			default:
				reqLogger.Info("Request finished", fields)
			}
		})
	}
}
