package delivery_http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	ports "inkwell-blog-service/internal/domain/ports/output"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 128
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID reuses a sane incoming X-Request-ID or mints one, and echoes it back.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func AccessLog(log ports.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routeTemplate(r)),
				slog.Int("status", m.Code),
				slog.Duration("duration", m.Duration),
				slog.Int64("bytes", m.Written),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			}
			if m.Code >= http.StatusInternalServerError {
				log.Warn("HTTP request failed", attrs...)
				return
			}
			log.Info("HTTP request", attrs...)
		})
	}
}

func Metrics(metrics ports.MetricsProvider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			route := r.Method + " " + routeTemplate(r)
			status := strconv.Itoa(m.Code)
			metrics.IncrementHTTPRequests(route, status)
			metrics.RecordHTTPRequestDuration(route, status, m.Duration)
		})
	}
}

// routeTemplate keeps metric labels bounded by using the matched pattern instead of the raw path.
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tmpl
}
