package delivery_http

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"
	post_http "inkwell-blog-service/internal/infrastructure/inbound/http/post"
	"inkwell-blog-service/internal/infrastructure/logger"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type ErrorRenderer interface {
	Error(w http.ResponseWriter, r *http.Request, status int, message string)
}

// HealthChecker is a backing dependency /healthz should verify, such as the
// Redis user cache or the Postgres pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

const healthCheckTimeout = 2 * time.Second

type RouterDeps struct {
	Posts    *post_http.PostHTTPService
	OIDC     *auth.OIDCHandler
	Sessions *auth.SessionManager
	Renderer ErrorRenderer
	Metrics  ports.MetricsProvider
	Log      *logger.Logger

	// HealthChecks is keyed by the name reported when a check fails. Nil means
	// /healthz only reports that the process is serving.
	HealthChecks map[string]HealthChecker
}

// NewRouter assembles the full HTTP surface. Fixed paths are registered before the
// post routes so that /{slug} never shadows them.
func NewRouter(deps RouterDeps) http.Handler {
	router := mux.NewRouter()
	middleware := []mux.MiddlewareFunc{
		Metrics(deps.Metrics),
		AccessLog(deps.Log),
		auth.LoadSession(deps.Sessions, deps.Log),
	}
	router.Use(middleware...)

	router.HandleFunc("/healthz", healthz(deps.HealthChecks, deps.Log)).Methods(http.MethodGet)
	router.HandleFunc("/login", deps.OIDC.Login).Methods(http.MethodGet)
	router.HandleFunc("/oauth/callback", deps.OIDC.Callback).Methods(http.MethodGet)
	router.HandleFunc("/logout", deps.OIDC.Logout).Methods(http.MethodGet)

	deps.Posts.RegisterRoutes(router, auth.RequireLogin(deps.Sessions, deps.Log))

	// mux skips Use middleware when nothing matched.
	router.NotFoundHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps.Renderer.Error(w, r, http.StatusNotFound, "Page not found.")
	}), middleware)
	router.MethodNotAllowedHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps.Renderer.Error(w, r, http.StatusMethodNotAllowed, "")
	}), middleware)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(deps.Log.StdLogger(slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)

	return recovery(RequestID(handlers.ProxyHeaders(router)))
}

func chain(h http.Handler, middleware []mux.MiddlewareFunc) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

func healthz(checks map[string]HealthChecker, log *logger.Logger) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				log.Error("Health check failed", slog.String("dependency", name), slog.String("error", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(name + " unavailable"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
