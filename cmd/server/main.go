package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	post_service "inkwell-blog-service/internal/application/service/post"
	user_service "inkwell-blog-service/internal/application/service/user"
	post_repository "inkwell-blog-service/internal/domain/ports/output/post"
	user_port "inkwell-blog-service/internal/domain/ports/output/user"
	"inkwell-blog-service/internal/infrastructure/config"
	delivery_http "inkwell-blog-service/internal/infrastructure/inbound/http"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"
	post_http "inkwell-blog-service/internal/infrastructure/inbound/http/post"
	"inkwell-blog-service/internal/infrastructure/inbound/http/render"
	metrics_server "inkwell-blog-service/internal/infrastructure/inbound/metrics"
	"inkwell-blog-service/internal/infrastructure/logger"
	redis_cache "inkwell-blog-service/internal/infrastructure/outbound/cache/redis"
	user_client "inkwell-blog-service/internal/infrastructure/outbound/client/user"
	prometheus_metrics "inkwell-blog-service/internal/infrastructure/outbound/metrics/prometheus"
	post_memory "inkwell-blog-service/internal/infrastructure/outbound/repository/post/memory"
	post_postgres "inkwell-blog-service/internal/infrastructure/outbound/repository/post/postgres"
	"inkwell-blog-service/internal/infrastructure/outbound/repository/postgres"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	healthChecks := make(map[string]delivery_http.HealthChecker)

	var postRepo post_repository.Repository
	if cfg.Database.InMemory {
		log.Warn("Using in-memory post store, posts will not survive a restart")
		postRepo = post_memory.NewPostRepository(log)
	} else {
		if cfg.Database.Migrate {
			if err := postgres.Migrate(cfg.Database, log); err != nil {
				log.Error("Failed to apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		healthChecks["postgres"] = pool

		postRepo = post_postgres.NewPostRepository(pool, log, metrics)
	}

	var userClient user_port.Client = user_client.NewOktaClient(
		cfg.Identity.OrgURL,
		cfg.Identity.APIToken,
		cfg.Identity.Timeout,
		log,
		metrics,
	)

	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		healthChecks["redis"] = redisClient

		userCache := redis_cache.NewUserCache(redisClient, log, cfg.Redis.UserTTL, cfg.Redis.UserMissingTTL)
		userClient = user_service.NewClientCacheDecorator(userClient, userCache, log, metrics)
	}

	postService := post_service.NewPostService(postRepo, userClient, validator.New(), log, metrics)

	templates, err := render.New(log)
	if err != nil {
		log.Error("Failed to load templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessions := auth.NewSessionManager(cfg.Session)
	router := delivery_http.NewRouter(delivery_http.RouterDeps{
		Posts:    post_http.NewPostHTTPService(postService, templates, log),
		OIDC:     auth.NewOIDCHandler(cfg.Identity, sessions, templates, log),
		Sessions: sessions,
		Renderer: templates,
		Metrics:  metrics,
		Log:      log,

		HealthChecks: healthChecks,
	})

	httpServer := delivery_http.NewServer(cfg.HTTPServer, router, log)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	metrics.SetServiceHealth(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	select {
	case <-quit:
	case <-done:
		log.Error("HTTP server stopped unexpectedly")
		done <- true
	}
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}
