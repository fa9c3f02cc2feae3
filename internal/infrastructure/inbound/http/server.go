package delivery_http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"inkwell-blog-service/internal/infrastructure/config"
	"inkwell-blog-service/internal/infrastructure/logger"
)

type Server struct {
	server *http.Server
	port   int
	log    *logger.Logger
}

func NewServer(cfg config.HTTPServer, handler http.Handler, log *logger.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     log.StdLogger(slog.LevelError),
		},
		port: cfg.Port,
		log:  log,
	}
}

// Run blocks until the server stops. A graceful Shutdown is not reported as an error.
func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
