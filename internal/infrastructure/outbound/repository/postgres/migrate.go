package postgres

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/config"
	"inkwell-blog-service/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies every pending migration from the embedded migrations directory.
func Migrate(cfg config.Database, log ports.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migrations source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrationURL(cfg.DSN()))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Warn("Failed to close migration source", slog.String("error", srcErr.Error()))
		}
		if dbErr != nil {
			log.Warn("Failed to close migration database", slog.String("error", dbErr.Error()))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.Info("Applied migrations", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}

// migrationURL rewrites a postgres DSN to the scheme registered by the pgx/v5 migrate driver.
func migrationURL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
