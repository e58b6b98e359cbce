// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies domain systems require: logging, database,
// artifact storage, and tracing.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/image-lab/internal/config"
	"github.com/JaimeStill/image-lab/internal/migrations"
	"github.com/JaimeStill/image-lab/pkg/database"
	"github.com/JaimeStill/image-lab/pkg/lifecycle"
	"github.com/JaimeStill/image-lab/pkg/logging"
	"github.com/JaimeStill/image-lab/pkg/storage"
	"github.com/JaimeStill/image-lab/pkg/telemetry"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System

	cfg           *config.Config
	shutdownTrace telemetry.ShutdownFunc
}

// New creates an Infrastructure logging to stdout.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates an Infrastructure whose logger writes to w.
func NewWithWriter(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.NewWithWriter(&cfg.Logging, w)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	shutdownTrace, err := telemetry.Setup(lc.Context(), &cfg.Tracing, logger.With("system", "tracing"))
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:     lc,
		Logger:        logger,
		Database:      db,
		Storage:       store,
		cfg:           cfg,
		shutdownTrace: shutdownTrace,
	}, nil
}

// Migrate applies pending schema migrations for the configured driver.
func (i *Infrastructure) Migrate() error {
	fsys, err := migrations.For(i.cfg.Database.Driver)
	if err != nil {
		return err
	}

	m, err := database.NewMigrator(&i.cfg.Database, fsys, i.Logger)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), i.cfg.ShutdownTimeoutDuration())
		defer cancel()

		if err := i.shutdownTrace(ctx); err != nil {
			i.Logger.Error("tracer shutdown failed", "error", err)
		}
	})

	return nil
}
