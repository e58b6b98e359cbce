// Package database manages the SQL connection pool and schema migrations.
// Postgres is reached through pgx's database/sql driver and SQLite through
// the pure-Go modernc driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/JaimeStill/image-lab/pkg/lifecycle"
	"github.com/JaimeStill/image-lab/pkg/query"
)

// System exposes the connection pool and its dialect.
type System interface {
	Connection() *sql.DB
	Dialect() query.Dialect
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	cfg    *Config
	conn   *sql.DB
	logger *slog.Logger
}

// New opens a connection pool. The pool is verified during Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if err := cfg.PrepareFile(); err != nil {
		return nil, err
	}

	conn, err := sql.Open(cfg.DriverName(), cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())
	}

	return &database{
		cfg:    cfg,
		conn:   conn,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Dialect() query.Dialect {
	return d.cfg.Dialect()
}

// Start verifies connectivity and registers pool shutdown.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	d.logger.Info("database connected", "driver", d.cfg.Driver)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
