package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	mdb "github.com/golang-migrate/migrate/v4/database"
	mpgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator applies versioned schema migrations from an fs.FS holding
// NNNN_name.up.sql / NNNN_name.down.sql files at its root.
type Migrator struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewMigrator opens a dedicated connection for migrations. Close releases it.
func NewMigrator(cfg *Config, migrations fs.FS, logger *slog.Logger) (*Migrator, error) {
	src, err := iofs.New(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	if err := cfg.PrepareFile(); err != nil {
		return nil, err
	}

	conn, err := sql.Open(cfg.DriverName(), cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	var driver mdb.Driver
	switch cfg.Driver {
	case DriverSQLite:
		driver, err = msqlite.WithInstance(conn, &msqlite.Config{})
	default:
		driver, err = mpgx.WithInstance(conn, &mpgx.Config{})
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(cfg.Driver), driver)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration init: %w", err)
	}

	logger = logger.With("system", "migrate")
	m.Log = &migrateLogger{logger: logger}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return m.logVersion()
}

// Down reverts the most recent migration.
func (m *Migrator) Down() error {
	if err := m.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return m.logVersion()
}

// Version returns the applied schema version. Zero with a nil error means no
// migration has been applied.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and the migration connection.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (m *Migrator) logVersion() error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("schema version", "version", v, "dirty", dirty)
	return nil
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
