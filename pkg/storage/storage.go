// Package storage provides the artifact store for resized images.
// It defines a System interface with filesystem and S3 implementations and
// an Artifacts helper that mints collision-free keys.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/image-lab/pkg/lifecycle"
)

// System defines the artifact store operations.
type System interface {
	// Create writes data at key. It never overwrites: an occupied key
	// returns ErrExists. Returns ErrInvalidKey for empty or escaping keys.
	Create(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at key, or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the System selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendS3:
		return newS3(cfg, logger)
	case BackendFilesystem, "":
		return newFilesystem(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
