package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultStoreAttempts bounds name regeneration when a key is taken.
const DefaultStoreAttempts = 5

// DefaultExtension is applied when an upload name carries no usable extension.
const DefaultExtension = ".jpg"

// NameFunc mints a candidate key for the given extension.
type NameFunc func(ext string) string

// Artifacts stores payloads under generated, collision-free keys.
type Artifacts struct {
	store    System
	attempts int
	newName  NameFunc
	logger   *slog.Logger
}

// ArtifactsOption configures Artifacts.
type ArtifactsOption func(*Artifacts)

// WithAttempts sets the maximum number of keys tried per Store call.
func WithAttempts(n int) ArtifactsOption {
	return func(a *Artifacts) {
		if n > 0 {
			a.attempts = n
		}
	}
}

// WithNameFunc replaces the key generator.
func WithNameFunc(fn NameFunc) ArtifactsOption {
	return func(a *Artifacts) {
		if fn != nil {
			a.newName = fn
		}
	}
}

// NewArtifacts wraps store with key generation and collision retry.
func NewArtifacts(store System, logger *slog.Logger, opts ...ArtifactsOption) *Artifacts {
	a := &Artifacts{
		store:    store,
		attempts: DefaultStoreAttempts,
		newName:  GenerateName,
		logger:   logger.With("system", "artifacts"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store writes data under a fresh key derived from originalName's extension
// and returns the key. A taken key is regenerated; after the attempt budget
// is spent Store fails with ErrExists. Other store errors are returned as is.
func (a *Artifacts) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	ext := Extension(originalName)

	for attempt := 1; attempt <= a.attempts; attempt++ {
		key := a.newName(ext)

		err := a.store.Create(ctx, key, data)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrExists) {
			return "", err
		}

		a.logger.Debug("artifact key collision", "key", key, "attempt", attempt)
	}

	return "", fmt.Errorf("%w: no free key after %d attempts", ErrExists, a.attempts)
}

// Retrieve reads the artifact stored at key.
func (a *Artifacts) Retrieve(ctx context.Context, key string) ([]byte, error) {
	return a.store.Retrieve(ctx, key)
}

// GenerateName returns <unixMillis>-<9 random digits>-<8 random hex><ext>.
func GenerateName(ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%09d-%s%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), suffix, ext)
}

// Extension returns the lowercased extension of name including the dot,
// or DefaultExtension when name has none or it is not purely alphanumeric.
func Extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 10 {
		return DefaultExtension
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return DefaultExtension
		}
	}
	return ext
}
