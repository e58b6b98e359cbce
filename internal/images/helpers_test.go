package images_test

import (
	"bytes"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/image-lab/internal/images"
	"github.com/JaimeStill/image-lab/internal/migrations"
	"github.com/JaimeStill/image-lab/pkg/database"
	"github.com/JaimeStill/image-lab/pkg/imaging"
	"github.com/JaimeStill/image-lab/pkg/pagination"
	"github.com/JaimeStill/image-lab/pkg/query"
	"github.com/JaimeStill/image-lab/pkg/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// pixelPNG encodes a transparent 1x1 PNG.
func pixelPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode pixel: %v", err)
	}
	return buf.Bytes()
}

func gradientPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode gradient: %v", err)
	}
	return buf.Bytes()
}

// newDB returns a migrated SQLite database in a temp directory.
func newDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "images.db"),
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	fsys, err := migrations.For(cfg.Driver)
	if err != nil {
		t.Fatalf("migrations.For() failed: %v", err)
	}
	m, err := database.NewMigrator(cfg, fsys, discard)
	if err != nil {
		t.Fatalf("NewMigrator() failed: %v", err)
	}
	if err := m.Up(); err != nil {
		t.Fatalf("Up() failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	db, err := database.New(cfg, discard)
	if err != nil {
		t.Fatalf("database.New() failed: %v", err)
	}
	t.Cleanup(func() { db.Connection().Close() })

	return db.Connection()
}

func newRepository(t *testing.T) images.Repository {
	t.Helper()
	return images.NewRepository(newDB(t), query.SQLite)
}

type fixture struct {
	sys       images.System
	repo      images.Repository
	uploadDir string
}

func newFixture(t *testing.T, opts ...func(*images.Options)) fixture {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := &storage.Config{BasePath: dir}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("storage Finalize() failed: %v", err)
	}
	store, err := storage.New(cfg, discard)
	if err != nil {
		t.Fatalf("storage.New() failed: %v", err)
	}

	repo := newRepository(t)
	o := images.Options{
		Pagination:    pagination.Config{DefaultLimit: 10, MaxLimit: 100},
		MaxDimension:  4000,
		MaxUploadSize: cfg.MaxUploadSizeBytes(),
		URLPrefix:     "/uploads",
	}
	for _, opt := range opts {
		opt(&o)
	}

	sys := images.New(repo, storage.NewArtifacts(store, discard), imaging.New(imaging.Options{}), discard, o)
	return fixture{sys: sys, repo: repo, uploadDir: dir}
}

// artifactCount counts committed artifacts, ignoring in-flight temp files.
func artifactCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && e.Name()[0] != '.' {
			n++
		}
	}
	return n
}
