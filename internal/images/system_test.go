package images_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/image-lab/internal/images"
	"github.com/JaimeStill/image-lab/pkg/imaging"
	"github.com/JaimeStill/image-lab/pkg/pagination"
	"github.com/JaimeStill/image-lab/pkg/storage"
)

func TestSystem_Ingest(t *testing.T) {
	f := newFixture(t)

	img, err := f.sys.Ingest(context.Background(), images.UploadCommand{
		Title:    "Test image",
		Width:    100,
		Height:   100,
		Filename: "pixel.png",
		Data:     pixelPNG(t),
	})
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	if img.Title != "Test image" || img.Width != 100 || img.Height != 100 {
		t.Errorf("Ingest() = %+v", img)
	}
	if !strings.HasSuffix(img.Filename, ".png") {
		t.Errorf("Filename = %q, want .png extension", img.Filename)
	}

	resp := images.ToResponse(*img, "/uploads")
	if resp.URL != "/uploads/"+img.Filename {
		t.Errorf("URL = %q", resp.URL)
	}

	data, err := os.ReadFile(filepath.Join(f.uploadDir, img.Filename))
	if err != nil {
		t.Fatalf("artifact not resolvable: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("artifact not decodable: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 100 {
		t.Errorf("artifact = %dx%d, want 100x100", cfg.Width, cfg.Height)
	}
	if format != "png" {
		t.Errorf("artifact format = %q, want png", format)
	}

	found, err := f.sys.Find(context.Background(), img.ID)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if found.Filename != img.Filename {
		t.Errorf("Find().Filename = %q, want %q", found.Filename, img.Filename)
	}
}

func TestSystem_Ingest_OutputDimensions(t *testing.T) {
	f := newFixture(t)
	src := gradientPNG(t, 64, 24)

	tests := []struct {
		name          string
		width, height int
	}{
		{"downscale wide", 16, 16},
		{"upscale tall", 40, 120},
		{"same aspect", 32, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := f.sys.Ingest(context.Background(), images.UploadCommand{
				Title: tt.name, Width: tt.width, Height: tt.height, Filename: "g.png", Data: src,
			})
			if err != nil {
				t.Fatalf("Ingest() failed: %v", err)
			}

			data, err := os.ReadFile(filepath.Join(f.uploadDir, img.Filename))
			if err != nil {
				t.Fatalf("read artifact: %v", err)
			}
			cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode artifact: %v", err)
			}
			if cfg.Width != tt.width || cfg.Height != tt.height {
				t.Errorf("artifact = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.width, tt.height)
			}
		})
	}
}

func TestSystem_Ingest_ExtensionFollowsEncodedFormat(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		filename string
		ext      string
	}{
		{"photo.JPG", ".jpg"},
		{"noext", ".jpg"},
		{"anim.gif", ".gif"},
		{"pic.webp", ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			img, err := f.sys.Ingest(context.Background(), images.UploadCommand{
				Title: tt.filename, Width: 8, Height: 8, Filename: tt.filename, Data: pixelPNG(t),
			})
			if err != nil {
				t.Fatalf("Ingest() failed: %v", err)
			}
			if !strings.HasSuffix(img.Filename, tt.ext) {
				t.Errorf("Filename = %q, want suffix %q", img.Filename, tt.ext)
			}
		})
	}
}

func TestSystem_Ingest_Validation(t *testing.T) {
	tests := []struct {
		name string
		cmd  images.UploadCommand
	}{
		{"zero width", images.UploadCommand{Title: "t", Width: 0, Height: 10}},
		{"negative height", images.UploadCommand{Title: "t", Width: 10, Height: -1}},
		{"blank title", images.UploadCommand{Title: "   ", Width: 10, Height: 10}},
		{"long title", images.UploadCommand{Title: strings.Repeat("é", 256), Width: 10, Height: 10}},
		{"over max dimension", images.UploadCommand{Title: "t", Width: 4001, Height: 10}},
		{"empty data", images.UploadCommand{Title: "t", Width: 10, Height: 10, Data: []byte{}}},
		{"not an image", images.UploadCommand{Title: "t", Width: 10, Height: 10, Data: []byte("plain text")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cmd := tt.cmd
			if cmd.Data == nil {
				cmd.Data = pixelPNG(t)
			}

			_, err := f.sys.Ingest(context.Background(), cmd)
			if !errors.Is(err, images.ErrValidation) {
				t.Fatalf("Ingest() error = %v, want ErrValidation", err)
			}

			if n := artifactCount(t, f.uploadDir); n != 0 {
				t.Errorf("%d artifacts written, want 0", n)
			}

			page, err := f.sys.List(context.Background(), images.ListQuery{})
			if err != nil {
				t.Fatalf("List() failed: %v", err)
			}
			if page.Meta.Total != 0 {
				t.Errorf("total = %d, want 0 records", page.Meta.Total)
			}
		})
	}
}

func TestSystem_Ingest_TitleAtLimit(t *testing.T) {
	f := newFixture(t)

	title := strings.Repeat("é", images.MaxTitleLength)
	img, err := f.sys.Ingest(context.Background(), images.UploadCommand{
		Title: "  " + title + "  ", Width: 4, Height: 4, Filename: "a.png", Data: pixelPNG(t),
	})
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}
	if img.Title != title {
		t.Error("title not trimmed")
	}
}

func TestSystem_Ingest_ConcurrentUniqueFilenames(t *testing.T) {
	f := newFixture(t)
	data := pixelPNG(t)

	const n = 16
	names := make([]string, n)

	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			img, err := f.sys.Ingest(context.Background(), images.UploadCommand{
				Title: "concurrent", Width: 4, Height: 4, Filename: "a.png", Data: data,
			})
			if err != nil {
				return err
			}
			names[i] = img.Filename
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	seen := make(map[string]bool, n)
	for _, name := range names {
		if seen[name] {
			t.Errorf("duplicate filename %q", name)
		}
		seen[name] = true
	}
	if got := artifactCount(t, f.uploadDir); got != n {
		t.Errorf("artifact count = %d, want %d", got, n)
	}
}

type failingRepo struct {
	images.Repository
}

func (failingRepo) Create(context.Context, *images.Image) (*images.Image, error) {
	return nil, images.ErrPersistence
}

func TestSystem_Ingest_PersistFailureOrphansArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := &storage.Config{BasePath: dir}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	store, err := storage.New(cfg, discard)
	if err != nil {
		t.Fatalf("storage.New() failed: %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	sys := images.New(failingRepo{}, storage.NewArtifacts(store, discard), imaging.New(imaging.Options{}), logger, images.Options{})

	_, err = sys.Ingest(context.Background(), images.UploadCommand{
		Title: "orphan", Width: 4, Height: 4, Filename: "a.png", Data: pixelPNG(t),
	})
	if !errors.Is(err, images.ErrPersistence) {
		t.Fatalf("Ingest() error = %v, want ErrPersistence", err)
	}

	if n := artifactCount(t, dir); n != 1 {
		t.Errorf("artifact count = %d, want 1 orphan", n)
	}
	if !strings.Contains(logs.String(), "level=WARN") || !strings.Contains(logs.String(), "orphaned") {
		t.Errorf("orphan not logged at WARN: %s", logs.String())
	}
}

type failingStore struct{}

func (failingStore) Store(context.Context, []byte, string) (string, error) {
	return "", storage.ErrUnavailable
}

func TestSystem_Ingest_StoreFailure(t *testing.T) {
	repo := newRepository(t)
	sys := images.New(repo, failingStore{}, imaging.New(imaging.Options{}), discard, images.Options{
		Pagination: pagination.Config{DefaultLimit: 10, MaxLimit: 100},
	})

	_, err := sys.Ingest(context.Background(), images.UploadCommand{
		Title: "t", Width: 4, Height: 4, Filename: "a.png", Data: pixelPNG(t),
	})
	if !errors.Is(err, images.ErrInternal) {
		t.Errorf("error = %v, want ErrInternal", err)
	}
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("error = %v, want cause ErrUnavailable", err)
	}

	_, total, err := repo.FindPage(context.Background(), images.Filters{}, 1, 10)
	if err != nil {
		t.Fatalf("FindPage() failed: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestSystem_Find_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.sys.Find(context.Background(), uuid.New())
	if !errors.Is(err, images.ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}

func ingestN(t *testing.T, sys images.System, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := sys.Ingest(context.Background(), images.UploadCommand{
			Title: title, Width: 2, Height: 2, Filename: "a.png", Data: pixelPNG(t),
		})
		if err != nil {
			t.Fatalf("Ingest(%q) failed: %v", title, err)
		}
	}
}

func TestSystem_List(t *testing.T) {
	f := newFixture(t, func(o *images.Options) {
		o.Pagination = pagination.Config{DefaultLimit: 10, MaxLimit: 3}
	})
	ingestN(t, f.sys, "one", "two", "three", "four", "five", "six")

	tests := []struct {
		name      string
		query     images.ListQuery
		wantPage  int
		wantLimit int
		wantItems int
	}{
		{"defaults clamp to max", images.ListQuery{}, 1, 3, 3},
		{"explicit window", images.ListQuery{PageRequest: pagination.PageRequest{Page: 2, Limit: 2}}, 2, 2, 2},
		{"limit clamped", images.ListQuery{PageRequest: pagination.PageRequest{Page: 1, Limit: 50}}, 1, 3, 3},
		{"beyond range", images.ListQuery{PageRequest: pagination.PageRequest{Page: 10, Limit: 2}}, 10, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.sys.List(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("List() failed: %v", err)
			}
			if result.Meta.Page != tt.wantPage || result.Meta.Limit != tt.wantLimit {
				t.Errorf("meta = %+v, want page %d limit %d", result.Meta, tt.wantPage, tt.wantLimit)
			}
			if result.Meta.Total != 6 {
				t.Errorf("total = %d, want 6", result.Meta.Total)
			}
			if len(result.Data) != tt.wantItems {
				t.Errorf("len(data) = %d, want %d", len(result.Data), tt.wantItems)
			}
		})
	}
}

func TestSystem_List_DefaultLimit(t *testing.T) {
	f := newFixture(t)
	ingestN(t, f.sys, "a", "b")

	result, err := f.sys.List(context.Background(), images.ListQuery{})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if result.Meta.Page != 1 || result.Meta.Limit != 10 {
		t.Errorf("meta = %+v, want page 1 limit 10", result.Meta)
	}
}

func TestSystem_List_Invalid(t *testing.T) {
	f := newFixture(t)

	for _, q := range []images.ListQuery{
		{PageRequest: pagination.PageRequest{Page: -1}},
		{PageRequest: pagination.PageRequest{Limit: -5}},
	} {
		if _, err := f.sys.List(context.Background(), q); !errors.Is(err, images.ErrValidation) {
			t.Errorf("List(%+v) error = %v, want ErrValidation", q.PageRequest, err)
		}
	}
}

func TestSystem_List_TitleFilter(t *testing.T) {
	f := newFixture(t)
	ingestN(t, f.sys, "Sunset", "Harbor", "sunflower")

	title := "sun"
	result, err := f.sys.List(context.Background(), images.ListQuery{Filters: images.Filters{Title: &title}})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if result.Meta.Total != 2 {
		t.Errorf("total = %d, want 2", result.Meta.Total)
	}
	for _, img := range result.Data {
		if !strings.Contains(strings.ToLower(img.Title), "sun") {
			t.Errorf("unexpected match %q", img.Title)
		}
	}
}

func TestSystem_Ingest_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { tp.Shutdown(context.Background()) })

	f := newFixture(t, func(o *images.Options) {
		o.Tracer = tp.Tracer("test")
	})

	ingestN(t, f.sys, "traced")
	f.sys.Ingest(context.Background(), images.UploadCommand{Title: "bad", Width: 1, Height: 1, Data: []byte("x")})

	spans := map[string]int{}
	failed := 0
	for _, s := range recorder.Ended() {
		spans[s.Name()]++
		if s.Status().Code == codes.Error {
			failed++
		}
	}

	for _, name := range []string{"images.Ingest", "images.resize", "images.store", "images.persist"} {
		if spans[name] == 0 {
			t.Errorf("span %q not recorded", name)
		}
	}
	if failed == 0 {
		t.Error("failed ingest did not mark a span as error")
	}
}
