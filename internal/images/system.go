package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/JaimeStill/image-lab/pkg/imaging"
	"github.com/JaimeStill/image-lab/pkg/pagination"
	"github.com/JaimeStill/image-lab/pkg/storage"
)

const tracerName = "github.com/JaimeStill/image-lab/internal/images"

// System defines image ingestion and retrieval.
type System interface {
	Handler() *Handler

	// Ingest validates, resizes, stores, and persists an upload.
	Ingest(ctx context.Context, cmd UploadCommand) (*Image, error)

	// List returns a page of images. Unset page and limit take configured
	// defaults and limit is clamped to the configured maximum.
	List(ctx context.Context, q ListQuery) (*pagination.PageResult[Image], error)

	// Find retrieves an image record by its ID.
	Find(ctx context.Context, id uuid.UUID) (*Image, error)
}

// ArtifactStore writes artifact bytes under a generated name and returns it.
type ArtifactStore interface {
	Store(ctx context.Context, data []byte, originalName string) (string, error)
}

// Resizer produces an encoded width×height cover resize of data.
type Resizer interface {
	Resize(data []byte, width, height int, format imaging.Format) (imaging.Result, error)
}

// Options configures a System.
type Options struct {
	Pagination    pagination.Config
	MaxDimension  int
	MaxUploadSize int64
	URLPrefix     string

	// Tracer defaults to the global provider's tracer.
	Tracer trace.Tracer
}

type system struct {
	repo      Repository
	artifacts ArtifactStore
	resizer   Resizer
	logger    *slog.Logger
	opts      Options
	tracer    trace.Tracer
}

// New creates the image system.
func New(repo Repository, artifacts ArtifactStore, resizer Resizer, logger *slog.Logger, opts Options) System {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &system{
		repo:      repo,
		artifacts: artifacts,
		resizer:   resizer,
		logger:    logger.With("system", "images"),
		opts:      opts,
		tracer:    tracer,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger, HandlerConfig{
		URLPrefix:     s.opts.URLPrefix,
		MaxUploadSize: s.opts.MaxUploadSize,
	})
}

func (s *system) Ingest(ctx context.Context, cmd UploadCommand) (img *Image, err error) {
	ctx, span := s.tracer.Start(ctx, "images.Ingest")
	defer func() { endSpan(span, err) }()

	if err := cmd.Validate(s.opts.MaxDimension); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("image.width", cmd.Width),
		attribute.Int("image.height", cmd.Height),
		attribute.Int("upload.bytes", len(cmd.Data)),
	)

	start := time.Now()

	result, err := s.resize(ctx, cmd)
	if err != nil {
		return nil, err
	}

	key, err := s.store(ctx, result)
	if err != nil {
		return nil, err
	}

	img, err = s.persist(ctx, &Image{
		Title:    cmd.Title,
		Filename: key,
		Width:    cmd.Width,
		Height:   cmd.Height,
	})
	if err != nil {
		s.logger.Warn("artifact orphaned after metadata write failed", "filename", key, "error", err)
		return nil, err
	}

	s.logger.Info("image ingested",
		"id", img.ID,
		"filename", img.Filename,
		"width", img.Width,
		"height", img.Height,
		"source_format", result.Source,
		"duration", time.Since(start),
	)
	return img, nil
}

// resize encodes to the format named by the upload's extension; an
// extension without an encoder falls back inside the resizer.
func (s *system) resize(ctx context.Context, cmd UploadCommand) (result imaging.Result, err error) {
	_, span := s.tracer.Start(ctx, "images.resize")
	defer func() { endSpan(span, err) }()

	target, _ := imaging.FormatFromExtension(storage.Extension(cmd.Filename))

	result, err = s.resizer.Resize(cmd.Data, cmd.Width, cmd.Height, target)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrDecode):
			return result, fmt.Errorf("%w: not a valid image", ErrValidation)
		case errors.Is(err, imaging.ErrTooLarge), errors.Is(err, imaging.ErrInvalidDimensions):
			return result, fmt.Errorf("%w: %v", ErrValidation, err)
		default:
			return result, fmt.Errorf("%w: resize: %w", ErrInternal, err)
		}
	}

	span.SetAttributes(
		attribute.String("image.source_format", string(result.Source)),
		attribute.String("image.output_format", string(result.Format)),
	)
	return result, nil
}

// store names the artifact after the encoded format so the extension always
// matches the bytes.
func (s *system) store(ctx context.Context, result imaging.Result) (key string, err error) {
	ctx, span := s.tracer.Start(ctx, "images.store")
	defer func() { endSpan(span, err) }()

	key, err = s.artifacts.Store(ctx, result.Data, "artifact"+result.Format.Extension())
	if err != nil {
		return "", fmt.Errorf("%w: store artifact: %w", ErrInternal, err)
	}

	span.SetAttributes(attribute.String("artifact.key", key))
	return key, nil
}

func (s *system) persist(ctx context.Context, img *Image) (created *Image, err error) {
	ctx, span := s.tracer.Start(ctx, "images.persist")
	defer func() { endSpan(span, err) }()

	return s.repo.Create(ctx, img)
}

func (s *system) List(ctx context.Context, q ListQuery) (result *pagination.PageResult[Image], err error) {
	ctx, span := s.tracer.Start(ctx, "images.List")
	defer func() { endSpan(span, err) }()

	if err := q.PageRequest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	page := q.PageRequest
	page.Normalize(s.opts.Pagination)

	span.SetAttributes(
		attribute.Int("page", page.Page),
		attribute.Int("limit", page.Limit),
		attribute.Bool("filter.title", q.Title != nil),
	)

	items, total, err := s.repo.FindPage(ctx, q.Filters, page.Page, page.Limit)
	if err != nil {
		return nil, err
	}

	out := pagination.NewPageResult(items, total, page.Page, page.Limit)
	return &out, nil
}

func (s *system) Find(ctx context.Context, id uuid.UUID) (img *Image, err error) {
	ctx, span := s.tracer.Start(ctx, "images.Find", trace.WithAttributes(attribute.String("image.id", id.String())))
	defer func() { endSpan(span, err) }()

	return s.repo.FindByID(ctx, id)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
