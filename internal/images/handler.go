package images

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/image-lab/pkg/handlers"
	"github.com/JaimeStill/image-lab/pkg/pagination"
	"github.com/JaimeStill/image-lab/pkg/routes"
)

// multipartOverhead allows for boundaries and text fields on top of the file.
const multipartOverhead = 1 << 20

// HandlerConfig holds transport settings for image endpoints.
type HandlerConfig struct {
	URLPrefix     string
	MaxUploadSize int64
}

// Handler provides HTTP endpoints for image ingestion and retrieval.
type Handler struct {
	sys    System
	logger *slog.Logger
	cfg    HandlerConfig
}

// NewHandler creates a new images HTTP handler.
func NewHandler(sys System, logger *slog.Logger, cfg HandlerConfig) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "images"),
		cfg:    cfg,
	}
}

// Routes returns the route configuration for image endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/images",
		Tags:        []string{"Images"},
		Description: "Upload, resize, and browse images",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Upload, OpenAPI: Spec.Upload},
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
		},
	}
}

// Upload handles POST / - ingests a multipart image upload.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.readUpload(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	img, err := h.sys.Ingest(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, ToResponse(*img, h.cfg.URLPrefix))
}

// List handles GET / - returns a page of images with an optional title filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := ListQueryFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.List(r.Context(), q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pagination.Map(*result, h.toResponse))
}

// Find handles GET /{id} - returns a single image.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed id", ErrValidation))
		return
	}

	img, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.toResponse(*img))
}

func (h *Handler) toResponse(img Image) Response {
	return ToResponse(img, h.cfg.URLPrefix)
}

// readUpload buffers the whole file part. Oversized bodies map to
// ErrTooLarge and malformed forms to ErrValidation.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (UploadCommand, error) {
	if h.cfg.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize+multipartOverhead)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return UploadCommand{}, classifyBodyError(err, "parse multipart form")
	}

	width, err := formInt(r, "width")
	if err != nil {
		return UploadCommand{}, err
	}
	height, err := formInt(r, "height")
	if err != nil {
		return UploadCommand{}, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return UploadCommand{}, fmt.Errorf("%w: file is required", ErrValidation)
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return UploadCommand{}, fmt.Errorf("%w: file must have an image content type, got %q", ErrValidation, ct)
	}

	if h.cfg.MaxUploadSize > 0 && header.Size > h.cfg.MaxUploadSize {
		return UploadCommand{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, header.Size, h.cfg.MaxUploadSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return UploadCommand{}, classifyBodyError(err, "read file")
	}

	return UploadCommand{
		Title:    r.FormValue("title"),
		Width:    width,
		Height:   height,
		Filename: header.Filename,
		Data:     data,
	}, nil
}

func formInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrValidation, key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrValidation, key, raw)
	}
	return n, nil
}

func classifyBodyError(err error, op string) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %s: %v", ErrValidation, op, err)
}
