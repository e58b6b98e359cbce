// Package artifacts serves stored image artifacts read-only by name.
package artifacts

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/image-lab/pkg/handlers"
	"github.com/JaimeStill/image-lab/pkg/imaging"
	"github.com/JaimeStill/image-lab/pkg/storage"
)

// Source reads artifact bytes by key.
type Source interface {
	Retrieve(ctx context.Context, key string) ([]byte, error)
}

// Handler serves GET /{name} from a Source.
type Handler struct {
	src    Source
	logger *slog.Logger
}

// NewHandler creates a handler serving stored artifacts from src.
func NewHandler(src Source, logger *slog.Logger) *Handler {
	return &Handler{
		src:    src,
		logger: logger.With("handler", "artifacts"),
	}
}

// Mux returns a mux with the artifact route registered relative to the
// module prefix.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{name}", h.Serve)
	return mux
}

// Serve writes the artifact named by the path. Stored names are never
// reused, so the name doubles as a strong ETag.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	data, err := h.src.Retrieve(r.Context(), name)
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}

	if format, ok := imaging.FormatFromExtension(storage.Extension(name)); ok {
		if ct, err := format.MimeType(); err == nil {
			w.Header().Set("Content-Type", ct)
		}
	}
	w.Header().Set("ETag", strconv.Quote(name))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}

func mapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidKey):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
