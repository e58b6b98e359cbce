package images

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for image operations.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("image not found")
	ErrInternal    = errors.New("internal error")
	ErrPersistence = errors.New("persistence failed")
	ErrTooLarge    = errors.New("upload exceeds size limit")

	// ErrDuplicate also matches ErrPersistence.
	ErrDuplicate = fmt.Errorf("%w: image already exists", ErrPersistence)
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
