package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrInvalid is returned for a page or limit that is not a positive integer.
var ErrInvalid = errors.New("invalid pagination parameter")

// PageRequest identifies a 1-based page window. Zero means not supplied.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Validate rejects explicitly negative values. Zero is treated as unset.
func (r PageRequest) Validate() error {
	if r.Page < 0 {
		return fmt.Errorf("%w: page must be >= 1", ErrInvalid)
	}
	if r.Limit < 0 {
		return fmt.Errorf("%w: limit must be >= 1", ErrInvalid)
	}
	return nil
}

// Normalize fills unset values from cfg and clamps limit to cfg.MaxLimit.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
}

// PageRequestFromQuery parses page and limit from URL query values.
// Absent parameters stay zero; present ones must be integers >= 1.
func PageRequestFromQuery(values url.Values) (PageRequest, error) {
	var req PageRequest
	var err error

	if req.Page, err = parsePositive(values, "page"); err != nil {
		return PageRequest{}, err
	}
	if req.Limit, err = parsePositive(values, "limit"); err != nil {
		return PageRequest{}, err
	}

	return req, nil
}

func parsePositive(values url.Values, key string) (int, error) {
	if !values.Has(key) {
		return 0, nil
	}

	raw := values.Get(key)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalid, key, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %s must be >= 1", ErrInvalid, key)
	}
	return n, nil
}

// Meta describes the window a PageResult covers.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageResult is the paged response envelope.
type PageResult[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPageResult creates a PageResult. A nil data slice becomes empty.
func NewPageResult[T any](data []T, total, page, limit int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data: data,
		Meta: Meta{
			Total: total,
			Page:  page,
			Limit: limit,
		},
	}
}

// Map converts each item of a PageResult, preserving Meta.
func Map[T, U any](r PageResult[T], fn func(T) U) PageResult[U] {
	out := make([]U, len(r.Data))
	for i, item := range r.Data {
		out[i] = fn(item)
	}
	return PageResult[U]{Data: out, Meta: r.Meta}
}
