// Package middleware provides composable http.Handler wrappers for request
// logging, CORS, and path canonicalization.
package middleware

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// System is an ordered middleware stack. The first registered middleware
// is the outermost wrapper.
type System struct {
	stack []Middleware
}

// New creates an empty stack.
func New() *System {
	return &System{}
}

// Use appends mw to the stack.
func (s *System) Use(mw func(http.Handler) http.Handler) {
	s.stack = append(s.stack, mw)
}

// Apply wraps handler with every registered middleware.
func (s *System) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
