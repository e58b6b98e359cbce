// Package routes describes HTTP route groups and registers them on a mux
// while recording their OpenAPI operations.
package routes

import (
	"net/http"

	"github.com/JaimeStill/image-lab/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Route represents an HTTP route with method, pattern, and handler.
// Routes without OpenAPI metadata are registered but left out of the document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec records the group's operations under basePath. Operations
// without tags inherit the group's tags.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	prefix := basePath + g.Prefix

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		spec.AddOperation(route.Method, prefix+route.Pattern, op)
	}

	for _, child := range g.Children {
		child.AddToSpec(prefix, spec)
	}
}

// Register mounts every group's routes on mux and records them in spec.
// Mux patterns are relative to the module; spec paths include basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
