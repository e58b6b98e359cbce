// Package api assembles the JSON API module: domain systems, their routes,
// the generated OpenAPI document, and the module middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/image-lab/internal/config"
	"github.com/JaimeStill/image-lab/pkg/middleware"
	"github.com/JaimeStill/image-lab/pkg/module"
	"github.com/JaimeStill/image-lab/pkg/openapi"
)

// Version is reported in the OpenAPI document. Set at build time with
// -ldflags "-X github.com/JaimeStill/image-lab/internal/api.Version=...".
var Version = "dev"

// SpecPath is the document route relative to the API base path.
const SpecPath = "/openapi.json"

// NewModule builds the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, domain, cfg.API.BasePath)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET "+SpecPath, openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
