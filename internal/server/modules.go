package server

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/JaimeStill/image-lab/internal/api"
	"github.com/JaimeStill/image-lab/internal/artifacts"
	"github.com/JaimeStill/image-lab/internal/config"
	"github.com/JaimeStill/image-lab/pkg/lifecycle"
	"github.com/JaimeStill/image-lab/pkg/middleware"
	"github.com/JaimeStill/image-lab/pkg/module"
)

// DocsPath is where the Swagger UI is served.
const DocsPath = "/docs/"

// Modules holds the mounted module handlers.
type Modules struct {
	API       *module.Module
	Artifacts *module.Module
}

// NewModules builds the API module and the read-only artifact module.
func NewModules(cfg *config.Config, runtime *api.Runtime, domain *api.Domain) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	artifactsModule := module.New(
		cfg.Storage.URLPrefix,
		artifacts.NewHandler(runtime.Storage, runtime.Logger).Mux(),
	)
	artifactsModule.Use(middleware.Logger(runtime.Logger))

	return &Modules{
		API:       apiModule,
		Artifacts: artifactsModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Artifacts)
}

func buildRouter(cfg *config.Config, ready lifecycle.ReadinessChecker) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNative("GET "+DocsPath, httpSwagger.Handler(
		httpSwagger.URL(cfg.API.BasePath+api.SpecPath),
	))

	return router
}
