package server

import (
	"net/http"
	"time"

	"github.com/JaimeStill/image-lab/internal/api"
	"github.com/JaimeStill/image-lab/internal/config"
	"github.com/JaimeStill/image-lab/internal/infrastructure"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	handler http.Handler
	http    *httpServer
}

// New wires modules and the router over infra.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) (*Server, error) {
	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(cfg, runtime)

	modules, err := NewModules(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	router := buildRouter(cfg, infra.Lifecycle)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", api.Version,
		"database", cfg.Database.Driver,
		"storage", cfg.Storage.Backend,
	)

	return &Server{
		infra:   infra,
		handler: router,
		http:    newHTTPServer(cfg, router, infra.Logger),
	}, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
