package api

import (
	"net/http"

	"github.com/JaimeStill/image-lab/internal/images"
	"github.com/JaimeStill/image-lab/pkg/openapi"
	"github.com/JaimeStill/image-lab/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, domain *Domain, basePath string) {
	spec.Components.AddSchemas(images.Spec.Schemas())

	routes.Register(
		mux,
		basePath,
		spec,
		domain.Images.Handler().Routes(),
	)
}
