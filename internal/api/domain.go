package api

import (
	"github.com/JaimeStill/image-lab/internal/config"
	"github.com/JaimeStill/image-lab/internal/images"
	"github.com/JaimeStill/image-lab/pkg/imaging"
	"github.com/JaimeStill/image-lab/pkg/storage"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Images images.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	repo := images.NewRepository(runtime.Database.Connection(), runtime.Database.Dialect())

	artifacts := storage.NewArtifacts(
		runtime.Storage,
		runtime.Logger,
		storage.WithAttempts(cfg.Images.StoreAttempts),
	)

	resizer := imaging.New(imaging.Options{
		JPEGQuality: cfg.Images.JPEGQuality,
		MaxPixels:   cfg.Images.MaxPixels,
	})

	return &Domain{
		Images: images.New(repo, artifacts, resizer, runtime.Logger, images.Options{
			Pagination:    runtime.Pagination,
			MaxDimension:  cfg.Images.MaxDimension,
			MaxUploadSize: cfg.Storage.MaxUploadSizeBytes(),
			URLPrefix:     cfg.Storage.URLPrefix,
		}),
	}
}
