package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvImagesMaxDimension  = "IMAGES_MAX_DIMENSION"
	EnvImagesJPEGQuality   = "IMAGES_JPEG_QUALITY"
	EnvImagesMaxPixels     = "IMAGES_MAX_PIXELS"
	EnvImagesStoreAttempts = "IMAGES_STORE_ATTEMPTS"
)

// ImagesConfig bounds ingestion and tunes output encoding.
type ImagesConfig struct {
	// MaxDimension caps the requested width and height. Default: 10000
	MaxDimension int `toml:"max_dimension"`

	// JPEGQuality is the encoder quality for JPEG output, 1-100. Default: 90
	JPEGQuality int `toml:"jpeg_quality"`

	// MaxPixels caps width*height of the output canvas. Default: 50000000
	MaxPixels int `toml:"max_pixels"`

	// StoreAttempts bounds filename regeneration on collision. Default: 5
	StoreAttempts int `toml:"store_attempts"`
}

func (c *ImagesConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ImagesConfig) Merge(overlay *ImagesConfig) {
	if overlay.MaxDimension != 0 {
		c.MaxDimension = overlay.MaxDimension
	}
	if overlay.JPEGQuality != 0 {
		c.JPEGQuality = overlay.JPEGQuality
	}
	if overlay.MaxPixels != 0 {
		c.MaxPixels = overlay.MaxPixels
	}
	if overlay.StoreAttempts != 0 {
		c.StoreAttempts = overlay.StoreAttempts
	}
}

func (c *ImagesConfig) loadDefaults() {
	if c.MaxDimension == 0 {
		c.MaxDimension = 10000
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = 90
	}
	if c.MaxPixels == 0 {
		c.MaxPixels = 50_000_000
	}
	if c.StoreAttempts == 0 {
		c.StoreAttempts = 5
	}
}

func (c *ImagesConfig) loadEnv() {
	for name, dst := range map[string]*int{
		EnvImagesMaxDimension:  &c.MaxDimension,
		EnvImagesJPEGQuality:   &c.JPEGQuality,
		EnvImagesMaxPixels:     &c.MaxPixels,
		EnvImagesStoreAttempts: &c.StoreAttempts,
	} {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
}

func (c *ImagesConfig) validate() error {
	if c.MaxDimension < 1 {
		return fmt.Errorf("max_dimension must be positive: %d", c.MaxDimension)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be within [1, 100]: %d", c.JPEGQuality)
	}
	if c.MaxPixels < 1 {
		return fmt.Errorf("max_pixels must be positive: %d", c.MaxPixels)
	}
	if c.StoreAttempts < 1 {
		return fmt.Errorf("store_attempts must be positive: %d", c.StoreAttempts)
	}
	return nil
}
