package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// Backend selects the artifact store implementation.
type Backend string

const (
	BackendFilesystem Backend = "filesystem"
	BackendS3         Backend = "s3"
)

// Config contains artifact storage configuration.
type Config struct {
	Backend Backend `toml:"backend"`

	// BasePath is the root directory for filesystem storage.
	// Default: ".data/uploads"
	BasePath string `toml:"base_path"`

	// URLPrefix is the public path artifacts are served under.
	// Default: "/uploads"
	URLPrefix string `toml:"url_prefix"`

	MaxUploadSize    string   `toml:"max_upload_size"`
	S3               S3Config `toml:"s3"`
	maxUploadSizeVal int64
}

// S3Config holds settings for the S3 backend. Endpoint and UsePathStyle
// target S3-compatible servers such as MinIO.
type S3Config struct {
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	Prefix          string `toml:"prefix"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	UsePathStyle    bool   `toml:"use_path_style"`
}

// Env maps environment variable names for storage configuration.
type Env struct {
	Backend        string
	BasePath       string
	URLPrefix      string
	MaxUploadSize  string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKeyID  string
	S3SecretKey    string
	S3UsePathStyle string
}

// MaxUploadSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.URLPrefix != "" {
		c.URLPrefix = overlay.URLPrefix
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
	c.S3.merge(&overlay.S3)
}

func (c *S3Config) merge(overlay *S3Config) {
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
	if overlay.AccessKeyID != "" {
		c.AccessKeyID = overlay.AccessKeyID
	}
	if overlay.SecretAccessKey != "" {
		c.SecretAccessKey = overlay.SecretAccessKey
	}
	if overlay.UsePathStyle {
		c.UsePathStyle = true
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/uploads"
	}
	if c.URLPrefix == "" {
		c.URLPrefix = "/uploads"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = Backend(v)
		}
	}
	setString(env.BasePath, &c.BasePath)
	setString(env.URLPrefix, &c.URLPrefix)
	setString(env.MaxUploadSize, &c.MaxUploadSize)
	setString(env.S3Bucket, &c.S3.Bucket)
	setString(env.S3Region, &c.S3.Region)
	setString(env.S3Endpoint, &c.S3.Endpoint)
	setString(env.S3AccessKeyID, &c.S3.AccessKeyID)
	setString(env.S3SecretKey, &c.S3.SecretAccessKey)

	if env.S3UsePathStyle != "" {
		if v := os.Getenv(env.S3UsePathStyle); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.S3.UsePathStyle = b
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket required")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be filesystem or s3)", c.Backend)
	}

	if len(c.URLPrefix) < 2 || !strings.HasPrefix(c.URLPrefix, "/") || strings.Contains(c.URLPrefix[1:], "/") {
		return fmt.Errorf("url_prefix must be a single path segment such as /uploads: %q", c.URLPrefix)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
