package config

import (
	"github.com/JaimeStill/image-lab/pkg/database"
	"github.com/JaimeStill/image-lab/pkg/logging"
	"github.com/JaimeStill/image-lab/pkg/middleware"
	"github.com/JaimeStill/image-lab/pkg/openapi"
	"github.com/JaimeStill/image-lab/pkg/pagination"
	"github.com/JaimeStill/image-lab/pkg/storage"
	"github.com/JaimeStill/image-lab/pkg/telemetry"
)

var databaseEnv = &database.Env{
	Driver:          "DATABASE_DRIVER",
	Path:            "DATABASE_PATH",
	AutoMigrate:     "DATABASE_AUTO_MIGRATE",
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Backend:        "STORAGE_BACKEND",
	BasePath:       "STORAGE_BASE_PATH",
	URLPrefix:      "STORAGE_URL_PREFIX",
	MaxUploadSize:  "STORAGE_MAX_UPLOAD_SIZE",
	S3Bucket:       "STORAGE_S3_BUCKET",
	S3Region:       "STORAGE_S3_REGION",
	S3Endpoint:     "STORAGE_S3_ENDPOINT",
	S3AccessKeyID:  "STORAGE_S3_ACCESS_KEY_ID",
	S3SecretKey:    "STORAGE_S3_SECRET_ACCESS_KEY",
	S3UsePathStyle: "STORAGE_S3_USE_PATH_STYLE",
}

var loggingEnv = &logging.Env{
	Level:     "LOGGING_LEVEL",
	Format:    "LOGGING_FORMAT",
	AddSource: "LOGGING_ADD_SOURCE",
}

var tracingEnv = &telemetry.Env{
	Enabled:     "TRACING_ENABLED",
	Endpoint:    "TRACING_ENDPOINT",
	ServiceName: "TRACING_SERVICE_NAME",
	SampleRatio: "TRACING_SAMPLE_RATIO",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.Env{
	DefaultLimit: "API_PAGINATION_DEFAULT_LIMIT",
	MaxLimit:     "API_PAGINATION_MAX_LIMIT",
}
