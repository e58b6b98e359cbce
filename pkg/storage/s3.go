package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/JaimeStill/image-lab/pkg/lifecycle"
)

// s3Store keeps artifacts as objects in a single bucket.
type s3Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger *slog.Logger
}

func newS3(cfg *Config, logger *slog.Logger) (*s3Store, error) {
	s3cfg := cfg.S3
	if s3cfg.Bucket == "" {
		return nil, fmt.Errorf("s3.bucket required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3cfg.Region),
	}
	if s3cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
		o.UsePathStyle = s3cfg.UsePathStyle
	})

	return &s3Store{
		client: client,
		bucket: s3cfg.Bucket,
		prefix: strings.Trim(s3cfg.Prefix, "/"),
		logger: logger.With("system", "storage", "backend", BackendS3),
	}, nil
}

func (s *s3Store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting storage system", "bucket", s.bucket, "prefix", s.prefix)

	lc.OnStartup(func() {
		_, err := s.client.HeadBucket(lc.Context(), &s3.HeadBucketInput{
			Bucket: aws.String(s.bucket),
		})
		if err != nil {
			s.logger.Error("bucket check failed", "error", err)
			return
		}
		s.logger.Info("bucket reachable")
	})

	return nil
}

// Create uses a conditional put (If-None-Match: *) so an occupied key is
// rejected by the server rather than overwritten.
func (s *s3Store) Create(ctx context.Context, key string, data []byte) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		IfNoneMatch: aws.String("*"),
	}
	if ct := mime.TypeByExtension(path.Ext(objectKey)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		if isPreconditionFailed(err) {
			return ErrExists
		}
		return fmt.Errorf("%w: put object: %w", ErrUnavailable, err)
	}

	return nil
}

func (s *s3Store) Retrieve(ctx context.Context, key string) ([]byte, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) || httpStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if httpStatus(err) == http.StatusForbidden {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("%w: get object: %w", ErrUnavailable, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read object: %w", ErrUnavailable, err)
	}

	return data, nil
}

func (s *s3Store) Validate(ctx context.Context, key string) (bool, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) || httpStatus(err) == http.StatusNotFound {
			return false, nil
		}
		if httpStatus(err) == http.StatusForbidden {
			return false, ErrPermissionDenied
		}
		return false, fmt.Errorf("%w: head object: %w", ErrUnavailable, err)
	}

	return true, nil
}

func (s *s3Store) objectKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}

	if s.prefix == "" {
		return cleaned, nil
	}
	return s.prefix + "/" + cleaned, nil
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	return httpStatus(err) == http.StatusPreconditionFailed
}

func httpStatus(err error) int {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}
