// Package storage implements the media-hosting collaborator: clients
// send images as base64 data URIs, the server stores the decoded blob in
// an S3-compatible bucket (AWS or MinIO) and persists only the resulting
// public URL. The rest of the application depends on the Uploader
// interface so tests can substitute a fake.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/iliyamo/direct-chat/internal/config"
)

// ErrBadImage is returned when the supplied payload is not a decodable
// image data URI.
var ErrBadImage = errors.New("invalid image payload")

// Uploader stores an image blob and returns the URL it is served from.
// The folder groups objects by purpose ("avatars", "messages").
type Uploader interface {
	Upload(ctx context.Context, folder, dataURI string) (string, error)
}

// S3Store uploads media to an S3 bucket and serves it from a public
// base URL.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds an S3 client from the application config. A custom
// endpoint switches the client into path-style addressing for MinIO.
// Static credentials are used when configured, otherwise the SDK's
// default chain applies.
func NewS3Store(ctx context.Context, cfg config.Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.S3PublicURL
	if base == "" {
		if cfg.S3Endpoint != "" {
			base = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.S3Endpoint, "/"), cfg.S3Bucket)
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}
	return &S3Store{client: client, bucket: cfg.S3Bucket, baseURL: strings.TrimRight(base, "/")}, nil
}

// Upload decodes the data URI, writes the blob under a random key inside
// the folder and returns the public object URL.
func (s *S3Store) Upload(ctx context.Context, folder, dataURI string) (string, error) {
	contentType, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New(), extFor(contentType))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// DecodeDataURI splits a "data:<type>;base64,<payload>" string into its
// content type and decoded bytes. Anything else is rejected with
// ErrBadImage.
func DecodeDataURI(s string) (string, []byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return "", nil, ErrBadImage
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrBadImage
	}
	contentType := strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrBadImage
	}
	return contentType, data, nil
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
