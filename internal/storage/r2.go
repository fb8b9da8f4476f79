package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore is the put/delete byte-blob contract the services depend on.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// R2Store stores objects in a Cloudflare R2 bucket. R2 is S3-compatible, so
// the standard SDK works with a custom base endpoint.
type R2Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// Config holds the settings needed to reach the bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// NewR2Store creates an object store backed by an S3-compatible endpoint.
func NewR2Store(cfg Config) (*R2Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required for R2 storage")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Put uploads an object and returns its public URL.
func (s *R2Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// Delete removes an object. Deleting a missing key is not an error.
func (s *R2Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the public URL for a stored key.
func (s *R2Store) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// ProfilePictureKey builds the storage key for a user's profile picture.
func ProfilePictureKey(userID uuid.UUID, filename string) string {
	return fmt.Sprintf("profile-pictures/%s/%d-%s", userID, time.Now().UnixMilli(), filename)
}

// DocumentKey builds the storage key for an uploaded document file.
func DocumentKey(userID uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%d-%s", userID, time.Now().UnixMilli(), filename)
}
