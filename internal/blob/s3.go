// Package blob archives finished-run snapshot and time-series files to
// S3-compatible object storage, for callers that want durable output
// beyond a local sqlite/postgres store.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver uploads run artifacts to a single S3-compatible bucket. Keys
// map directly to object keys; there is no directory abstraction beyond
// what the caller encodes into the key itself.
type Archiver struct {
	client *s3.Client
	bucket string
}

// Config holds the explicit construction parameters for an Archiver.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional; set for a MinIO-compatible endpoint
	PathStyle       bool
	AccessKeyID     string // optional; falls back to the default credentials chain
	SecretAccessKey string
	SessionToken    string
}

// NewArchiver builds an Archiver from cfg, falling back to the default AWS
// credentials chain (environment, shared config, instance role) unless
// static credentials are supplied.
func NewArchiver(ctx context.Context, cfg Config) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob: bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
		}
	})
	return &Archiver{client: client, bucket: cfg.Bucket}, nil
}

// PutSnapshot uploads a run's snapshot or time-series payload under key.
func (a *Archiver) PutSnapshot(ctx context.Context, key string, data []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("blob: put %q: %w", key, err)
	}
	return nil
}

// GetSnapshot downloads a previously archived object.
func (a *Archiver) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: get %q: %w", key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("blob: read %q: %w", key, err)
	}
	return data, nil
}
