// Package minio uploads exported slides to S3-compatible object storage.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pdfsat/internal/ports"
)

// Config holds the object storage connection settings
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Sink implements ports.SlideSink by writing objects under a bucket prefix
type Sink struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ ports.SlideSink = (*Sink)(nil)

// IsDestination reports whether dest is an s3:// URL
func IsDestination(dest string) bool {
	return strings.HasPrefix(dest, "s3://")
}

// ParseDestination splits s3://bucket/some/prefix into bucket and prefix
func ParseDestination(dest string) (bucket, prefix string, err error) {
	u, err := url.Parse(dest)
	if err != nil {
		return "", "", fmt.Errorf("parse destination: %w", err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("destination must look like s3://bucket/prefix, got %q", dest)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// NewSink connects to the endpoint and creates the bucket when missing
func NewSink(ctx context.Context, cfg Config, dest string) (*Sink, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("object storage endpoint is not configured")
	}
	bucket, prefix, err := ParseDestination(dest)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	return &Sink{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectName returns the object key for an exported file
func (s *Sink) ObjectName(name string) string {
	return path.Join(s.prefix, name)
}

// Put uploads data as one object
func (s *Sink) Put(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.ObjectName(name),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

// Location returns the s3:// URL of the prefix
func (s *Sink) Location() string {
	if s.prefix == "" {
		return "s3://" + s.bucket
	}
	return "s3://" + s.bucket + "/" + s.prefix
}
