// Package minio implements pressdoc.ObjectStore on MinIO and other
// S3-compatible object storage.
package minio

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sync"
	"time"

	"github.com/fwojciec/pressdoc"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ pressdoc.ObjectStore = (*ObjectStore)(nil)

// Config holds connection settings.
type Config struct {
	Host      string
	Port      int
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
	// Region skips the bucket location lookup when set.
	Region string
}

// Endpoint returns host:port.
func (c Config) Endpoint() string {
	if c.Port == 0 {
		return c.Host
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ObjectStore uploads files into one bucket under year-month prefixes.
type ObjectStore struct {
	client *minio.Client
	bucket string
	now    func() time.Time

	mu    sync.Mutex
	ready bool
}

// Option configures an ObjectStore.
type Option func(*ObjectStore)

// WithClock sets the clock used for object name prefixes.
func WithClock(now func() time.Time) Option {
	return func(s *ObjectStore) {
		s.now = now
	}
}

// NewObjectStore creates an ObjectStore. The bucket is created on first
// upload if it does not exist.
func NewObjectStore(cfg Config, opts ...Option) (*ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "bucket required")
	}
	client, err := minio.New(cfg.Endpoint(), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.Secure,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	s := &ObjectStore{client: client, bucket: cfg.Bucket, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Upload stores the local file as YYYYMM/<base name> and returns the object
// name.
func (s *ObjectStore) Upload(ctx context.Context, path string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	name := pressdoc.ObjectName(s.now(), path)
	opts := minio.PutObjectOptions{ContentType: mime.TypeByExtension(filepath.Ext(path))}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}
	if _, err := s.client.FPutObject(ctx, s.bucket, name, path, opts); err != nil {
		return "", fmt.Errorf("uploading %s: %w", path, err)
	}
	return name, nil
}

func (s *ObjectStore) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !found {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("creating bucket %s: %w", s.bucket, err)
		}
	}
	s.ready = true
	return nil
}
