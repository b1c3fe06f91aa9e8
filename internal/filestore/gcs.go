package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"fjacquet/budget-tracker/internal/logging"

	"cloud.google.com/go/storage"
)

const uploadTimeout = 2 * time.Minute

// GCSStore keeps files in a Google Cloud Storage bucket. Credentials come from
// Application Default Credentials.
type GCSStore struct {
	client *storage.Client
	bucket string
	logger logging.Logger
}

// NewGCSStore opens a storage client for bucket.
func NewGCSStore(ctx context.Context, bucket string, logger logging.Logger) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return NewGCSStoreWithClient(client, bucket, logger), nil
}

// NewGCSStoreWithClient wraps an existing client.
func NewGCSStoreWithClient(client *storage.Client, bucket string, logger logging.Logger) *GCSStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
		logger: logger.WithField(logging.FieldComponent, "GCSStore"),
	}
}

// Save uploads r as a new object.
func (s *GCSStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key := ObjectKey(name)

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy %s to GCS writer: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload of %s: %w", key, err)
	}

	s.logger.Debug("Uploaded object", logging.F("bucket", s.bucket), logging.F("key", key))
	return key, nil
}

// PublicURL returns the storage.googleapis.com URL of key, path-escaped.
func (s *GCSStore) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, url.PathEscape(key))
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
