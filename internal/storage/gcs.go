package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// GCSStore writes objects into a Google Cloud Storage bucket
type GCSStore struct {
	bucket *gcs.BucketHandle
}

// NewGCSStore creates a GCS-backed object store. Credentials are resolved
// from the environment the way the GCS SDK normally does.
func NewGCSStore(ctx context.Context, bucketName string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSStore{bucket: client.Bucket(bucketName)}, nil
}

// Save writes data under key with the given metadata
func (s *GCSStore) Save(ctx context.Context, key string, data []byte, attrs ObjectAttrs) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = attrs.ContentType
	w.CacheControl = attrs.CacheControl
	w.Metadata = attrs.Metadata

	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// PublicURL returns the canonical public URL for an object
func PublicURL(bucketName, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, key)
}
