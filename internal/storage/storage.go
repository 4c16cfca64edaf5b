package storage

import "context"

// ObjectAttrs carries the metadata written alongside an object
type ObjectAttrs struct {
	ContentType  string
	CacheControl string
	Metadata     map[string]string
}

// ObjectStore writes blobs into a bucket configured out of band
type ObjectStore interface {
	Save(ctx context.Context, key string, data []byte, attrs ObjectAttrs) error
}
