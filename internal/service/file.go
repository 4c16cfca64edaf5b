package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mAbdullah821/gallery-app-task/internal/model"
	"github.com/mAbdullah821/gallery-app-task/internal/storage"
)

// ErrNoFile is returned when an upload request carries no file
var ErrNoFile = errors.New("no file provided for upload")

// DefaultUploadPrefix is used when the caller supplies no destination prefix
const DefaultUploadPrefix = "default"

// Upload is an in-memory file handed to the upload workflow
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// FileService writes files to object storage
type FileService struct {
	store  storage.ObjectStore
	bucket string
}

// NewFileService creates a FileService over an object store
func NewFileService(store storage.ObjectStore, bucket string) *FileService {
	return &FileService{store: store, bucket: bucket}
}

// Upload stores a single file under prefix and returns its descriptor.
// The destination key gets a millisecond-timestamp suffix to avoid name
// collisions; two uploads of the same name within the same millisecond
// still collide.
func (s *FileService) Upload(ctx context.Context, file *Upload, prefix string) (*model.StoredObject, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, ErrNoFile
	}
	if prefix == "" {
		prefix = DefaultUploadPrefix
	}

	key := strings.ReplaceAll(fmt.Sprintf("%s/%s_%d", prefix, file.Name, time.Now().UnixMilli()), " ", "_")

	attrs := storage.ObjectAttrs{
		ContentType:  file.ContentType,
		CacheControl: "no-store, max-age=0",
		Metadata:     map[string]string{"original_name": file.Name},
	}

	if err := s.store.Save(ctx, key, file.Data, attrs); err != nil {
		zap.L().Error("failed to upload file to object storage",
			zap.String("file_name", file.Name),
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("failed to upload file")
	}

	return &model.StoredObject{
		FileName:    file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
		PublicURL:   storage.PublicURL(s.bucket, key),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}
