package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mAbdullah821/gallery-app-task/internal/model"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/metrics"
	"github.com/mAbdullah821/gallery-app-task/internal/repository"
)

const (
	// ImageUploadPrefix is the object-key prefix for gallery uploads
	ImageUploadPrefix = "images"

	// MaxImageSize is the per-file upload cap
	MaxImageSize = 5 * 1024 * 1024
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidationError aggregates every violation found in an upload batch so
// one round trip reports everything wrong.
type ValidationError struct {
	Errors []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "file validation failed: " + strings.Join(e.Errors, "; ")
}

// ImageService handles image upload batches and listing
type ImageService struct {
	files *FileService
}

// NewImageService creates an ImageService
func NewImageService(files *FileService) *ImageService {
	return &ImageService{files: files}
}

// UploadImages validates a batch, uploads the files concurrently and
// persists one metadata row per stored object. Validation happens up front:
// a batch with any invalid file issues zero uploads. A failure after some
// files already uploaded fails the whole batch and leaves the stored
// objects without rows; there is deliberately no rollback here.
func (s *ImageService) UploadImages(ctx context.Context, files []*Upload, userID string) (*model.MultiUploadResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}

	if errs := validateImages(files); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	// Each goroutine writes its own index, so no lock is needed.
	images := make([]model.Image, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			obj, err := s.files.Upload(gctx, file, ImageUploadPrefix)
			if err != nil {
				return fmt.Errorf("failed to upload image %s: %w", file.Name, err)
			}

			img, err := repository.CreateImage(userID, obj)
			if err != nil {
				return fmt.Errorf("failed to persist image %s: %w", file.Name, err)
			}

			metrics.ImagesUploaded.Inc()
			images[i] = *img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("image batch upload failed",
			zap.String("user_id", userID),
			zap.Int("count", len(files)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to upload images")
	}

	return &model.MultiUploadResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully uploaded %d images", len(images)),
		Data:    images,
		Count:   len(images),
	}, nil
}

// List returns one page of the user's images, oldest first
func (s *ImageService) List(userID string, filter model.ImageFilter, page, size *int) (*model.PaginatedImages, error) {
	pageNumber, pageSize := sanitizePagination(page, size)
	offset := (pageNumber - 1) * pageSize

	images, total, err := repository.FindImagesByFilter(userID, filter, offset, pageSize)
	if err != nil {
		zap.L().Error("image listing failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list images")
	}

	if images == nil {
		images = []model.Image{}
	}

	return &model.PaginatedImages{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalItems: total,
		Data:       images,
	}, nil
}

// Get returns a single image scoped to its owner, or nil when absent
func (s *ImageService) Get(id, userID string) (*model.Image, error) {
	img, err := repository.GetImageByID(id, userID)
	if err != nil {
		zap.L().Error("image lookup failed",
			zap.String("image_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch image")
	}
	return img, nil
}

func validateImages(files []*Upload) []string {
	var errs []string
	for i, file := range files {
		if !allowedImageTypes[file.ContentType] {
			errs = append(errs, fmt.Sprintf("File %d (%s) is not a valid image type", i+1, file.Name))
		}
		if file.Size > MaxImageSize {
			errs = append(errs, fmt.Sprintf("File %d (%s) exceeds maximum size of 5MB", i+1, file.Name))
		}
	}
	return errs
}
