package file

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mAbdullah821/gallery-app-task/internal/service"
)

// Handler serves the raw file upload endpoint
type Handler struct {
	files *service.FileService
}

// NewHandler creates a file Handler
func NewHandler(files *service.FileService) *Handler {
	return &Handler{files: files}
}

// Upload stores a single multipart file and returns its descriptor
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided for upload"})
		return
	}

	upload, err := ReadUpload(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read uploaded file"})
		return
	}

	obj, err := h.files.Upload(c.Request.Context(), upload, service.DefaultUploadPrefix)
	if err != nil {
		if errors.Is(err, service.ErrNoFile) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided for upload"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, obj)
}

// ReadUpload buffers a multipart file header into a service upload
func ReadUpload(fh *multipart.FileHeader) (*service.Upload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &service.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}
