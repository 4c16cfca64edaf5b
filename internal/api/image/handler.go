package image

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mAbdullah821/gallery-app-task/internal/api/file"
	"github.com/mAbdullah821/gallery-app-task/internal/model"
	"github.com/mAbdullah821/gallery-app-task/internal/service"
)

// MaxFilesPerUpload caps the multipart batch size
const MaxFilesPerUpload = 10

// Handler serves the image endpoints
type Handler struct {
	images *service.ImageService
}

// NewHandler creates an image Handler
func NewHandler(images *service.ImageService) *Handler {
	return &Handler{images: images}
}

// Upload handles the multi-image upload under the "images" form field
func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetString("user_id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid multipart form"})
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No files uploaded"})
		return
	}
	if len(headers) > MaxFilesPerUpload {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Too many files, maximum is 10"})
		return
	}

	uploads := make([]*service.Upload, 0, len(headers))
	for _, fh := range headers {
		up, err := file.ReadUpload(fh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read uploaded file"})
			return
		}
		uploads = append(uploads, up)
	}

	resp, err := h.images.UploadImages(c.Request.Context(), uploads, userID)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": "File validation failed",
				"errors": vErr.Errors,
			})
			return
		}
		if errors.Is(err, service.ErrNoFile) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "No files uploaded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List returns a paginated, filtered page of the caller's images
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	pageNumber := parseIntQuery(c, "pageNumber")
	pageSize := parseIntQuery(c, "pageSize")

	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	page, err := h.images.List(userID, filter, pageNumber, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get returns one image by id, scoped to the caller
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	img, err := h.images.Get(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Image not found"})
		return
	}

	c.JSON(http.StatusOK, img)
}

// parseIntQuery returns nil for an absent or non-numeric parameter, which
// the pagination sanitizer turns into the default.
func parseIntQuery(c *gin.Context, name string) *int {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func parseFilter(c *gin.Context) (model.ImageFilter, error) {
	var filter model.ImageFilter

	if v := c.Query("createdAfter"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("createdAfter must be an RFC3339 timestamp")
		}
		filter.CreatedAfter = &t
	}
	if v := c.Query("createdBefore"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("createdBefore must be an RFC3339 timestamp")
		}
		filter.CreatedBefore = &t
	}
	if v := c.Query("minSize"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("minSize must be an integer")
		}
		filter.MinSize = &n
	}
	if v := c.Query("maxSize"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("maxSize must be an integer")
		}
		filter.MaxSize = &n
	}

	return filter, nil
}
