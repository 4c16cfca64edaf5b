package model

import "time"

// Image represents stored image metadata. Rows are immutable after upload.
type Image struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	FileName    string `json:"file_name" db:"file_name"`
	ContentType string `json:"content_type" db:"content_type"`
	Size        int64  `json:"size" db:"size"`
	PublicURL   string `json:"public_url" db:"public_url"`
	UploadedAt  string `json:"uploaded_at" db:"uploaded_at"`
}

// ImageFilter holds the optional listing filters. Set fields are combined
// with AND semantics.
type ImageFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	MinSize       *int64
	MaxSize       *int64
}

// PaginatedImages is an offset-paginated listing page
type PaginatedImages struct {
	PageNumber int     `json:"pageNumber"`
	PageSize   int     `json:"pageSize"`
	TotalItems int     `json:"totalItems"`
	Data       []Image `json:"data"`
}

// StoredObject describes a file written to object storage
type StoredObject struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	PublicURL   string `json:"public_url"`
	CreatedAt   string `json:"created_at"`
}

// MultiUploadResponse is returned by the batch image upload
type MultiUploadResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Data    []Image `json:"data"`
	Count   int     `json:"count"`
}
