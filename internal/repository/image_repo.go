package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mAbdullah821/gallery-app-task/internal/model"
)

// CreateImage inserts image metadata for a user and returns the stored record
func CreateImage(userID string, obj *model.StoredObject) (*model.Image, error) {
	image := &model.Image{
		ID:          uuid.NewString(),
		UserID:      userID,
		FileName:    obj.FileName,
		ContentType: obj.ContentType,
		Size:        obj.Size,
		PublicURL:   obj.PublicURL,
		UploadedAt:  obj.CreatedAt,
	}

	query := `
		INSERT INTO images (id, user_id, file_name, content_type, size, public_url, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := db.Exec(query, image.ID, image.UserID, image.FileName, image.ContentType, image.Size, image.PublicURL, image.UploadedAt); err != nil {
		return nil, err
	}

	return image, nil
}

// FindImagesByFilter returns one page of a user's images plus the total
// match count. The user_id constraint is always present, so one tenant can
// never page through another tenant's rows.
func FindImagesByFilter(userID string, filter model.ImageFilter, offset, limit int) ([]model.Image, int, error) {
	conds := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.CreatedAfter != nil {
		conds = append(conds, "uploaded_at >= ?")
		args = append(args, filter.CreatedAfter.UTC().Format(time.RFC3339))
	}
	if filter.CreatedBefore != nil {
		conds = append(conds, "uploaded_at <= ?")
		args = append(args, filter.CreatedBefore.UTC().Format(time.RFC3339))
	}
	if filter.MinSize != nil {
		conds = append(conds, "size >= ?")
		args = append(args, *filter.MinSize)
	}
	if filter.MaxSize != nil {
		conds = append(conds, "size <= ?")
		args = append(args, *filter.MaxSize)
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM images WHERE ` + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, file_name, content_type, size, public_url, uploaded_at
		FROM images WHERE ` + where + `
		ORDER BY uploaded_at ASC, id ASC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var img model.Image
		err := rows.Scan(&img.ID, &img.UserID, &img.FileName, &img.ContentType, &img.Size, &img.PublicURL, &img.UploadedAt)
		if err != nil {
			return nil, 0, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

// GetImageByID returns an image scoped to its owner, or nil when absent
func GetImageByID(id, userID string) (*model.Image, error) {
	query := `
		SELECT id, user_id, file_name, content_type, size, public_url, uploaded_at
		FROM images WHERE id = ? AND user_id = ?
	`

	img := &model.Image{}
	err := db.QueryRow(query, id, userID).Scan(
		&img.ID, &img.UserID, &img.FileName, &img.ContentType,
		&img.Size, &img.PublicURL, &img.UploadedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return img, nil
}
