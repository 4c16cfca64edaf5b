package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mAbdullah821/gallery-app-task/internal/model"
)

// CreateUser inserts a new user and returns the stored record
func CreateUser(name, username, passwordHash string) (*model.User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO users (id, name, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := db.Exec(query, user.ID, user.Name, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByUsername returns a user by username, or nil when absent
func GetUserByUsername(username string) (*model.User, error) {
	query := `
		SELECT id, name, username, password_hash, refresh_token_hash, created_at, updated_at
		FROM users WHERE username = ?
	`
	return scanUser(db.QueryRow(query, username))
}

// GetUserByID returns a user by ID, or nil when absent
func GetUserByID(userID string) (*model.User, error) {
	query := `
		SELECT id, name, username, password_hash, refresh_token_hash, created_at, updated_at
		FROM users WHERE id = ?
	`
	return scanUser(db.QueryRow(query, userID))
}

// UpdateRefreshTokenHash overwrites the stored refresh-token hash, rotating
// out whatever token was issued before.
func UpdateRefreshTokenHash(userID, refreshTokenHash string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	query := `UPDATE users SET refresh_token_hash = ?, updated_at = ? WHERE id = ?`

	result, err := db.Exec(query, refreshTokenHash, now, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UserExists checks if a user exists by username
func UserExists(username string) (bool, error) {
	query := `SELECT 1 FROM users WHERE username = ?`
	var exists int
	err := db.QueryRow(query, username).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var refreshHash sql.NullString

	err := row.Scan(
		&user.ID, &user.Name, &user.Username, &user.PasswordHash,
		&refreshHash, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if refreshHash.Valid {
		user.RefreshTokenHash = refreshHash.String
	}

	return user, nil
}
