package model

// User represents a registered account
type User struct {
	ID               string `json:"id" db:"id"`
	Name             string `json:"name" db:"name"`
	Username         string `json:"username" db:"username"`
	PasswordHash     string `json:"-" db:"password_hash"`      // Don't serialize credentials
	RefreshTokenHash string `json:"-" db:"refresh_token_hash"` // bcrypt hash of the last issued refresh token
	CreatedAt        string `json:"created_at" db:"created_at"`
	UpdatedAt        string `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthedUser is returned by signup, login and refresh
type AuthedUser struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
