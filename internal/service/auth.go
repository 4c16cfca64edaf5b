package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mAbdullah821/gallery-app-task/internal/model"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/jwt"
	"github.com/mAbdullah821/gallery-app-task/internal/repository"
)

var (
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
)

// AuthService orchestrates signup, login and refresh-token rotation
type AuthService struct {
	tokens *jwt.Issuer
}

// NewAuthService creates an AuthService
func NewAuthService(tokens *jwt.Issuer) *AuthService {
	return &AuthService{tokens: tokens}
}

// Signup creates a new user and returns a fresh token pair
func (s *AuthService) Signup(name, username, password string) (*model.AuthedUser, error) {
	exists, err := repository.UserExists(username)
	if err != nil {
		return nil, s.internal("signup", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, s.internal("signup", err)
	}

	user, err := repository.CreateUser(name, username, string(passwordHash))
	if err != nil {
		return nil, s.internal("signup", err)
	}

	return s.issueTokens(user, "signup")
}

// Login authenticates a user and returns a fresh token pair
func (s *AuthService) Login(username, password string) (*model.AuthedUser, error) {
	user, err := repository.GetUserByUsername(username)
	if err != nil {
		return nil, s.internal("login", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user, "login")
}

// RefreshTokens rotates the token pair. The presented refresh token must
// match the stored hash; a token superseded by an earlier rotation no
// longer matches and is rejected.
func (s *AuthService) RefreshTokens(claims *jwt.Claims) (*model.AuthedUser, error) {
	user, err := repository.GetUserByID(claims.UserID)
	if err != nil {
		return nil, s.internal("refresh", err)
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}

	if user.RefreshTokenHash == "" {
		// Never logged in, or the token was already rotated away
		return nil, ErrInvalidRefreshToken
	}

	presented := hashToken(claims.RawToken)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(user.RefreshTokenHash)) != 1 {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(user, "refresh")
}

// issueTokens signs a new access/refresh pair and persists a hash of the
// refresh token, invalidating any previously issued one.
func (s *AuthService) issueTokens(user *model.User, op string) (*model.AuthedUser, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, s.internal(op, err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, s.internal(op, err)
	}

	refreshHash := hashToken(refreshToken)
	if err := repository.UpdateRefreshTokenHash(user.ID, refreshHash); err != nil {
		return nil, s.internal(op, err)
	}
	user.RefreshTokenHash = refreshHash

	return &model.AuthedUser{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// hashToken produces the stored one-way hash of a refresh token. Tokens
// carry enough entropy that an unsalted digest is sufficient, and bcrypt
// cannot take inputs this long anyway.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// internal logs the cause locally and returns a generic error so storage
// and database detail never reaches the caller.
func (s *AuthService) internal(op string, err error) error {
	zap.L().Error("auth operation failed",
		zap.String("operation", op),
		zap.Error(err))
	return fmt.Errorf("an unexpected error occurred during %s", op)
}
