package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mAbdullah821/gallery-app-task/internal/pkg/config"
)

// Claims represents the payload carried by both token kinds. RawToken is
// filled in after verification so the refresh flow can compare the presented
// token against the stored hash; it is never part of the signed payload.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
	RawToken string `json:"-"`
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Issuer signs and verifies access and refresh tokens. The two token kinds
// use independent secrets, so a leaked refresh token can never pass access
// verification and vice versa.
type Issuer struct {
	accessSecret  []byte
	accessTTL     time.Duration
	refreshSecret []byte
	refreshTTL    time.Duration
}

// NewIssuer creates an Issuer from the auth configuration
func NewIssuer(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken signs a short-lived access token for a user
func (i *Issuer) GenerateAccessToken(userID string) (string, error) {
	return i.generate(userID, i.accessSecret, i.accessTTL)
}

// GenerateRefreshToken signs a longer-lived refresh token for a user
func (i *Issuer) GenerateRefreshToken(userID string) (string, error) {
	return i.generate(userID, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) generate(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			// Unique jti: two tokens for the same user are never
			// byte-identical, even within one second.
			ID: uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccessToken verifies a token against the access secret
func (i *Issuer) ParseAccessToken(tokenString string) (*Claims, error) {
	return i.parse(tokenString, i.accessSecret)
}

// ParseRefreshToken verifies a token against the refresh secret
func (i *Issuer) ParseRefreshToken(tokenString string) (*Claims, error) {
	return i.parse(tokenString, i.refreshSecret)
}

func (i *Issuer) parse(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims.RawToken = tokenString
	return claims, nil
}

// ExtractTokenFromHeader extracts a bearer token from an Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is empty")
	}

	// Expected format: "Bearer <token>"
	const prefix = "Bearer "
	if len(authHeader) < len(prefix) || authHeader[:len(prefix)] != prefix {
		return "", errors.New("invalid authorization header format")
	}

	return authHeader[len(prefix):], nil
}
