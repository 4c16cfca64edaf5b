package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mAbdullah821/gallery-app-task/internal/model"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/jwt"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/metrics"
	"github.com/mAbdullah821/gallery-app-task/internal/service"
)

const claimsKey = "claims"

// Handler serves the auth endpoints and owns the token middlewares
type Handler struct {
	svc     *service.AuthService
	tokens  *jwt.Issuer
	limiter *service.AuthRateLimit
}

// NewHandler creates an auth Handler
func NewHandler(svc *service.AuthService, tokens *jwt.Issuer, limiter *service.AuthRateLimit) *Handler {
	return &Handler{svc: svc, tokens: tokens, limiter: limiter}
}

// Signup handles user registration
func (h *Handler) Signup(c *gin.Context) {
	if !h.allow(c) {
		return
	}

	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	authed, err := h.svc.Signup(req.Name, req.Username, req.Password)
	if err != nil {
		metrics.AuthRequests.WithLabelValues("signup", "failure").Inc()
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"detail": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	metrics.AuthRequests.WithLabelValues("signup", "success").Inc()
	c.JSON(http.StatusCreated, authed)
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	if !h.allow(c) {
		return
	}

	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	authed, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		metrics.AuthRequests.WithLabelValues("login", "failure").Inc()
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	metrics.AuthRequests.WithLabelValues("login", "success").Inc()
	c.JSON(http.StatusOK, authed)
}

// RefreshTokens rotates a token pair. The refresh middleware has already
// verified the bearer token against the refresh secret.
func (h *Handler) RefreshTokens(c *gin.Context) {
	if !h.allow(c) {
		return
	}

	claims := CurrentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Refresh token missing"})
		return
	}

	authed, err := h.svc.RefreshTokens(claims)
	if err != nil {
		metrics.AuthRequests.WithLabelValues("refresh", "failure").Inc()
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	metrics.AuthRequests.WithLabelValues("refresh", "success").Inc()
	c.JSON(http.StatusOK, authed)
}

// AccessMiddleware validates the bearer access token and attaches the
// caller's user id to the request context.
func (h *Handler) AccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.parseBearer(c, h.tokens.ParseAccessToken)
		if !ok {
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// RefreshMiddleware validates the bearer token against the refresh secret
// and attaches the full claims, raw token included, for the rotation check.
func (h *Handler) RefreshMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.parseBearer(c, h.tokens.ParseRefreshToken)
		if !ok {
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func (h *Handler) parseBearer(c *gin.Context, parse func(string) (*jwt.Claims, error)) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header missing"})
		return nil, false
	}

	token, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header format"})
		return nil, false
	}

	claims, err := parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token has expired"})
		} else {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
		}
		return nil, false
	}

	return claims, true
}

// CurrentClaims returns the verified claims set by RefreshMiddleware
func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

func (h *Handler) allow(c *gin.Context) bool {
	if h.limiter == nil {
		return true
	}
	if !h.limiter.Allow(c.Request.Context(), c.ClientIP()) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too many auth requests, try again later"})
		return false
	}
	return true
}
