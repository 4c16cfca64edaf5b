package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mAbdullah821/gallery-app-task/internal/api/auth"
	"github.com/mAbdullah821/gallery-app-task/internal/api/file"
	"github.com/mAbdullah821/gallery-app-task/internal/api/image"
)

// SetupRouter configures all routes
func SetupRouter(r *gin.Engine, authH *auth.Handler, fileH *file.Handler, imageH *image.Handler) {
	r.Use(CORSMiddleware())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Gallery API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes (no access token required)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", authH.Signup)
		authRoutes.POST("/login", authH.Login)
		authRoutes.POST("/refresh-tokens", authH.RefreshMiddleware(), authH.RefreshTokens)
	}

	// Routes that require a valid access token
	protected := r.Group("")
	protected.Use(authH.AccessMiddleware())
	{
		protected.POST("/file/upload", fileH.Upload)

		imageRoutes := protected.Group("/images")
		{
			imageRoutes.POST("/upload", imageH.Upload)
			imageRoutes.GET("", imageH.List)
			imageRoutes.GET("/:id", imageH.Get)
		}
	}
}

// CORSMiddleware provides CORS support
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
