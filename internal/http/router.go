package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	guard gin.HandlerFunc,
	authH *AuthHandler,
	userH *UserHandler,
	postH *PostHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	auth := r.Group("/api/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)

	user := r.Group("/api/user")
	user.GET("/me", guard, userH.Me)
	user.GET("/:id", userH.Get)
	user.DELETE("/:id", guard, userH.Delete)

	post := r.Group("/api/post", guard)
	post.GET("", postH.List)
	post.POST("", postH.Create)
	post.POST("/like", postH.ToggleLike)
	post.POST("/comment", postH.AddComment)
	post.DELETE("/comment/:id", postH.DeleteComment)
	post.GET("/user/:id", postH.ListByAuthor)
	post.GET("/:id", postH.Get)
	post.PUT("/:id", postH.Update)
	post.DELETE("/:id", postH.Delete)
	post.GET("/:id/comments", postH.ListComments)
	post.GET("/:id/likes", postH.ListLikes)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"kind": "not_found", "message": "resource not found"},
		})
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
