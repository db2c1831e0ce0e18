package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/apperr"
)

// writeError traduce el kind del error a status HTTP en el borde.
// Fallas sin kind son internas: se registran y se responde 500 genérico.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		if logger != nil {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"kind": "internal", "message": "internal server error"},
		})
		return
	}
	c.JSON(statusFor(appErr.Kind), gin.H{
		"error": gin.H{"kind": string(appErr.Kind), "message": appErr.Message},
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindUnauthorized:
		return http.StatusForbidden
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
