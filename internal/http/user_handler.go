package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{logger: logger, userServ: userServ}
}

// Me maneja GET /api/user/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Get maneja GET /api/user/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userServ.ResolveByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Delete maneja DELETE /api/user/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}
	if err := h.userServ.Delete(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}
