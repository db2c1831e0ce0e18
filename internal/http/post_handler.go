package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/service"
)

// PostHandler mantiene dependencias para endpoints de posts.
type PostHandler struct {
	logger       *zap.Logger
	postServ     *service.PostService
	postsPerPage int
}

func NewPostHandler(logger *zap.Logger, postServ *service.PostService, postsPerPage int) *PostHandler {
	if postsPerPage <= 0 {
		postsPerPage = 20
	}
	return &PostHandler{logger: logger, postServ: postServ, postsPerPage: postsPerPage}
}

type postRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Image       string `json:"image" binding:"omitempty,url"`
	Private     bool   `json:"private"`
}

// Create maneja POST /api/post.
func (h *PostHandler) Create(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create post request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"kind": "invalid_input", "message": err.Error()},
		})
		return
	}

	post, err := h.postServ.Create(c.Request.Context(), service.PostInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Private:     req.Private,
	}, caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "post created successfully", "post": post})
}

// List maneja GET /api/post.
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	posts, err := h.postServ.ListPublic(c.Request.Context(), h.postsPerPage, (page-1)*h.postsPerPage)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(posts), "posts": posts})
}

// Get maneja GET /api/post/:id.
func (h *PostHandler) Get(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	detail, err := h.postServ.Get(c.Request.Context(), c.Param("id"), caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     detail.Post,
		"likes":    detail.Likes,
		"comments": detail.Comments,
	})
}

// ListByAuthor maneja GET /api/post/user/:id.
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	posts, err := h.postServ.ListByAuthor(c.Request.Context(), c.Param("id"), caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(posts), "posts": posts})
}

// Update maneja PUT /api/post/:id.
func (h *PostHandler) Update(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"kind": "invalid_input", "message": err.Error()},
		})
		return
	}

	post, err := h.postServ.Update(c.Request.Context(), c.Param("id"), service.PostInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Private:     req.Private,
	}, caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post updated successfully", "post": post})
}

// Delete maneja DELETE /api/post/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	if err := h.postServ.Delete(c.Request.Context(), c.Param("id"), caller.ID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

// ToggleLike maneja POST /api/post/like.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	var req struct {
		PostID string `json:"post_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"kind": "invalid_input", "message": "post_id is required"},
		})
		return
	}

	liked, err := h.postServ.ToggleLike(c.Request.Context(), req.PostID, caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ListLikes maneja GET /api/post/:id/likes.
func (h *PostHandler) ListLikes(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	count, err := h.postServ.CountLikes(c.Request.Context(), c.Param("id"), caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}

// AddComment maneja POST /api/post/comment.
func (h *PostHandler) AddComment(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	var req struct {
		Text   string `json:"text" binding:"required"`
		PostID string `json:"post_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"kind": "invalid_input", "message": err.Error()},
		})
		return
	}

	comment, err := h.postServ.AddComment(c.Request.Context(), service.CommentInput{
		Text:   req.Text,
		PostID: req.PostID,
	}, caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListComments maneja GET /api/post/:id/comments.
func (h *PostHandler) ListComments(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	comments, err := h.postServ.ListComments(c.Request.Context(), c.Param("id"), caller.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(comments), "comments": comments})
}

// DeleteComment maneja DELETE /api/post/comment/:id.
func (h *PostHandler) DeleteComment(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c, "invalid token")
		return
	}

	if err := h.postServ.DeleteComment(c.Request.Context(), c.Param("id"), caller.ID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
