package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"postboard/internal/apperr"
	"postboard/internal/domain"
	"postboard/internal/repository"
)

// PostService coordina posts, comentarios y likes, y aplica las reglas de
// propiedad y visibilidad. El lookup del recurso siempre precede a la
// decisión de autorización.
type PostService struct {
	logger   *zap.Logger
	posts    repository.PostRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
	notifier NotificationPublisher
}

func NewPostService(logger *zap.Logger, posts repository.PostRepository, comments repository.CommentRepository, likes repository.LikeRepository, notifier NotificationPublisher) *PostService {
	return &PostService{
		logger:   logger,
		posts:    posts,
		comments: comments,
		likes:    likes,
		notifier: notifier,
	}
}

type PostInput struct {
	Title       string
	Description string
	Image       string
	Private     bool
}

// PostDetail agrega los contadores que acompañan a un post individual.
type PostDetail struct {
	Post     domain.Post `json:"post"`
	Likes    int         `json:"likes"`
	Comments int         `json:"comments"`
}

func (s *PostService) Create(ctx context.Context, input PostInput, authorID string) (domain.Post, error) {
	now := time.Now().UTC()
	post := domain.Post{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		Private:     input.Private,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Get devuelve el post con sus contadores. Un post privado solo es legible
// por su autor.
func (s *PostService) Get(ctx context.Context, postID, viewerID string) (PostDetail, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return PostDetail{}, err
	}
	if !post.VisibleTo(viewerID) {
		return PostDetail{}, apperr.Unauthorized("post is private")
	}

	likes, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		return PostDetail{}, err
	}
	comments, err := s.comments.CountByPost(ctx, postID)
	if err != nil {
		return PostDetail{}, err
	}
	return PostDetail{Post: post, Likes: likes, Comments: comments}, nil
}

// ListPublic pagina los posts públicos.
func (s *PostService) ListPublic(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.posts.ListPublic(ctx, limit, offset)
}

// ListByAuthor devuelve los posts de un autor; los privados solo cuando el
// que consulta es el mismo autor.
func (s *PostService) ListByAuthor(ctx context.Context, authorID, viewerID string) ([]domain.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID, authorID == viewerID)
}

// Update modifica un post; solo el autor puede hacerlo.
func (s *PostService) Update(ctx context.Context, postID string, input PostInput, callerID string) (domain.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	if !post.OwnedBy(callerID) {
		return domain.Post{}, apperr.Unauthorized("only the author can update the post")
	}

	post.Title = input.Title
	post.Description = input.Description
	post.Image = input.Image
	post.Private = input.Private
	post.UpdatedAt = time.Now().UTC()
	if err := s.posts.Update(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Delete elimina un post; solo el autor puede hacerlo.
func (s *PostService) Delete(ctx context.Context, postID, callerID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(callerID) {
		return apperr.Unauthorized("only the author can delete the post")
	}
	return s.posts.Delete(ctx, postID)
}

// ToggleLike alterna el like del usuario sobre un post visible y notifica
// al autor del post.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (liked bool, err error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return false, err
	}
	if !post.VisibleTo(userID) {
		return false, apperr.Unauthorized("post is private")
	}

	exists, err := s.likes.Exists(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.likes.Delete(ctx, postID, userID); err != nil {
			return false, err
		}
		s.notify(ctx, userID, post.AuthorID, domain.NotificationUnlike)
		return false, nil
	}

	like := domain.Like{PostID: postID, UserID: userID, CreatedAt: time.Now().UTC()}
	if err := s.likes.Create(ctx, like); err != nil {
		return false, err
	}
	s.notify(ctx, userID, post.AuthorID, domain.NotificationLike)
	return true, nil
}

// CountLikes devuelve la cantidad de likes de un post visible.
func (s *PostService) CountLikes(ctx context.Context, postID, viewerID string) (int, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if !post.VisibleTo(viewerID) {
		return 0, apperr.Unauthorized("post is private")
	}
	return s.likes.CountByPost(ctx, postID)
}

type CommentInput struct {
	Text   string
	PostID string
}

// AddComment crea un comentario sobre un post visible y notifica al autor.
func (s *PostService) AddComment(ctx context.Context, input CommentInput, authorID string) (domain.Comment, error) {
	post, err := s.getPost(ctx, input.PostID)
	if err != nil {
		return domain.Comment{}, err
	}
	if !post.VisibleTo(authorID) {
		return domain.Comment{}, apperr.Unauthorized("post is private")
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		Text:      input.Text,
		PostID:    input.PostID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return domain.Comment{}, err
	}
	s.notify(ctx, authorID, post.AuthorID, domain.NotificationComment)
	return comment, nil
}

// ListComments devuelve los comentarios de un post visible.
func (s *PostService) ListComments(ctx context.Context, postID, viewerID string) ([]domain.Comment, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewerID) {
		return nil, apperr.Unauthorized("post is private")
	}
	return s.comments.ListByPost(ctx, postID)
}

// DeleteComment elimina un comentario; solo su autor puede hacerlo.
func (s *PostService) DeleteComment(ctx context.Context, commentID, callerID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("comment not found")
		}
		return err
	}
	if comment.AuthorID != callerID {
		return apperr.Unauthorized("only the author can delete the comment")
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *PostService) getPost(ctx context.Context, postID string) (domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, apperr.NotFound("post not found")
		}
		return domain.Post{}, err
	}
	return post, nil
}

func (s *PostService) notify(ctx context.Context, senderID, receiverID string, typ domain.NotificationType) {
	if s.notifier == nil || senderID == receiverID {
		return
	}
	n := domain.Notification{SenderID: senderID, ReceiverID: receiverID, Type: typ}
	if err := s.notifier.Publish(ctx, n); err != nil {
		s.logger.Warn("notification publish failed",
			zap.String("type", string(typ)),
			zap.Error(err),
		)
	}
}
