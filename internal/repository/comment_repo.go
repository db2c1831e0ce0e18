package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"postboard/internal/domain"
)

// CommentRepository define el contrato de persistencia para comentarios.
type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) error
	GetByID(ctx context.Context, id string) (domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	CountByPost(ctx context.Context, postID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// PgCommentRepository implementa CommentRepository usando pgxpool.
type PgCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPgCommentRepository(pool *pgxpool.Pool) *PgCommentRepository {
	return &PgCommentRepository{pool: pool}
}

func (r *PgCommentRepository) Create(ctx context.Context, comment domain.Comment) error {
	const query = `
		INSERT INTO comments (id, text, post_id, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.Text,
		comment.PostID,
		comment.AuthorID,
		comment.CreatedAt,
	)
	return err
}

func (r *PgCommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	const query = `
		SELECT id, text, post_id, author_id, created_at
		FROM comments
		WHERE id = $1
	`
	var c domain.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Text,
		&c.PostID,
		&c.AuthorID,
		&c.CreatedAt,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

func (r *PgCommentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	const query = `
		SELECT id, text, post_id, author_id, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *PgCommentRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	const query = `SELECT COUNT(*) FROM comments WHERE post_id = $1`
	var count int
	err := r.pool.QueryRow(ctx, query, postID).Scan(&count)
	return count, err
}

func (r *PgCommentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
