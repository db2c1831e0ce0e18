package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"postboard/internal/domain"
)

// LikeRepository define el contrato de persistencia para likes.
type LikeRepository interface {
	Create(ctx context.Context, like domain.Like) error
	Exists(ctx context.Context, postID, userID string) (bool, error)
	Delete(ctx context.Context, postID, userID string) error
	CountByPost(ctx context.Context, postID string) (int, error)
}

// PgLikeRepository implementa LikeRepository usando pgxpool.
type PgLikeRepository struct {
	pool *pgxpool.Pool
}

func NewPgLikeRepository(pool *pgxpool.Pool) *PgLikeRepository {
	return &PgLikeRepository{pool: pool}
}

func (r *PgLikeRepository) Create(ctx context.Context, like domain.Like) error {
	const query = `
		INSERT INTO likes (post_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, like.PostID, like.UserID, like.CreatedAt)
	return err
}

func (r *PgLikeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, postID, userID).Scan(&exists)
	return exists, err
}

func (r *PgLikeRepository) Delete(ctx context.Context, postID, userID string) error {
	const query = `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, postID, userID)
	return err
}

func (r *PgLikeRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	const query = `SELECT COUNT(*) FROM likes WHERE post_id = $1`
	var count int
	err := r.pool.QueryRow(ctx, query, postID).Scan(&count)
	return count, err
}
