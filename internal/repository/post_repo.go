package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"postboard/internal/domain"
)

// PostRepository define el contrato de persistencia para posts.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) error
	GetByID(ctx context.Context, id string) (domain.Post, error)
	ListPublic(ctx context.Context, limit, offset int) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]domain.Post, error)
	Update(ctx context.Context, post domain.Post) error
	Delete(ctx context.Context, id string) error
}

// PgPostRepository implementa PostRepository usando pgxpool.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

const postColumns = `id, title, description, image, private, author_id, created_at, updated_at`

func (r *PgPostRepository) Create(ctx context.Context, post domain.Post) error {
	const query = `
		INSERT INTO posts (id, title, description, image, private, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Description,
		post.Image,
		post.Private,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	return err
}

func (r *PgPostRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	var p domain.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Image,
		&p.Private,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (r *PgPostRepository) ListPublic(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE private = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *PgPostRepository) ListByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]domain.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = $1 AND (private = FALSE OR $2)
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, authorID, includePrivate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *PgPostRepository) Update(ctx context.Context, post domain.Post) error {
	const query = `
		UPDATE posts
		SET title = $2, description = $3, image = $4, private = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Description,
		post.Image,
		post.Private,
		post.UpdatedAt,
	)
	return err
}

func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func scanPosts(rows pgx.Rows) ([]domain.Post, error) {
	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Image,
			&p.Private,
			&p.AuthorID,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
