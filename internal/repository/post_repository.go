package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type PostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, p *models.Post) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Post, error)
	ListByContent(ctx context.Context, contentID int64) ([]*models.Post, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, content_id, platform_id, account_id, platform_post_id, status,
	error_message, published_at, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, p *models.Post) (int64, error) {
	if r.db == nil && tx == nil {
		return 0, ErrDatabaseUnavailable
	}

	query := `
		INSERT INTO posts (
			user_id, content_id, platform_id, account_id, platform_post_id,
			status, error_message, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	args := []any{p.UserID, p.ContentID, p.PlatformID, p.AccountID, p.PlatformPostID,
		p.Status, p.ErrorMessage, p.PublishedAt}

	var id int64
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert post")
	}
	return id, nil
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list posts")
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		err := rows.Scan(&p.ID, &p.UserID, &p.ContentID, &p.PlatformID, &p.AccountID, &p.PlatformPostID,
			&p.Status, &p.ErrorMessage, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (r *postRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Post, error) {
	return r.list(ctx, "SELECT "+postColumns+" FROM posts WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
}

func (r *postRepository) ListByContent(ctx context.Context, contentID int64) ([]*models.Post, error) {
	return r.list(ctx, "SELECT "+postColumns+" FROM posts WHERE content_id = $1 ORDER BY id", contentID)
}
