package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type GeneratedContentRepository interface {
	Create(ctx context.Context, tx *sql.Tx, c *models.GeneratedContent) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.GeneratedContent, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.GeneratedContent, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateText(ctx context.Context, id int64, text string) error
}

type generatedContentRepository struct {
	db *sql.DB
}

func NewGeneratedContentRepository(db *sql.DB) GeneratedContentRepository {
	return &generatedContentRepository{db: db}
}

const contentColumns = `id, user_id, schedule_id, content_text, image_url, image_key, content_type,
	status, scheduled_for, created_at, updated_at`

func scanContent(row rowScanner) (*models.GeneratedContent, error) {
	var c models.GeneratedContent
	err := row.Scan(&c.ID, &c.UserID, &c.ScheduleID, &c.ContentText, &c.ImageURL, &c.ImageKey,
		&c.ContentType, &c.Status, &c.ScheduledFor, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *generatedContentRepository) Create(ctx context.Context, tx *sql.Tx, c *models.GeneratedContent) (int64, error) {
	if r.db == nil && tx == nil {
		return 0, ErrDatabaseUnavailable
	}

	query := `
		INSERT INTO generated_content (
			user_id, schedule_id, content_text, image_url, image_key,
			content_type, status, scheduled_for
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	args := []any{c.UserID, c.ScheduleID, c.ContentText, c.ImageURL, c.ImageKey,
		c.ContentType, c.Status, c.ScheduledFor}

	var id int64
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert generated content")
	}
	return id, nil
}

func (r *generatedContentRepository) GetByID(ctx context.Context, id int64) (*models.GeneratedContent, error) {
	if r.db == nil {
		return nil, nil
	}
	c, err := scanContent(r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM generated_content WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "get generated content")
	}
	return c, nil
}

func (r *generatedContentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.GeneratedContent, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contentColumns+" FROM generated_content WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list generated content")
	}
	defer rows.Close()

	var contents []*models.GeneratedContent
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func (r *generatedContentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "UPDATE generated_content SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update content status")
	}
	return nil
}

func (r *generatedContentRepository) UpdateText(ctx context.Context, id int64, text string) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "UPDATE generated_content SET content_text = $1, updated_at = NOW() WHERE id = $2", text, id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update content text")
	}
	return nil
}
