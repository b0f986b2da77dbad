package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type ContentSettingRepository interface {
	Create(ctx context.Context, tx *sql.Tx, s *models.ContentSetting) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContentSetting, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.ContentSetting, error)
	Update(ctx context.Context, s *models.ContentSetting) error
	Delete(ctx context.Context, id int64) error
}

type contentSettingRepository struct {
	db *sql.DB
}

func NewContentSettingRepository(db *sql.DB) ContentSettingRepository {
	return &contentSettingRepository{db: db}
}

const settingColumns = `id, user_id, topic, content_style, tone, language, include_hashtags,
	include_emojis, max_post_length, created_at, updated_at`

func scanSetting(row rowScanner) (*models.ContentSetting, error) {
	var s models.ContentSetting
	err := row.Scan(&s.ID, &s.UserID, &s.Topic, &s.ContentStyle, &s.Tone, &s.Language,
		&s.IncludeHashtags, &s.IncludeEmojis, &s.MaxPostLength, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *contentSettingRepository) Create(ctx context.Context, tx *sql.Tx, s *models.ContentSetting) (int64, error) {
	if r.db == nil && tx == nil {
		return 0, ErrDatabaseUnavailable
	}

	query := `
		INSERT INTO content_settings (
			user_id, topic, content_style, tone, language,
			include_hashtags, include_emojis, max_post_length
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	args := []any{s.UserID, s.Topic, s.ContentStyle, s.Tone, s.Language,
		s.IncludeHashtags, s.IncludeEmojis, s.MaxPostLength}

	var id int64
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert content setting")
	}
	return id, nil
}

func (r *contentSettingRepository) GetByID(ctx context.Context, id int64) (*models.ContentSetting, error) {
	if r.db == nil {
		return nil, nil
	}
	s, err := scanSetting(r.db.QueryRowContext(ctx, "SELECT "+settingColumns+" FROM content_settings WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "get content setting")
	}
	return s, nil
}

func (r *contentSettingRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ContentSetting, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, "SELECT "+settingColumns+" FROM content_settings WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list content settings")
	}
	defer rows.Close()

	var settings []*models.ContentSetting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *contentSettingRepository) Update(ctx context.Context, s *models.ContentSetting) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	query := `
		UPDATE content_settings
		SET topic = $1,
			content_style = $2,
			tone = $3,
			language = $4,
			include_hashtags = $5,
			include_emojis = $6,
			max_post_length = $7,
			updated_at = NOW()
		WHERE id = $8`
	_, err := r.db.ExecContext(ctx, query, s.Topic, s.ContentStyle, s.Tone, s.Language,
		s.IncludeHashtags, s.IncludeEmojis, s.MaxPostLength, s.ID)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update content setting")
	}
	return nil
}

func (r *contentSettingRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM content_settings WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "delete content setting")
	}
	return nil
}
