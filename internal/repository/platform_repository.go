package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type PlatformRepository interface {
	List(ctx context.Context) ([]*models.SocialPlatform, error)
	GetByID(ctx context.Context, id int64) (*models.SocialPlatform, error)
}

type platformRepository struct {
	db *sql.DB
}

func NewPlatformRepository(db *sql.DB) PlatformRepository {
	return &platformRepository{db: db}
}

func (r *platformRepository) List(ctx context.Context) ([]*models.SocialPlatform, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, display_name, created_at FROM social_platforms ORDER BY id")
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list platforms")
	}
	defer rows.Close()

	var platforms []*models.SocialPlatform
	for rows.Next() {
		var p models.SocialPlatform
		if err := rows.Scan(&p.ID, &p.Name, &p.DisplayName, &p.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		platforms = append(platforms, &p)
	}
	return platforms, rows.Err()
}

func (r *platformRepository) GetByID(ctx context.Context, id int64) (*models.SocialPlatform, error) {
	if r.db == nil {
		return nil, nil
	}
	var p models.SocialPlatform
	err := r.db.QueryRowContext(ctx, "SELECT id, name, display_name, created_at FROM social_platforms WHERE id = $1", id).
		Scan(&p.ID, &p.Name, &p.DisplayName, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "get platform")
	}
	return &p, nil
}
