package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type ReviewRepository interface {
	Save(ctx context.Context, rec *models.ReviewRecord) (int64, error)
	Latest(ctx context.Context) (*models.ReviewRecord, error)
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Save(ctx context.Context, rec *models.ReviewRecord) (int64, error) {
	if r.db == nil {
		return 0, ErrDatabaseUnavailable
	}
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO review_reports (score, critical, report) VALUES ($1, $2, $3) RETURNING id",
		rec.Score, rec.Critical, rec.Report).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert review report")
	}
	return id, nil
}

func (r *reviewRepository) Latest(ctx context.Context) (*models.ReviewRecord, error) {
	if r.db == nil {
		return nil, nil
	}
	var rec models.ReviewRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, score, critical, report, created_at FROM review_reports ORDER BY created_at DESC, id DESC LIMIT 1").
		Scan(&rec.ID, &rec.Score, &rec.Critical, &rec.Report, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "latest review report")
	}
	return &rec, nil
}
