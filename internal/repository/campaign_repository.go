package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type CampaignRepository interface {
	Create(ctx context.Context, c *models.Campaign) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Campaign, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Campaign, error)
	Update(ctx context.Context, c *models.Campaign) error
	Delete(ctx context.Context, id int64) error
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = "id, user_id, name, description, topic, start_date, end_date, is_active, created_at, updated_at"

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Topic, &c.StartDate, &c.EndDate,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campaignRepository) Create(ctx context.Context, c *models.Campaign) (int64, error) {
	if r.db == nil {
		return 0, ErrDatabaseUnavailable
	}
	query := `
		INSERT INTO campaigns (user_id, name, description, topic, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.Description, c.Topic,
		c.StartDate, c.EndDate, c.IsActive).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert campaign")
	}
	return id, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	if r.db == nil {
		return nil, nil
	}
	c, err := scanCampaign(r.db.QueryRowContext(ctx, "SELECT "+campaignColumns+" FROM campaigns WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "get campaign")
	}
	return c, nil
}

func (r *campaignRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Campaign, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, "SELECT "+campaignColumns+" FROM campaigns WHERE user_id = $1 ORDER BY start_date DESC, id DESC", userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list campaigns")
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) Update(ctx context.Context, c *models.Campaign) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	query := `
		UPDATE campaigns
		SET name = $1,
			description = $2,
			topic = $3,
			start_date = $4,
			end_date = $5,
			is_active = $6,
			updated_at = NOW()
		WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.Topic, c.StartDate, c.EndDate, c.IsActive, c.ID)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update campaign")
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "delete campaign")
	}
	return nil
}
