package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	if r.db == nil {
		return 0, ErrDatabaseUnavailable
	}

	query := `
		INSERT INTO notifications (user_id, post_id, type, title, message, platform_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.PostID, n.Type, n.Title, n.Message, n.PlatformName).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert notification")
	}
	return id, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	if r.db == nil {
		return nil, nil
	}
	query := `SELECT id, user_id, post_id, type, title, message, platform_name, is_read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list notifications")
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.PostID, &n.Type, &n.Title, &n.Message, &n.PlatformName, &n.IsRead, &n.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkRead reports false when no notification with that id belongs to the user.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	if r.db == nil {
		return false, ErrDatabaseUnavailable
	}
	res, err := r.db.ExecContext(ctx, "UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, errors.Wrap(err, "mark notification read")
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	if r.db == nil {
		return false, ErrDatabaseUnavailable
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, errors.Wrap(err, "delete notification")
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
