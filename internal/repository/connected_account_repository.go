package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type ConnectedAccountRepository interface {
	Create(ctx context.Context, tx *sql.Tx, acc *models.ConnectedAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ConnectedAccount, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error)
	Exists(ctx context.Context, userID, platformID int64, accountID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, isActive bool) error
	UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiry *time.Time) error
	ListExpiring(ctx context.Context, platformIDs []int64, before time.Time) ([]*models.ConnectedAccount, error)
	Delete(ctx context.Context, id int64) error
}

type connectedAccountRepository struct {
	db *sql.DB
}

func NewConnectedAccountRepository(db *sql.DB) ConnectedAccountRepository {
	return &connectedAccountRepository{db: db}
}

const accountColumns = `id, user_id, platform_id, account_name, account_id, access_token,
	refresh_token, token_expiry, is_active, created_at, updated_at`

func scanAccount(row rowScanner) (*models.ConnectedAccount, error) {
	var a models.ConnectedAccount
	err := row.Scan(&a.ID, &a.UserID, &a.PlatformID, &a.AccountName, &a.AccountID, &a.AccessToken,
		&a.RefreshToken, &a.TokenExpiry, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *connectedAccountRepository) Create(ctx context.Context, tx *sql.Tx, acc *models.ConnectedAccount) (int64, error) {
	if r.db == nil && tx == nil {
		return 0, ErrDatabaseUnavailable
	}

	query := `
		INSERT INTO connected_accounts (
			user_id,
			platform_id,
			account_name,
			account_id,
			access_token,
			refresh_token,
			token_expiry,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	args := []any{acc.UserID, acc.PlatformID, acc.AccountName, acc.AccountID,
		acc.AccessToken, acc.RefreshToken, acc.TokenExpiry, acc.IsActive}

	var id int64
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert connected account")
	}
	return id, nil
}

func (r *connectedAccountRepository) GetByID(ctx context.Context, id int64) (*models.ConnectedAccount, error) {
	if r.db == nil {
		return nil, nil
	}
	acc, err := scanAccount(r.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM connected_accounts WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "get connected account")
	}
	return acc, nil
}

func (r *connectedAccountRepository) list(ctx context.Context, query string, args ...any) ([]*models.ConnectedAccount, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list connected accounts")
	}
	defer rows.Close()

	var accounts []*models.ConnectedAccount
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *connectedAccountRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error) {
	return r.list(ctx, "SELECT "+accountColumns+" FROM connected_accounts WHERE user_id = $1 ORDER BY id", userID)
}

func (r *connectedAccountRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error) {
	return r.list(ctx, "SELECT "+accountColumns+" FROM connected_accounts WHERE user_id = $1 AND is_active ORDER BY id", userID)
}

func (r *connectedAccountRepository) ListExpiring(ctx context.Context, platformIDs []int64, before time.Time) ([]*models.ConnectedAccount, error) {
	query := "SELECT " + accountColumns + ` FROM connected_accounts
		WHERE platform_id = ANY($1)
		AND refresh_token <> ''
		AND token_expiry IS NOT NULL
		AND token_expiry < $2`
	return r.list(ctx, query, pq.Array(platformIDs), before)
}

func (r *connectedAccountRepository) Exists(ctx context.Context, userID, platformID int64, accountID string) (bool, error) {
	if r.db == nil {
		return false, nil
	}
	query := "SELECT 1 FROM connected_accounts WHERE user_id = $1 AND platform_id = $2 AND account_id = $3 LIMIT 1"

	var result int
	err := r.db.QueryRowContext(ctx, query, userID, platformID, accountID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, errors.Wrap(err, "check connected account")
	}
	return true, nil
}

func (r *connectedAccountRepository) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "UPDATE connected_accounts SET is_active = $1, updated_at = NOW() WHERE id = $2", isActive, id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update account status")
	}
	return nil
}

func (r *connectedAccountRepository) UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiry *time.Time) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	query := `
		UPDATE connected_accounts
		SET access_token = $1,
			refresh_token = $2,
			token_expiry = $3,
			updated_at = NOW()
		WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, accessToken, refreshToken, expiry, id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update account tokens")
	}
	return nil
}

func (r *connectedAccountRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM connected_accounts WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "delete connected account")
	}
	return nil
}
