package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, bool, error)
	GetByOpenID(ctx context.Context, openID string) (*models.User, bool, error)
	Upsert(ctx context.Context, user *models.User) (int64, error)
	ListAdmins(ctx context.Context) ([]*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in"

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod, &u.Role,
		&u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	if r.db == nil {
		return nil, false, nil
	}
	user, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, errors.Wrap(err, "get user")
	}
	return user, true, nil
}

func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*models.User, bool, error) {
	if r.db == nil {
		return nil, false, nil
	}
	user, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE open_id = $1", openID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, errors.Wrap(err, "get user by open id")
	}
	return user, true, nil
}

// Upsert inserts the user or refreshes the profile columns of an existing
// row with the same open id. An admin role is never downgraded here.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) (int64, error) {
	if r.db == nil {
		return 0, ErrDatabaseUnavailable
	}

	query := `
		INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (open_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			login_method = EXCLUDED.login_method,
			role = CASE WHEN EXCLUDED.role = 'admin' THEN 'admin' ELSE users.role END,
			last_signed_in = NOW(),
			updated_at = NOW()
		RETURNING id`

	role := user.Role
	if role == "" {
		role = models.RoleUser
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query, user.OpenID, user.Name, user.Email, user.LoginMethod, role).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "upsert user")
	}
	return id, nil
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]*models.User, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users WHERE role = 'admin' ORDER BY id")
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list admins")
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
