package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type TeamRepository interface {
	CreateMember(ctx context.Context, m *models.TeamMember) (int64, error)
	GetMember(ctx context.Context, id int64) (*models.TeamMember, error)
	ListMembers(ctx context.Context, ownerID int64) ([]*models.TeamMember, error)
	MemberExists(ctx context.Context, ownerID int64, email string) (bool, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	DeleteMember(ctx context.Context, id int64) error
	LogActivity(ctx context.Context, a *models.ActivityLog) error
	ListActivity(ctx context.Context, userID int64, limit int) ([]*models.ActivityLog, error)
}

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) TeamRepository {
	return &teamRepository{db: db}
}

const memberColumns = "id, owner_id, email, name, role, status, invite_token, joined_at"

func scanMember(row rowScanner) (*models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(&m.ID, &m.OwnerID, &m.Email, &m.Name, &m.Role, &m.Status, &m.InviteToken, &m.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *teamRepository) CreateMember(ctx context.Context, m *models.TeamMember) (int64, error) {
	if r.db == nil {
		return 0, ErrDatabaseUnavailable
	}
	query := `
		INSERT INTO team_members (owner_id, email, name, role, status, invite_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, m.OwnerID, m.Email, m.Name, m.Role, m.Status, m.InviteToken).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert team member")
	}
	return id, nil
}

func (r *teamRepository) GetMember(ctx context.Context, id int64) (*models.TeamMember, error) {
	if r.db == nil {
		return nil, nil
	}
	m, err := scanMember(r.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM team_members WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "get team member")
	}
	return m, nil
}

func (r *teamRepository) ListMembers(ctx context.Context, ownerID int64) ([]*models.TeamMember, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, "SELECT "+memberColumns+" FROM team_members WHERE owner_id = $1 ORDER BY joined_at, id", ownerID)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list team members")
	}
	defer rows.Close()

	var members []*models.TeamMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamRepository) MemberExists(ctx context.Context, ownerID int64, email string) (bool, error) {
	if r.db == nil {
		return false, nil
	}
	var result int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM team_members WHERE owner_id = $1 AND lower(email) = lower($2)", ownerID, email).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, errors.Wrap(err, "check team member")
	}
	return true, nil
}

func (r *teamRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	if _, err := r.db.ExecContext(ctx, "UPDATE team_members SET role = $1 WHERE id = $2", role, id); err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update member role")
	}
	return nil
}

func (r *teamRepository) DeleteMember(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM team_members WHERE id = $1", id); err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "delete team member")
	}
	return nil
}

func (r *teamRepository) LogActivity(ctx context.Context, a *models.ActivityLog) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	query := "INSERT INTO activity_logs (user_id, actor, action, kind, details) VALUES ($1, $2, $3, $4, $5)"
	if _, err := r.db.ExecContext(ctx, query, a.UserID, a.Actor, a.Action, a.Kind, a.Details); err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "insert activity")
	}
	return nil
}

func (r *teamRepository) ListActivity(ctx context.Context, userID int64, limit int) ([]*models.ActivityLog, error) {
	if r.db == nil {
		return nil, nil
	}
	query := `SELECT id, user_id, actor, action, kind, details, created_at
		FROM activity_logs WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list activity")
	}
	defer rows.Close()

	var logs []*models.ActivityLog
	for rows.Next() {
		var a models.ActivityLog
		if err := rows.Scan(&a.ID, &a.UserID, &a.Actor, &a.Action, &a.Kind, &a.Details, &a.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		logs = append(logs, &a)
	}
	return logs, rows.Err()
}
