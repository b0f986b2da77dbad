package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
)

const activityLimit = 50

type TeamService interface {
	Members(ctx context.Context, ownerID int64) ([]*models.TeamMember, error)
	Invite(ctx context.Context, ownerID int64, req *transfer.InviteRequest) (*models.TeamMember, error)
	UpdateRole(ctx context.Context, ownerID, memberID int64, role string) error
	Remove(ctx context.Context, ownerID, memberID int64) error
	Activity(ctx context.Context, ownerID int64) ([]*models.ActivityLog, error)
}

type teamService struct {
	team     repository.TeamRepository
	users    repository.UserRepository
	activity activityRecorder
}

func NewTeamService(team repository.TeamRepository, users repository.UserRepository) TeamService {
	return &teamService{
		team:     team,
		users:    users,
		activity: activityRecorder{team: team, users: users},
	}
}

// Members lists the owner first, then invited and active members.
func (s *teamService) Members(ctx context.Context, ownerID int64) ([]*models.TeamMember, error) {
	var out []*models.TeamMember

	owner, ok, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if ok {
		out = append(out, &models.TeamMember{
			OwnerID:  ownerID,
			Email:    owner.Email,
			Name:     owner.Name,
			Role:     models.TeamRoleAdmin,
			Status:   models.MemberStatusActive,
			JoinedAt: owner.CreatedAt,
		})
	}

	members, err := s.team.ListMembers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return append(out, members...), nil
}

func (s *teamService) Invite(ctx context.Context, ownerID int64, req *transfer.InviteRequest) (*models.TeamMember, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.team.MemberExists(ctx, ownerID, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateMember
	}

	name := req.Name
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	m := &models.TeamMember{
		OwnerID:     ownerID,
		Email:       email,
		Name:        name,
		Role:        req.Role,
		Status:      models.MemberStatusInvited,
		InviteToken: uuid.NewString(),
	}
	id, err := s.team.CreateMember(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id

	s.activity.record(ctx, ownerID, models.ActivityMemberAdded, "invited member", fmt.Sprintf("%s as %s", email, req.Role))
	return m, nil
}

func (s *teamService) owned(ctx context.Context, ownerID, memberID int64) (*models.TeamMember, error) {
	m, err := s.team.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.OwnerID != ownerID {
		return nil, fmt.Errorf("team member %d: %w", memberID, ErrNotFound)
	}
	return m, nil
}

func (s *teamService) UpdateRole(ctx context.Context, ownerID, memberID int64, role string) error {
	m, err := s.owned(ctx, ownerID, memberID)
	if err != nil {
		return err
	}
	if err := s.team.UpdateRole(ctx, m.ID, role); err != nil {
		return err
	}
	s.activity.record(ctx, ownerID, models.ActivityUpdate, "changed member role", fmt.Sprintf("%s: %s -> %s", m.Email, m.Role, role))
	return nil
}

func (s *teamService) Remove(ctx context.Context, ownerID, memberID int64) error {
	m, err := s.owned(ctx, ownerID, memberID)
	if err != nil {
		return err
	}
	if err := s.team.DeleteMember(ctx, m.ID); err != nil {
		return err
	}
	s.activity.record(ctx, ownerID, models.ActivityMemberRemoved, "removed member", m.Email)
	return nil
}

func (s *teamService) Activity(ctx context.Context, ownerID int64) ([]*models.ActivityLog, error) {
	return s.team.ListActivity(ctx, ownerID, activityLimit)
}
