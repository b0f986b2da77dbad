package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	IsAdmin(ctx context.Context, id int64) (bool, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{u: u}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

func (s *userService) IsAdmin(ctx context.Context, id int64) (bool, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return isExist && user.Role == models.RoleAdmin, nil
}
