package service

import (
	"context"

	"tunegen/internal/apperror"
	"tunegen/internal/model"
	"tunegen/internal/repository"
)

// UserService reads and updates the caller's profile row.
type UserService interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Upstream("loading user profile: %v", err)
	}
	if u == nil {
		return nil, apperror.NotFound("user profile not found")
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (*model.User, error) {
	u, err := s.userRepo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, apperror.Upstream("updating profile: %v", err)
	}
	if u == nil {
		return nil, apperror.NotFound("user profile not found")
	}
	return u, nil
}
