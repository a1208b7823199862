package service

import (
	"context"
	"fmt"

	repository "github.com/KadakWNL/crowd-connect/internal/database/postgres"
	"github.com/KadakWNL/crowd-connect/internal/entity"

	"github.com/sirupsen/logrus"
)

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*entity.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := user.Public()
	return &profile, nil
}

func (s *userService) ToggleHost(ctx context.Context, userID int64) (*entity.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsHost = !user.IsHost
	if err := s.userRepo.SetHostFlag(ctx, userID, user.IsHost); err != nil {
		return nil, fmt.Errorf("failed to toggle host flag: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"is_host": user.IsHost,
	}).Info("Host flag toggled")

	profile := user.Public()
	return &profile, nil
}
