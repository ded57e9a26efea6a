package usecase

import (
	"fmt"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"
)

type UserUseCase interface {
	ListUsers(limit, offset int) ([]*entity.User, int64, error)
	ChangeRole(userID string, role entity.UserRole) error
	DeleteUser(userID string) error
}

type userUseCase struct {
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *userUseCase) ListUsers(limit, offset int) ([]*entity.User, int64, error) {
	return uc.userRepo.List(limit, offset)
}

func (uc *userUseCase) ChangeRole(userID string, role entity.UserRole) error {
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return fmt.Errorf("invalid role: %s", role)
	}
	return uc.userRepo.UpdateRole(userID, role)
}

func (uc *userUseCase) DeleteUser(userID string) error {
	return uc.userRepo.Delete(userID)
}
