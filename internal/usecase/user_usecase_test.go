package usecase

import (
	"testing"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestChangeRole_InvalidRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, logger.New())

	err := uc.ChangeRole("user-1", entity.UserRole("superuser"))

	assert.Error(t, err)
	mockUsers.AssertNotCalled(t, "UpdateRole")
}

func TestChangeRole_ValidRoles(t *testing.T) {
	for _, role := range []entity.UserRole{entity.RoleUser, entity.RoleAdmin} {
		mockUsers := new(MockUserRepository)
		uc := NewUserUseCase(mockUsers, logger.New())
		mockUsers.On("UpdateRole", "user-1", role).Return(nil)

		err := uc.ChangeRole("user-1", role)

		assert.NoError(t, err)
		mockUsers.AssertExpectations(t)
	}
}

func TestChangeRole_LastAdminPropagates(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, logger.New())

	mockUsers.On("UpdateRole", "admin-1", entity.RoleUser).Return(persistent.ErrLastAdmin)

	err := uc.ChangeRole("admin-1", entity.RoleUser)

	assert.ErrorIs(t, err, persistent.ErrLastAdmin)
}

func TestDeleteUser_Propagates(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, logger.New())

	mockUsers.On("Delete", "user-1").Return(nil)

	assert.NoError(t, uc.DeleteUser("user-1"))
	mockUsers.AssertExpectations(t)
}
