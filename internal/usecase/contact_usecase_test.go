package usecase

import (
	"testing"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(message *entity.ContactMessage) (*entity.ContactMessage, error) {
	args := m.Called(message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) GetByID(id string) (*entity.ContactMessage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) List(status string, limit, offset int) ([]*entity.ContactMessage, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.ContactMessage), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) UpdateStatus(id string, status entity.ContactStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.ContactRepository = (*MockContactRepository)(nil)

func TestSubmitContact_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   SubmitContactInput
		wantErr string
	}{
		{
			name:    "empty name",
			input:   SubmitContactInput{Name: "", Email: "a@b.com", Message: "hello"},
			wantErr: "name is required",
		},
		{
			name:    "whitespace name",
			input:   SubmitContactInput{Name: "   ", Email: "a@b.com", Message: "hello"},
			wantErr: "name is required",
		},
		{
			name:    "empty email",
			input:   SubmitContactInput{Name: "Jamie", Email: "", Message: "hello"},
			wantErr: "a valid email is required",
		},
		{
			name:    "email without at sign",
			input:   SubmitContactInput{Name: "Jamie", Email: "not-an-email", Message: "hello"},
			wantErr: "a valid email is required",
		},
		{
			name:    "empty message",
			input:   SubmitContactInput{Name: "Jamie", Email: "a@b.com", Message: ""},
			wantErr: "message is required",
		},
		{
			name:    "whitespace message",
			input:   SubmitContactInput{Name: "Jamie", Email: "a@b.com", Message: "  \t "},
			wantErr: "message is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			uc := NewContactUseCase(mockRepo, nil, logger.New())

			message, err := uc.Submit(tt.input)

			assert.Nil(t, message)
			assert.EqualError(t, err, tt.wantErr)
			mockRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestSubmitContact_TrimsAndStores(t *testing.T) {
	mockRepo := new(MockContactRepository)
	uc := NewContactUseCase(mockRepo, nil, logger.New())

	expected := &entity.ContactMessage{
		Name:    "Jamie",
		Email:   "jamie@example.com",
		Message: "How do credits work?",
	}
	stored := &entity.ContactMessage{
		ID:      "msg-1",
		Name:    expected.Name,
		Email:   expected.Email,
		Message: expected.Message,
		Status:  entity.ContactStatusUnread,
	}
	mockRepo.On("Create", expected).Return(stored, nil)

	message, err := uc.Submit(SubmitContactInput{
		Name:    "  Jamie  ",
		Email:   " jamie@example.com ",
		Message: " How do credits work? ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "msg-1", message.ID)
	assert.Equal(t, entity.ContactStatusUnread, message.Status)
	mockRepo.AssertExpectations(t)
}

func TestUpdateContactStatus_InvalidStatus(t *testing.T) {
	mockRepo := new(MockContactRepository)
	uc := NewContactUseCase(mockRepo, nil, logger.New())

	err := uc.UpdateStatus("msg-1", entity.ContactStatus("archived"))

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestUpdateContactStatus_ValidStatuses(t *testing.T) {
	for _, status := range []entity.ContactStatus{
		entity.ContactStatusUnread,
		entity.ContactStatusRead,
		entity.ContactStatusReplied,
	} {
		mockRepo := new(MockContactRepository)
		uc := NewContactUseCase(mockRepo, nil, logger.New())
		mockRepo.On("UpdateStatus", "msg-1", status).Return(nil)

		err := uc.UpdateStatus("msg-1", status)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	}
}
