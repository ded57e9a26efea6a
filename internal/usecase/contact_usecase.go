package usecase

import (
	"fmt"
	"strings"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"
	"sceneyard/pkg/queue"
)

type SubmitContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactUseCase interface {
	// Submit validates and stores the message, then publishes a mail task on a
	// best-effort basis. The message is durably stored even if the mail queue
	// is down.
	Submit(input SubmitContactInput) (*entity.ContactMessage, error)
	List(status string, limit, offset int) ([]*entity.ContactMessage, int64, error)
	UpdateStatus(id string, status entity.ContactStatus) error
	Delete(id string) error
}

type contactUseCase struct {
	contactRepo persistent.ContactRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewContactUseCase(contactRepo persistent.ContactRepository, queueClient *queue.Client, logger *logger.Logger) ContactUseCase {
	return &contactUseCase{
		contactRepo: contactRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *contactUseCase) Submit(input SubmitContactInput) (*entity.ContactMessage, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if input.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	message, err := uc.contactRepo.Create(&entity.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	})
	if err != nil {
		uc.logger.Error("Failed to store contact message: %v", err)
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if uc.queueClient != nil {
		task := map[string]interface{}{
			"type":       "contact_message",
			"message_id": message.ID,
			"name":       message.Name,
			"email":      message.Email,
			"message":    message.Message,
		}
		if err := uc.queueClient.PublishMailTask(task); err != nil {
			uc.logger.Error("Failed to publish contact mail task for %s: %v", message.ID, err)
		}
	}

	return message, nil
}

func (uc *contactUseCase) List(status string, limit, offset int) ([]*entity.ContactMessage, int64, error) {
	return uc.contactRepo.List(status, limit, offset)
}

func (uc *contactUseCase) UpdateStatus(id string, status entity.ContactStatus) error {
	switch status {
	case entity.ContactStatusUnread, entity.ContactStatusRead, entity.ContactStatusReplied:
	default:
		return fmt.Errorf("invalid status: %s", status)
	}
	return uc.contactRepo.UpdateStatus(id, status)
}

func (uc *contactUseCase) Delete(id string) error {
	return uc.contactRepo.Delete(id)
}
