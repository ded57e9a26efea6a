package usecase

import (
	"net/smtp"
	"testing"

	"sceneyard/pkg/config"
	"sceneyard/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  []byte
}

func captureSender(captured *capturedMail, err error) MailSender {
	return func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		captured.addr = addr
		captured.from = from
		captured.to = to
		captured.msg = msg
		return err
	}
}

func TestHandleMailTask_SendsContactNotification(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPFrom:     "noreply@sceneyard.app",
		ContactEmail: "hello@sceneyard.app",
	}
	var captured capturedMail
	uc := NewMailUseCase(cfg, captureSender(&captured, nil), logger.New())

	err := uc.HandleMailTask(map[string]interface{}{
		"type":       "contact_message",
		"message_id": "msg-1",
		"name":       "Jamie",
		"email":      "jamie@example.com",
		"message":    "How do credits work?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", captured.addr)
	assert.Equal(t, "noreply@sceneyard.app", captured.from)
	assert.Equal(t, []string{"hello@sceneyard.app"}, captured.to)
	assert.Contains(t, string(captured.msg), "Jamie")
	assert.Contains(t, string(captured.msg), "jamie@example.com")
	assert.Contains(t, string(captured.msg), "How do credits work?")
}

func TestHandleMailTask_SkipsWithoutSMTPConfig(t *testing.T) {
	cfg := &config.Config{ContactEmail: "hello@sceneyard.app"}
	var captured capturedMail
	uc := NewMailUseCase(cfg, captureSender(&captured, nil), logger.New())

	err := uc.HandleMailTask(map[string]interface{}{
		"type":       "contact_message",
		"message_id": "msg-1",
	})

	assert.NoError(t, err)
	assert.Empty(t, captured.addr)
}

func TestHandleMailTask_DropsUnknownType(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: "587"}
	var captured capturedMail
	uc := NewMailUseCase(cfg, captureSender(&captured, nil), logger.New())

	err := uc.HandleMailTask(map[string]interface{}{"type": "password_reset"})

	assert.NoError(t, err)
	assert.Empty(t, captured.addr)
}

func TestHandleMailTask_SendFailureRequeues(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: "587"}
	var captured capturedMail
	uc := NewMailUseCase(cfg, captureSender(&captured, assert.AnError), logger.New())

	err := uc.HandleMailTask(map[string]interface{}{
		"type": "contact_message",
		"name": "Jamie",
	})

	assert.Error(t, err)
}
