package usecase

import (
	"fmt"
	"net/smtp"

	"sceneyard/pkg/config"
	"sceneyard/pkg/logger"
)

// MailSender is satisfied by smtp.SendMail; split out for tests.
type MailSender func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type MailUseCase interface {
	// HandleMailTask is the queue consumer callback. Returning an error
	// requeues the task.
	HandleMailTask(task map[string]interface{}) error
}

type mailUseCase struct {
	cfg    *config.Config
	send   MailSender
	logger *logger.Logger
}

func NewMailUseCase(cfg *config.Config, send MailSender, logger *logger.Logger) MailUseCase {
	if send == nil {
		send = smtp.SendMail
	}
	return &mailUseCase{
		cfg:    cfg,
		send:   send,
		logger: logger,
	}
}

func (uc *mailUseCase) HandleMailTask(task map[string]interface{}) error {
	taskType, _ := task["type"].(string)
	if taskType != "contact_message" {
		uc.logger.Warn("Dropping mail task with unknown type %q", taskType)
		return nil
	}

	if uc.cfg.SMTPHost == "" {
		// No SMTP configured (local development); the message is already in
		// the database, so just log and ack.
		uc.logger.Info("SMTP not configured, skipping contact notification for message %v", task["message_id"])
		return nil
	}

	name, _ := task["name"].(string)
	email, _ := task["email"].(string)
	message, _ := task["message"].(string)

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: New contact message from %s\r\n\r\n%s <%s> wrote:\r\n\r\n%s\r\n",
		uc.cfg.SMTPFrom, uc.cfg.ContactEmail, name, name, email, message,
	)

	addr := fmt.Sprintf("%s:%s", uc.cfg.SMTPHost, uc.cfg.SMTPPort)
	var auth smtp.Auth
	if uc.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", uc.cfg.SMTPUser, uc.cfg.SMTPPassword, uc.cfg.SMTPHost)
	}

	if err := uc.send(addr, auth, uc.cfg.SMTPFrom, []string{uc.cfg.ContactEmail}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	uc.logger.Info("Sent contact notification for message %v", task["message_id"])
	return nil
}
