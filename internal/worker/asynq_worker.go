package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aevi-next/internal/logger"
	"github.com/aevi-next/internal/provider"
	"github.com/aevi-next/internal/queue"
	"github.com/aevi-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer processes the queued email tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskContactNotice, c.handleContactNotice)
	mux.HandleFunc(queue.TaskNewsletterWelcome, c.handleNewsletterWelcome)
	mux.HandleFunc(queue.TaskAccountConfirm, c.handleAccountConfirm)
	mux.HandleFunc(queue.TaskPasswordReset, c.handlePasswordReset)
}

func (c *Consumer) handleContactNotice(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ContactNoticePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_notice_unmarshal_failed", "error", err)
		return err
	}
	if c.EmailService == nil {
		logger.Warnw("worker_contact_notice_skip_email_service_nil", "lead_id", payload.LeadID)
		return nil
	}
	err := c.EmailService.SendContactNotice(service.ContactNoticeInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	return c.finishEmailTask("worker_contact_notice_send_failed", err, "lead_id", payload.LeadID)
}

func (c *Consumer) handleNewsletterWelcome(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.NewsletterWelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_newsletter_welcome_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || c.EmailService == nil {
		return nil
	}
	err := c.EmailService.SendNewsletterWelcome(payload.Email)
	return c.finishEmailTask("worker_newsletter_welcome_send_failed", err, "email", payload.Email)
}

func (c *Consumer) handleAccountConfirm(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.AccountConfirmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_account_confirm_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.Token == "" || c.EmailService == nil {
		return nil
	}
	err := c.EmailService.SendAccountConfirm(payload.Email, payload.Token)
	return c.finishEmailTask("worker_account_confirm_send_failed", err, "user_id", payload.UserID)
}

func (c *Consumer) handlePasswordReset(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PasswordResetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.Token == "" || c.EmailService == nil {
		return nil
	}
	err := c.EmailService.SendPasswordReset(payload.Email, payload.Token)
	return c.finishEmailTask("worker_password_reset_send_failed", err, "user_id", payload.UserID)
}

// finishEmailTask decides whether a send failure is worth retrying.
// Disabled or misconfigured SMTP and rejected recipients never succeed
// on retry, so those drop the task.
func (c *Consumer) finishEmailTask(msg string, err error, keysAndValues ...interface{}) error {
	if err == nil {
		return nil
	}
	args := append(keysAndValues, "error", err)
	switch {
	case errors.Is(err, service.ErrEmailServiceDisabled),
		errors.Is(err, service.ErrEmailServiceNotConfigured),
		errors.Is(err, service.ErrEmailRecipientRejected),
		errors.Is(err, service.ErrEmailInvalid):
		logger.Debugw(msg, args...)
		return nil
	default:
		logger.Warnw(msg, args...)
		return err
	}
}
