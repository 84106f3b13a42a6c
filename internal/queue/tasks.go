package queue

import (
	"encoding/json"

	"github.com/aevi-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskContactNotice notifies staff about a contact-form lead.
	TaskContactNotice = constants.TaskContactNotice
	// TaskNewsletterWelcome greets a fresh newsletter subscriber.
	TaskNewsletterWelcome = constants.TaskNewsletterWelcome
	// TaskAccountConfirm sends the account confirmation link.
	TaskAccountConfirm = constants.TaskAccountConfirm
	// TaskPasswordReset sends the password reset link.
	TaskPasswordReset = constants.TaskPasswordReset
)

// ContactNoticePayload carries a stored lead to the mailer.
type ContactNoticePayload struct {
	LeadID  uint   `json:"lead_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewsletterWelcomePayload addresses the welcome email.
type NewsletterWelcomePayload struct {
	Email string `json:"email"`
}

// AccountConfirmPayload carries the confirmation token.
type AccountConfirmPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// PasswordResetPayload carries the reset token.
type PasswordResetPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// NewContactNoticeTask builds the contact notice task.
func NewContactNoticeTask(payload ContactNoticePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotice, body), nil
}

// NewNewsletterWelcomeTask builds the welcome email task.
func NewNewsletterWelcomeTask(payload NewsletterWelcomePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNewsletterWelcome, body), nil
}

// NewAccountConfirmTask builds the account confirmation task.
func NewAccountConfirmTask(payload AccountConfirmPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAccountConfirm, body), nil
}

// NewPasswordResetTask builds the password reset task.
func NewPasswordResetTask(payload PasswordResetPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordReset, body), nil
}
