package service

import (
	"errors"

	"github.com/aevi-next/internal/logger"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/queue"
)

// NotificationService fans storefront events out to email. Delivery is
// best effort: with the queue enabled tasks go to asynq, otherwise the
// send happens inline. Failures are logged, never surfaced to the
// request that triggered them.
type NotificationService struct {
	emailService *EmailService
	queueClient  *queue.Client
}

// NewNotificationService creates the notification service.
func NewNotificationService(emailService *EmailService, queueClient *queue.Client) *NotificationService {
	return &NotificationService{
		emailService: emailService,
		queueClient:  queueClient,
	}
}

// NotifyContact forwards a stored lead to the staff inbox.
func (s *NotificationService) NotifyContact(lead *models.Lead) {
	if s == nil || lead == nil {
		return
	}
	if s.queueClient.Enabled() {
		payload := queue.ContactNoticePayload{
			LeadID:  lead.ID,
			Name:    lead.Name,
			Email:   lead.Email,
			Phone:   lead.Phone,
			Subject: lead.Subject,
			Message: lead.Message,
		}
		if err := s.queueClient.EnqueueContactNotice(payload); err != nil {
			logger.Warnw("notify_contact_enqueue_failed", "lead_id", lead.ID, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	err := s.emailService.SendContactNotice(ContactNoticeInput{
		Name:    lead.Name,
		Email:   lead.Email,
		Phone:   lead.Phone,
		Subject: lead.Subject,
		Message: lead.Message,
	})
	logNotifyError("notify_contact_send_failed", err, "lead_id", lead.ID)
}

// NotifyNewsletterWelcome greets a new subscriber.
func (s *NotificationService) NotifyNewsletterWelcome(email string) {
	if s == nil || email == "" {
		return
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueNewsletterWelcome(queue.NewsletterWelcomePayload{Email: email}); err != nil {
			logger.Warnw("notify_newsletter_enqueue_failed", "email", email, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	logNotifyError("notify_newsletter_send_failed", s.emailService.SendNewsletterWelcome(email), "email", email)
}

// NotifyAccountConfirm mails the confirmation link.
func (s *NotificationService) NotifyAccountConfirm(userID uint, email, token string) {
	if s == nil || email == "" || token == "" {
		return
	}
	if s.queueClient.Enabled() {
		payload := queue.AccountConfirmPayload{UserID: userID, Email: email, Token: token}
		if err := s.queueClient.EnqueueAccountConfirm(payload); err != nil {
			logger.Warnw("notify_confirm_enqueue_failed", "user_id", userID, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	logNotifyError("notify_confirm_send_failed", s.emailService.SendAccountConfirm(email, token), "user_id", userID)
}

// NotifyPasswordReset mails the reset link.
func (s *NotificationService) NotifyPasswordReset(userID uint, email, token string) {
	if s == nil || email == "" || token == "" {
		return
	}
	if s.queueClient.Enabled() {
		payload := queue.PasswordResetPayload{UserID: userID, Email: email, Token: token}
		if err := s.queueClient.EnqueuePasswordReset(payload); err != nil {
			logger.Warnw("notify_reset_enqueue_failed", "user_id", userID, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	logNotifyError("notify_reset_send_failed", s.emailService.SendPasswordReset(email, token), "user_id", userID)
}

func logNotifyError(msg string, err error, keysAndValues ...interface{}) {
	if err == nil || errors.Is(err, ErrEmailServiceDisabled) {
		return
	}
	args := append(keysAndValues, "error", err)
	logger.Warnw(msg, args...)
}
