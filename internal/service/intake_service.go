package service

import (
	"strings"

	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"gorm.io/gorm"
)

// ContactInput is a contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// IntakeService takes in contact leads and newsletter subscriptions.
type IntakeService struct {
	leadRepo       repository.LeadRepository
	newsletterRepo repository.NewsletterRepository
	userRepo       repository.UserRepository
	notification   *NotificationService
}

// NewIntakeService creates the intake service.
func NewIntakeService(
	leadRepo repository.LeadRepository,
	newsletterRepo repository.NewsletterRepository,
	userRepo repository.UserRepository,
	notification *NotificationService,
) *IntakeService {
	return &IntakeService{
		leadRepo:       leadRepo,
		newsletterRepo: newsletterRepo,
		userRepo:       userRepo,
		notification:   notification,
	}
}

// SubmitContact stores a lead and forwards it to the staff inbox. The
// lead persists even when the mailer is down; notification failure
// never loses the submission.
func (s *IntakeService) SubmitContact(input ContactInput) (*models.Lead, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	lead := &models.Lead{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: message,
	}
	if err := s.leadRepo.Create(lead); err != nil {
		return nil, err
	}
	if s.notification != nil {
		s.notification.NotifyContact(lead)
	}
	return lead, nil
}

// SubscribeNewsletter records a subscription. The bool reports whether
// a new subscription was created: any existing row, active or not,
// reads as already subscribed and is left exactly as it was.
func (s *IntakeService) SubscribeNewsletter(email string) (bool, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}
	existing, err := s.newsletterRepo.GetByEmail(normalized)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	// The subscription row and the user flag land together or not at
	// all.
	err = s.newsletterRepo.Transaction(func(tx *gorm.DB) error {
		subscription := &models.Newsletter{
			Email:    normalized,
			IsActive: true,
		}
		if err := s.newsletterRepo.WithTx(tx).Create(subscription); err != nil {
			return err
		}
		if s.userRepo != nil {
			return s.userRepo.WithTx(tx).SetSubscribed(normalized, true)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if s.notification != nil {
		s.notification.NotifyNewsletterWelcome(normalized)
	}
	return true, nil
}

// UnsubscribeNewsletter deactivates a subscription. Unsubscribing an
// unknown address succeeds; the operation is idempotent.
func (s *IntakeService) UnsubscribeNewsletter(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	return s.newsletterRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.newsletterRepo.WithTx(tx).Deactivate(normalized); err != nil {
			return err
		}
		if s.userRepo != nil {
			return s.userRepo.WithTx(tx).SetSubscribed(normalized, false)
		}
		return nil
	})
}
