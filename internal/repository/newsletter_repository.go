package repository

import (
	"errors"

	"github.com/aevi-next/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository is the subscription data access surface.
type NewsletterRepository interface {
	GetByEmail(email string) (*models.Newsletter, error)
	Create(subscription *models.Newsletter) error
	Deactivate(email string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) NewsletterRepository
}

// GormNewsletterRepository is the GORM implementation.
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a newsletter repository.
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormNewsletterRepository) WithTx(tx *gorm.DB) NewsletterRepository {
	if tx == nil {
		return r
	}
	return &GormNewsletterRepository{db: tx}
}

// Transaction runs fn atomically.
func (r *GormNewsletterRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByEmail returns the row for email regardless of its active state,
// nil when absent.
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.Newsletter, error) {
	var subscription models.Newsletter
	if err := r.db.Where("email = ?", email).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscription, nil
}

// Create inserts a subscription row.
func (r *GormNewsletterRepository) Create(subscription *models.Newsletter) error {
	return r.db.Create(subscription).Error
}

// Deactivate clears the active flag for email. A missing row is a no-op.
func (r *GormNewsletterRepository) Deactivate(email string) error {
	return r.db.Model(&models.Newsletter{}).Where("email = ?", email).Update("is_active", false).Error
}
