package repository

import (
	"github.com/aevi-next/internal/models"

	"gorm.io/gorm"
)

// LeadRepository persists contact-form submissions.
type LeadRepository interface {
	Create(lead *models.Lead) error
	CountAll() (int64, error)
}

// GormLeadRepository is the GORM implementation.
type GormLeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a lead repository.
func NewLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// Create appends a lead.
func (r *GormLeadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// CountAll counts stored leads.
func (r *GormLeadRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Count(&count).Error
	return count, err
}
