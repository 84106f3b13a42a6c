package repository

import (
	"errors"

	"github.com/aevi-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository is the wishlist data access surface.
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.Wishlist, error)
	GetByUserAndProduct(userID, productID uint) (*models.Wishlist, error)
	Create(entry *models.Wishlist) error
	DeleteByUserAndProduct(userID, productID uint) (int64, error)
	CountByUser(userID uint) (int64, error)
}

// GormWishlistRepository is the GORM implementation.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a wishlist repository.
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser returns the user's wishlist with products preloaded,
// oldest first.
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByUserAndProduct returns the entry or nil when absent.
func (r *GormWishlistRepository) GetByUserAndProduct(userID, productID uint) (*models.Wishlist, error) {
	var entry models.Wishlist
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Create inserts an entry; the unique index backs up the service-level
// duplicate check.
func (r *GormWishlistRepository) Create(entry *models.Wishlist) error {
	return r.db.Create(entry).Error
}

// DeleteByUserAndProduct removes the entry and reports how many rows
// went away.
func (r *GormWishlistRepository) DeleteByUserAndProduct(userID, productID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Wishlist{})
	return result.RowsAffected, result.Error
}

// CountByUser counts the user's wishlist entries.
func (r *GormWishlistRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Wishlist{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
