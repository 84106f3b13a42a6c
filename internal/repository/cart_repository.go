package repository

import (
	"errors"

	"github.com/aevi-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access surface. Every lookup is scoped
// to a CartOwner so one owner can never see or touch another's rows.
type CartRepository interface {
	ListByOwner(owner CartOwner) ([]models.CartItem, error)
	GetLine(owner CartOwner, productID uint, size *string) (*models.CartItem, error)
	GetByIDForOwner(id uint, owner CartOwner) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id uint, quantity int) error
	AssignToUser(id uint, userID uint) error
	Delete(id uint) error
	ListBySession(sessionID string) ([]models.CartItem, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction runs fn atomically.
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormCartRepository) scopeOwner(query *gorm.DB, owner CartOwner) *gorm.DB {
	if owner.UserID != 0 {
		return query.Where("user_id = ?", owner.UserID)
	}
	return query.Where("user_id = 0 AND session_id = ?", owner.SessionID)
}

// ListByOwner returns the owner's cart lines with products preloaded,
// oldest first.
func (r *GormCartRepository) ListByOwner(owner CartOwner) ([]models.CartItem, error) {
	if owner.IsZero() {
		return []models.CartItem{}, nil
	}
	var items []models.CartItem
	query := r.scopeOwner(r.db.Preload("Product"), owner)
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetLine finds the owner's line for (product, size), comparing size
// including NULL. Returns nil when no such line exists.
func (r *GormCartRepository) GetLine(owner CartOwner, productID uint, size *string) (*models.CartItem, error) {
	if owner.IsZero() {
		return nil, nil
	}
	query := r.scopeOwner(r.db, owner).Where("product_id = ?", productID)
	if size == nil {
		query = query.Where("size IS NULL")
	} else {
		query = query.Where("size = ?", *size)
	}
	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByIDForOwner returns the line only when it belongs to owner, nil
// otherwise.
func (r *GormCartRepository) GetByIDForOwner(id uint, owner CartOwner) (*models.CartItem, error) {
	if owner.IsZero() {
		return nil, nil
	}
	var item models.CartItem
	query := r.scopeOwner(r.db.Where("id = ?", id), owner)
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a cart line.
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity sets the exact quantity of a line.
func (r *GormCartRepository) UpdateQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

// AssignToUser re-keys a line from an anonymous session to a user.
func (r *GormCartRepository) AssignToUser(id uint, userID uint) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).
		Updates(map[string]interface{}{"user_id": userID, "session_id": ""}).Error
}

// Delete removes a line by id.
func (r *GormCartRepository) Delete(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

// ListBySession returns every line owned by an anonymous session.
func (r *GormCartRepository) ListBySession(sessionID string) ([]models.CartItem, error) {
	if sessionID == "" {
		return []models.CartItem{}, nil
	}
	var items []models.CartItem
	if err := r.db.Where("user_id = 0 AND session_id = ?", sessionID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
