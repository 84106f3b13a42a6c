package models

import (
	"time"
)

// CartItem is one cart line. Exactly one of UserID / SessionID identifies
// the owner: UserID is 0 for anonymous carts and SessionID is empty for
// user carts. The add path keeps (owner, product, size) unique by
// incrementing the existing row instead of inserting.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index:idx_cart_owner" json:"user_id,omitempty"`
	SessionID string    `gorm:"size:100;index:idx_cart_owner" json:"-"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Size      *string   `gorm:"size:50" json:"size"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
