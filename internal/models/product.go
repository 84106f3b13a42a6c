package models

import (
	"time"
)

// Product is a catalog entry. Rows are created by the seed command and
// are immutable through the storefront API.
type Product struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Name             string    `gorm:"size:200;not null;index" json:"name"`
	ShortDescription string    `gorm:"size:500" json:"short_description"`
	Description      string    `gorm:"type:text" json:"description"`
	Price            Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Category         string    `gorm:"size:100;index" json:"category"`
	ImageMain        string    `gorm:"size:500" json:"image_main"`
	ImageHover       string    `gorm:"size:500" json:"image_hover"`
	IsBestseller     bool      `gorm:"default:false;index" json:"is_bestseller"`
	IsNew            bool      `gorm:"default:false;index" json:"is_new"`
	InStock          bool      `gorm:"default:true" json:"in_stock"`
	Rating           float64   `gorm:"default:0" json:"rating"`
	ReviewCount      int       `gorm:"default:0" json:"review_count"`
	Ingredients      string    `gorm:"type:text" json:"ingredients"`
	HowToUse         string    `gorm:"type:text" json:"how_to_use"`
	Benefits         string    `gorm:"type:text" json:"benefits"`
	SizeOptions      string    `gorm:"type:text" json:"size_options"`
	Tags             string    `gorm:"type:text" json:"tags"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
