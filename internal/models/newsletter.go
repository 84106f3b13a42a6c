package models

import (
	"time"
)

// Newsletter is a subscription row. Rows are never deleted; unsubscribing
// clears IsActive.
type Newsletter struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Newsletter) TableName() string {
	return "newsletters"
}
