package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroceryItem is one line on the household grocery list
type GroceryItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Quantity  float64        `gorm:"not null;default:1" json:"quantity"`
	Unit      string         `gorm:"size:50" json:"unit"`
	Checked   bool           `gorm:"not null;default:false" json:"checked"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
}
