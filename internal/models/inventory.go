package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory locations as stored in the location column.
const (
	LocationPantry       = "Pantry"
	LocationRefrigerator = "Refrigerator"
	LocationFreezer      = "Freezer"
	LocationCounter      = "Counter"
)

// InventoryItem is one pantry/fridge/counter entry
type InventoryItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Quantity  float64        `gorm:"not null;default:0" json:"quantity"`
	Unit      string         `gorm:"size:50" json:"unit"`
	Location  string         `gorm:"size:50;not null;default:'Pantry'" json:"location"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
}
