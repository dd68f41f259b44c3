package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal types accepted in meal plan entries.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// ValidMealType reports whether t is one of the accepted meal types
func ValidMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MealPlanEntry assigns a dish to a date and meal slot. RecipeID is
// optional; free-text dishes only set DishName.
type MealPlanEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Date      time.Time      `gorm:"type:date;not null;index" json:"date"`
	MealType  string         `gorm:"size:20;not null" json:"meal_type"`
	RecipeID  *uuid.UUID     `gorm:"type:uuid" json:"recipe_id,omitempty"`
	DishName  string         `gorm:"size:255" json:"dish_name"`
	Notes     string         `gorm:"type:text" json:"notes"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
}
