package testhelpers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrykeep/backend/internal/models"
)

// SetupSQLite returns an in-memory database for fast handler and
// service tests that do not need postgres semantics.
func SetupSQLite(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.DietaryPreference{},
		&models.InventoryItem{},
		&models.Recipe{},
		&models.RecipeFavorite{},
		&models.MealPlanEntry{},
		&models.GroceryItem{},
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	return db
}
