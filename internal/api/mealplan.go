package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrykeep/backend/internal/models"
)

// MealPlanHandler manages the weekly meal plan
type MealPlanHandler struct {
	db *gorm.DB
}

// NewMealPlanHandler creates a new MealPlanHandler instance
func NewMealPlanHandler(db *gorm.DB) *MealPlanHandler {
	return &MealPlanHandler{db: db}
}

// RegisterRoutes registers the meal plan routes
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	mealplan := router.Group("/mealplan")
	{
		mealplan.GET("", h.ListEntries)
		mealplan.POST("", h.CreateEntry)
		mealplan.PUT("/:id", h.UpdateEntry)
		mealplan.DELETE("/:id", h.DeleteEntry)
	}
}

// ListEntries returns the caller's plan entries, bounded by optional
// from/to date query parameters (YYYY-MM-DD).
func (h *MealPlanHandler) ListEntries(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.db.Where("user_id = ?", userID.(uuid.UUID))

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		query = query.Where("date >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		query = query.Where("date <= ?", t)
	}

	var entries []models.MealPlanEntry
	if err := query.Order("date, meal_type").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *MealPlanHandler) CreateEntry(c *gin.Context) {
	var entry models.MealPlanEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidMealType(entry.MealType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_type must be breakfast, lunch, dinner or snack"})
		return
	}
	if entry.RecipeID == nil && entry.DishName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry needs a recipe_id or a dish_name"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if entry.RecipeID != nil {
		var recipe models.Recipe
		if err := h.db.First(&recipe, "id = ? AND user_id = ?", *entry.RecipeID, userID.(uuid.UUID)).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id does not exist"})
			return
		}
	}

	entry.ID = uuid.New()
	entry.UserID = userID.(uuid.UUID)

	if err := h.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// updateEntryRequest uses pointer fields so an omitted key leaves the
// stored value alone.
type updateEntryRequest struct {
	Date     *time.Time `json:"date"`
	MealType *string    `json:"meal_type"`
	RecipeID *uuid.UUID `json:"recipe_id"`
	DishName *string    `json:"dish_name"`
	Notes    *string    `json:"notes"`
}

func (h *MealPlanHandler) UpdateEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.MealType != nil && !models.ValidMealType(*req.MealType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_type must be breakfast, lunch, dinner or snack"})
		return
	}

	var existing models.MealPlanEntry
	if err := h.db.First(&existing, "id = ? AND user_id = ?", id, userID.(uuid.UUID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.MealType != nil {
		updates["meal_type"] = *req.MealType
	}
	if req.RecipeID != nil {
		var recipe models.Recipe
		if err := h.db.First(&recipe, "id = ? AND user_id = ?", *req.RecipeID, userID.(uuid.UUID)).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id does not exist"})
			return
		}
		updates["recipe_id"] = *req.RecipeID
	}
	if req.DishName != nil {
		updates["dish_name"] = *req.DishName
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Entry updated successfully",
		"id":      id,
	})
}

func (h *MealPlanHandler) DeleteEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	result := h.db.Delete(&models.MealPlanEntry{}, "id = ? AND user_id = ?", id, userID.(uuid.UUID))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Entry deleted successfully",
		"id":      id,
	})
}
