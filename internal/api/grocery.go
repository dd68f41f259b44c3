package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrykeep/backend/internal/models"
)

// GroceryHandler manages the household grocery list
type GroceryHandler struct {
	db *gorm.DB
}

// NewGroceryHandler creates a new GroceryHandler instance
func NewGroceryHandler(db *gorm.DB) *GroceryHandler {
	return &GroceryHandler{db: db}
}

// RegisterRoutes registers the grocery list routes
func (h *GroceryHandler) RegisterRoutes(router *gin.RouterGroup) {
	grocery := router.Group("/grocery")
	{
		grocery.GET("", h.ListItems)
		grocery.POST("", h.AddItem)
		grocery.PUT("/:id", h.UpdateItem)
		grocery.DELETE("/:id", h.DeleteItem)
		grocery.DELETE("", h.ClearChecked)
	}
}

func (h *GroceryHandler) ListItems(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var items []models.GroceryItem
	if err := h.db.Where("user_id = ?", userID.(uuid.UUID)).Order("created_at").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grocery list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *GroceryHandler) AddItem(c *gin.Context) {
	var item models.GroceryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	item.ID = uuid.New()
	item.UserID = userID.(uuid.UUID)
	item.Checked = false
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *GroceryHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")
	var item models.GroceryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var existing models.GroceryItem
	if err := h.db.First(&existing, "id = ? AND user_id = ?", id, userID.(uuid.UUID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	updates := map[string]interface{}{
		"name":     item.Name,
		"quantity": item.Quantity,
		"unit":     item.Unit,
		"checked":  item.Checked,
	}
	if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully",
		"id":      id,
	})
}

func (h *GroceryHandler) DeleteItem(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	result := h.db.Delete(&models.GroceryItem{}, "id = ? AND user_id = ?", id, userID.(uuid.UUID))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully",
		"id":      id,
	})
}

// ClearChecked removes every checked-off item from the caller's list
func (h *GroceryHandler) ClearChecked(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result := h.db.Where("user_id = ? AND checked = ?", userID.(uuid.UUID), true).Delete(&models.GroceryItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear checked items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checked items cleared",
		"deleted": result.RowsAffected,
	})
}
