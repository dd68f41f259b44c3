package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrykeep/backend/internal/models"
	"github.com/pantrykeep/backend/internal/service"
)

// maxImageUploadBytes caps recipe photo uploads at 5 MB
const maxImageUploadBytes = 5 << 20

// RecipeHandler manages the household cookbook
type RecipeHandler struct {
	db           *gorm.DB
	imageService *service.ImageService
}

// NewRecipeHandler creates a new RecipeHandler instance. imageService may
// be nil when S3 is not configured; uploads then return 503.
func NewRecipeHandler(db *gorm.DB, imageService *service.ImageService) *RecipeHandler {
	return &RecipeHandler{db: db, imageService: imageService}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.UnfavoriteRecipe)
		recipes.POST("/:id/image", h.UploadImage)
	}
}

// ListRecipes returns the caller's recipes, optionally filtered by a
// search query and ranked by embedding distance when one is given.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.db.Where("user_id = ?", userID.(uuid.UUID))

	var recipes []models.Recipe
	if q := c.Query("q"); q != "" {
		if h.db.Dialector.Name() == "postgres" {
			embedding := service.GenerateEmbedding(q)
			query = query.Where("name ILIKE ? OR cuisine ILIKE ?", "%"+q+"%", "%"+q+"%").
				Clauses(clause.OrderBy{Expression: clause.Expr{
					SQL:  "embedding <-> ?",
					Vars: []interface{}{embedding},
				}})
		} else {
			// sqlite has no ILIKE or vector ops; LIKE is case-insensitive there
			query = query.Where("name LIKE ? OR cuisine LIKE ?", "%"+q+"%", "%"+q+"%").
				Order("name")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	var recipe models.Recipe
	if err := h.db.First(&recipe, "id = ? AND user_id = ?", id, userID.(uuid.UUID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if recipe.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if recipe.PrepTime < 0 || recipe.CookTime < 0 || recipe.Servings < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "times and servings must not be negative"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipe.ID = uuid.New()
	recipe.UserID = userID.(uuid.UUID)
	embedding := service.GenerateEmbedding(recipe.Name + " " + recipe.Cuisine)
	recipe.Embedding = &embedding
	if recipe.Ingredients == nil {
		recipe.Ingredients = models.JSONBStringArray{}
	}
	if recipe.DietaryInfo == nil {
		recipe.DietaryInfo = models.JSONBStringArray{}
	}

	if err := h.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Recipe
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if existing.UserID != userID.(uuid.UUID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your recipe"})
		return
	}

	updates := map[string]interface{}{
		"name":         recipe.Name,
		"cuisine":      recipe.Cuisine,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
		"prep_time":    recipe.PrepTime,
		"cook_time":    recipe.CookTime,
		"servings":     recipe.Servings,
		"dietary_info": recipe.DietaryInfo,
		"embedding":    service.GenerateEmbedding(recipe.Name + " " + recipe.Cuisine),
	}
	if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	result := h.db.Delete(&models.Recipe{}, "id = ? AND user_id = ?", id, userID.(uuid.UUID))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var recipe models.Recipe
	if err := h.db.First(&recipe, "id = ? AND user_id = ?", recipeID, userID.(uuid.UUID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	fav := models.RecipeFavorite{
		ID:       uuid.New(),
		RecipeID: recipeID,
		UserID:   userID.(uuid.UUID),
	}
	if err := h.db.Create(&fav).Error; err != nil {
		// unique index violation means it is already a favorite
		c.JSON(http.StatusOK, gin.H{"message": "Recipe already favorited"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Recipe favorited"})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID := c.Param("id")
	result := h.db.Where("recipe_id = ? AND user_id = ?", recipeID, userID.(uuid.UUID)).Delete(&models.RecipeFavorite{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfavorite recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe unfavorited"})
}

// UploadImage accepts a multipart photo upload for a recipe and stores
// it in S3, recording the returned URL on the recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var recipe models.Recipe
	if err := h.db.First(&recipe, "id = ? AND user_id = ?", recipeID, userID.(uuid.UUID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 5 MB limit"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), recipeID, data, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := h.db.Model(&recipe).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
