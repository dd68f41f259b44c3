package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pantrykeep/backend/internal/service"
	"github.com/pantrykeep/backend/internal/types"
)

// AIRecipesHandler serves the recipe recommendation relay endpoint
type AIRecipesHandler struct {
	recommender service.IRecipeRecommender
	timeout     time.Duration
}

// NewAIRecipesHandler creates a new AIRecipesHandler instance. timeout
// bounds the upstream call per request; zero means 30 seconds.
func NewAIRecipesHandler(recommender service.IRecipeRecommender, timeout time.Duration) *AIRecipesHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIRecipesHandler{
		recommender: recommender,
		timeout:     timeout,
	}
}

// RegisterRoutes registers the recommendation route
func (h *AIRecipesHandler) RegisterRoutes(router gin.IRouter, extra ...gin.HandlerFunc) {
	handlers := append(extra, h.Recommend)
	router.POST("/api/ai-recipes", handlers...)
}

// Recommend handles POST /api/ai-recipes. The body must carry an
// ingredients array and a preferences string; both may be empty but
// neither may be absent. Success is a bare JSON array of
// recommendations; failures are {"error": ...} with 400 for bad
// requests and 502 when the upstream call or its parsing failed.
func (h *AIRecipesHandler) Recommend(c *gin.Context) {
	var req types.RecommendationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if req.Ingredients == nil || req.Preferences == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request must include an ingredients array and a preferences string"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	recipes, err := h.recommender.RecommendRecipes(ctx, *req.Ingredients, *req.Preferences)
	if err != nil {
		var upstreamErr *service.UpstreamError
		var parseErr *service.ParseError
		switch {
		case errors.As(err, &upstreamErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": upstreamErr.Error()})
		case errors.As(err, &parseErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": parseErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recommendations: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, recipes)
}
