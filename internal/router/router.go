package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pantrykeep/backend/internal/api"
	"github.com/pantrykeep/backend/internal/middleware"
	"github.com/pantrykeep/backend/internal/service"
)

// Handlers bundles the API handlers the router wires up
type Handlers struct {
	Auth      *api.AuthHandler
	Inventory *api.InventoryHandler
	Recipe    *api.RecipeHandler
	MealPlan  *api.MealPlanHandler
	Grocery   *api.GroceryHandler
	AIRecipes *api.AIRecipesHandler
	Health    *api.HealthHandler
}

// SetupRouter configures the application routes. aiRateLimiter may be
// nil when Redis is not configured; the recommendation endpoint then
// runs unthrottled.
func SetupRouter(h Handlers, authService service.IAuthService, aiRateLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	h.Health.RegisterRoutes(router)

	// The recommendation relay sits outside /api/v1 and outside auth so
	// the kitchen page can call it before sign-in.
	if aiRateLimiter != nil {
		h.AIRecipes.RegisterRoutes(router, aiRateLimiter.PerClientMiddleware())
	} else {
		h.AIRecipes.RegisterRoutes(router)
	}

	v1 := router.Group("/api/v1")
	h.Auth.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		h.Auth.RegisterProtectedRoutes(protected)
		h.Inventory.RegisterRoutes(protected)
		h.Recipe.RegisterRoutes(protected)
		h.MealPlan.RegisterRoutes(protected)
		h.Grocery.RegisterRoutes(protected)
	}

	return router
}
