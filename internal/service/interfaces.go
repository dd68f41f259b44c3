package service

import (
	"context"

	"github.com/pantrykeep/backend/internal/types"
)

// IAuthService defines the authentication operations handlers depend on
type IAuthService interface {
	Register(name, email, password, username, dietaryPrefs string) (string, error)
	Login(email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeRecommender is the AI recommendation relay as seen by handlers
type IRecipeRecommender interface {
	RecommendRecipes(ctx context.Context, ingredients []types.IngredientInput, preferences string) ([]types.RecipeRecommendation, error)
}
