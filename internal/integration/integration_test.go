package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrykeep/backend/internal/api"
	"github.com/pantrykeep/backend/internal/router"
	"github.com/pantrykeep/backend/internal/service"
	"github.com/pantrykeep/backend/internal/testhelpers"
	"github.com/pantrykeep/backend/internal/types"
)

// newApp assembles the full router against sqlite and a mock
// generative-language upstream.
func newApp(t *testing.T) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]string{
							{"text": `[{"name": "Veggie Stir Fry", "ingredients": ["2 cups rice", "1 bag frozen peas"], "instructions": "Fry the vegetables, serve over rice.", "prepTime": 10, "cookTime": 15, "servings": 2, "dietaryInfo": ["vegetarian"]}]`},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(upstream.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_URL", upstream.URL)

	db := testhelpers.SetupSQLite(t)
	authService := service.NewAuthService(db, testhelpers.TestJWTSecret)

	generator, err := service.NewGeminiClient()
	require.NoError(t, err)

	handlers := router.Handlers{
		Auth:      api.NewAuthHandler(db, authService),
		Inventory: api.NewInventoryHandler(db),
		Recipe:    api.NewRecipeHandler(db, nil),
		MealPlan:  api.NewMealPlanHandler(db),
		Grocery:   api.NewGroceryHandler(db),
		AIRecipes: api.NewAIRecipesHandler(service.NewAIService(generator), 0),
		Health:    api.NewHealthHandler(db, nil),
	}

	return router.SetupRouter(handlers, authService, nil), upstream
}

func post(r *gin.Engine, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestKitchenFlow(t *testing.T) {
	app, _ := newApp(t)

	// Health is public
	w := get(app, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Register a household account
	w = post(app, "/api/v1/auth/register", "", `{
		"name": "Demo Cook",
		"email": "demo@example.com",
		"password": "demopassword123",
		"username": "democook"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))

	// Protected routes reject missing tokens
	w = get(app, "/api/v1/inventory", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Stock the pantry
	w = post(app, "/api/v1/inventory", auth.Token, `{
		"name": "Rice", "quantity": 2, "unit": "cups", "location": "Pantry"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = get(app, "/api/v1/inventory", auth.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rice")

	// Ask for recommendations; the relay endpoint needs no token
	w = post(app, "/api/ai-recipes", "", `{
		"ingredients": [{"name": "Rice", "quantity": 2, "unit": "cups", "location": "Pantry"}],
		"preferences": "vegetarian"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var recs []types.RecipeRecommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Veggie Stir Fry", recs[0].Name)

	// Save the recommended recipe into the cookbook
	saved, err := json.Marshal(map[string]interface{}{
		"name":         recs[0].Name,
		"ingredients":  recs[0].Ingredients,
		"instructions": recs[0].Instructions,
		"prep_time":    recs[0].PrepTime,
		"cook_time":    recs[0].CookTime,
		"servings":     recs[0].Servings,
		"dietary_info": recs[0].DietaryInfo,
	})
	require.NoError(t, err)

	w = post(app, "/api/v1/recipes", auth.Token, string(saved))
	require.Equal(t, http.StatusCreated, w.Code)

	w = get(app, "/api/v1/recipes?q=stir", auth.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Veggie Stir Fry")
}

func TestRelayRejectsBadBodiesWithoutUpstreamCall(t *testing.T) {
	app, upstream := newApp(t)

	var hits int
	orig := upstream.Config.Handler
	upstream.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		orig.ServeHTTP(w, r)
	})

	w := post(app, "/api/ai-recipes", "", `{"preferences": "anything"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, hits)
}
