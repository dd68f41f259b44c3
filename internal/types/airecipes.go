package types

// IngredientInput is one inventory entry as posted by the client to the
// recommendation endpoint. It is read-only input; the inventory tables
// are not consulted.
type IngredientInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Location string  `json:"location"`
}

// RecommendationRequest is the body of POST /api/ai-recipes. Both fields
// use pointers so that a missing key can be told apart from an empty
// value: an empty ingredient list and an empty preference string are
// valid, an absent key is not.
type RecommendationRequest struct {
	Ingredients *[]IngredientInput `json:"ingredients"`
	Preferences *string            `json:"preferences"`
}

// RecipeRecommendation is one structured recipe parsed out of the
// upstream model's reply. It exists only for the duration of a single
// request/response cycle and is not persisted.
type RecipeRecommendation struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	PrepTime     int      `json:"prepTime"`
	CookTime     int      `json:"cookTime"`
	Servings     int      `json:"servings"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty"`
	DietaryInfo  []string `json:"dietaryInfo,omitempty"`
}
