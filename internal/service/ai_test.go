package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrykeep/backend/internal/types"
)

// stubGenerator records prompts and returns canned replies
type stubGenerator struct {
	reply string
	err   error
	calls int
	last  string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	s.calls++
	s.last = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

const validReply = `[
  {
    "name": "Chicken Fried Rice",
    "ingredients": ["2 cups rice", "1 chicken breast"],
    "instructions": "Cook the rice, fry the chicken, combine.",
    "prepTime": 10,
    "cookTime": 20,
    "servings": 4,
    "cuisine": "Chinese",
    "dietaryInfo": ["dairy-free"]
  }
]`

func TestRecommendRecipes(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	svc := NewAIService(gen)

	ingredients := []types.IngredientInput{
		{Name: "Chicken Breast", Quantity: 2, Unit: "lbs", Location: "Refrigerator"},
		{Name: "Rice", Quantity: 3, Unit: "cups", Location: "Pantry"},
	}

	recipes, err := svc.RecommendRecipes(context.Background(), ingredients, "spicy, no dairy")
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	assert.Equal(t, "Chicken Fried Rice", recipes[0].Name)
	assert.Equal(t, 10, recipes[0].PrepTime)
	assert.Equal(t, 20, recipes[0].CookTime)
	assert.Equal(t, 4, recipes[0].Servings)
	assert.Equal(t, "Chinese", recipes[0].Cuisine)

	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.last, "Chicken Breast (2 lbs, stored in Refrigerator)")
	assert.Contains(t, gen.last, "Rice (3 cups, stored in Pantry)")
	assert.Contains(t, gen.last, "User preferences: spicy, no dairy")
}

func TestRecommendRecipesEmptyInputs(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	svc := NewAIService(gen)

	_, err := svc.RecommendRecipes(context.Background(), []types.IngredientInput{}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.last, "(none listed)")
	assert.Contains(t, gen.last, "No specific preferences")
}

func TestRecommendRecipesUpstreamError(t *testing.T) {
	gen := &stubGenerator{err: &UpstreamError{Status: 503, Err: errors.New("overloaded")}}
	svc := NewAIService(gen)

	_, err := svc.RecommendRecipes(context.Background(), nil, "")
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 503, upstreamErr.Status)
	assert.Equal(t, 1, gen.calls)
}

func TestPromptIngredientCap(t *testing.T) {
	var ingredients []types.IngredientInput
	for i := 0; i < maxPromptIngredients+50; i++ {
		ingredients = append(ingredients, types.IngredientInput{
			Name: fmt.Sprintf("Item %d", i), Quantity: 1, Unit: "unit",
		})
	}

	prompt := buildRecommendationPrompt(ingredients, "")
	assert.Contains(t, prompt, fmt.Sprintf("Item %d", maxPromptIngredients-1))
	assert.NotContains(t, prompt, fmt.Sprintf("Item %d ", maxPromptIngredients))
	assert.Equal(t, maxPromptIngredients, strings.Count(prompt, "\n- "))
}

func TestParseRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantCount int
		wantErr   string
	}{
		{
			name:      "bare array",
			reply:     validReply,
			wantCount: 1,
		},
		{
			name:      "fenced array with prose",
			reply:     "Sure! Here are some ideas:\n```json\n" + validReply + "\n```\nEnjoy!",
			wantCount: 1,
		},
		{
			name:      "empty array is a valid zero result",
			reply:     "[]",
			wantCount: 0,
		},
		{
			name:    "no array at all",
			reply:   "I'm sorry, I cannot help with that.",
			wantErr: "no JSON array found",
		},
		{
			name:    "malformed array",
			reply:   `[{"name": "Broken"`,
			wantErr: "no JSON array found",
		},
		{
			name:    "syntactically broken block",
			reply:   `[{"name": }]`,
			wantErr: "malformed JSON array",
		},
		{
			name: "all entries invalid",
			reply: `[
				{"name": "", "ingredients": ["x"], "instructions": "y"},
				{"name": "No Ingredients", "ingredients": [], "instructions": "y"}
			]`,
			wantErr: "no entry could be validated",
		},
		{
			name: "invalid entries dropped, valid kept",
			reply: `[
				{"name": "Keeper", "ingredients": ["1 egg"], "instructions": "Fry it.", "prepTime": 2, "cookTime": 3, "servings": 1},
				{"name": "", "ingredients": ["x"], "instructions": "y"},
				{"name": "Negative", "ingredients": ["x"], "instructions": "y", "prepTime": -5}
			]`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := parseRecommendations(tt.reply)
			if tt.wantErr != "" {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Contains(t, parseErr.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, recipes, tt.wantCount)
		})
	}
}

func TestParseRecommendationsTolerantFields(t *testing.T) {
	reply := `[
	  {
	    "name": "Stew",
	    "ingredients": ["1 lb beef"],
	    "instructions": ["Brown the beef.", "Simmer for an hour."],
	    "prepTime": "15 minutes",
	    "cookTime": "60",
	    "servings": 6
	  }
	]`

	recipes, err := parseRecommendations(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	assert.Equal(t, "Brown the beef.\nSimmer for an hour.", recipes[0].Instructions)
	assert.Equal(t, 15, recipes[0].PrepTime)
	assert.Equal(t, 60, recipes[0].CookTime)
	assert.Equal(t, 6, recipes[0].Servings)
}

func TestFlexInt(t *testing.T) {
	var f flexInt

	require.NoError(t, f.UnmarshalJSON([]byte("42")))
	assert.Equal(t, flexInt(42), f)

	require.NoError(t, f.UnmarshalJSON([]byte(`"20 minutes"`)))
	assert.Equal(t, flexInt(20), f)

	assert.Error(t, f.UnmarshalJSON([]byte(`"about an hour"`)))
	assert.Error(t, f.UnmarshalJSON([]byte("true")))
}
