package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/pantrykeep/backend/internal/types"
)

// maxPromptIngredients bounds the prompt size when the inventory is
// large; items beyond the cap are left out of the prompt.
const maxPromptIngredients = 100

// AIService turns an inventory snapshot and a preference string into
// structured recipe recommendations by relaying one prompt to the
// upstream generative-language API and parsing its reply.
type AIService struct {
	generator TextGenerator
}

// NewAIService creates an AIService backed by the given generator
func NewAIService(generator TextGenerator) *AIService {
	return &AIService{generator: generator}
}

// RecommendRecipes performs a single upstream call and returns the
// validated recommendations. Failures are *UpstreamError or *ParseError;
// a reply whose structured block is a well-formed empty array yields an
// empty (non-error) result.
func (s *AIService) RecommendRecipes(ctx context.Context, ingredients []types.IngredientInput, preferences string) ([]types.RecipeRecommendation, error) {
	prompt := buildRecommendationPrompt(ingredients, preferences)

	reply, err := s.generator.Generate(ctx, prompt, GenerationConfig{
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		return nil, err
	}

	recipes, err := parseRecommendations(reply)
	if err != nil {
		log.Printf("[AIService] unusable reply (%v), first 200 bytes: %.200s", err, reply)
		return nil, err
	}

	return recipes, nil
}

// buildRecommendationPrompt embeds the ingredient list and the verbatim
// preference text into the instruction template.
func buildRecommendationPrompt(ingredients []types.IngredientInput, preferences string) string {
	if len(ingredients) > maxPromptIngredients {
		ingredients = ingredients[:maxPromptIngredients]
	}

	var b strings.Builder
	b.WriteString("I have the following ingredients:\n")
	if len(ingredients) == 0 {
		b.WriteString("(none listed)\n")
	}
	for _, ing := range ingredients {
		location := ing.Location
		if location == "" {
			location = "Kitchen"
		}
		fmt.Fprintf(&b, "- %s (%s %s, stored in %s)\n",
			ing.Name, strconv.FormatFloat(ing.Quantity, 'f', -1, 64), ing.Unit, location)
	}

	b.WriteString("\nUser preferences: ")
	if preferences == "" {
		b.WriteString("No specific preferences")
	} else {
		b.WriteString(preferences)
	}
	b.WriteString("\n\n")

	b.WriteString(`Based on these ingredients and preferences, suggest 3 recipes I can make.
Only include recipes that use the provided ingredients with minimal additions, and follow the user preferences strictly.

Respond ONLY with a JSON array in exactly this form, with no text before or after it:
[
  {
    "name": "Recipe name",
    "ingredients": ["2 cups rice", "1 chicken breast"],
    "instructions": "Step 1: ... Step 2: ...",
    "prepTime": 15,
    "cookTime": 30,
    "servings": 4,
    "cuisine": "Italian",
    "dietaryInfo": ["gluten-free"]
  }
]

prepTime and cookTime are whole minutes and servings is a whole number; all three must be plain numbers, not strings.`)

	return b.String()
}

// flexInt accepts a JSON number or a numeric-leading string such as
// "20 minutes". Models do not reliably honor the number-only instruction.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexInt(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid numeric field: %s", data)
	}

	str = strings.TrimSpace(str)
	i := 0
	for i < len(str) && str[i] >= '0' && str[i] <= '9' {
		i++
	}
	if i == 0 {
		return fmt.Errorf("no leading number in %q", str)
	}
	n, err := strconv.Atoi(str[:i])
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// flexText accepts a JSON string or an array of strings joined with
// newlines, for models that return instructions as a step list.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = flexText(str)
		return nil
	}

	var steps []string
	if err := json.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("invalid text field: %s", data)
	}
	*f = flexText(strings.Join(steps, "\n"))
	return nil
}

// rawRecommendation is the tolerant decode target for one reply entry
type rawRecommendation struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions flexText `json:"instructions"`
	PrepTime     flexInt  `json:"prepTime"`
	CookTime     flexInt  `json:"cookTime"`
	Servings     flexInt  `json:"servings"`
	ImageURL     string   `json:"imageUrl"`
	Cuisine      string   `json:"cuisine"`
	DietaryInfo  []string `json:"dietaryInfo"`
}

// parseRecommendations locates the JSON block in the reply, decodes it
// and validates each entry. Entries that fail validation are dropped; if
// the block held entries and none survive, that is a *ParseError. An
// empty array is a legitimate zero-recipe result.
func parseRecommendations(reply string) ([]types.RecipeRecommendation, error) {
	block, ok := extractJSONArray(reply)
	if !ok {
		return nil, &ParseError{Reason: "no JSON array found in reply"}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(block), &entries); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("malformed JSON array: %v", err)}
	}

	if len(entries) == 0 {
		return []types.RecipeRecommendation{}, nil
	}

	recipes := make([]types.RecipeRecommendation, 0, len(entries))
	for i, entry := range entries {
		var raw rawRecommendation
		if err := json.Unmarshal(entry, &raw); err != nil {
			log.Printf("[AIService] dropping entry %d: %v", i, err)
			continue
		}

		rec := types.RecipeRecommendation{
			Name:         strings.TrimSpace(raw.Name),
			Ingredients:  raw.Ingredients,
			Instructions: strings.TrimSpace(string(raw.Instructions)),
			PrepTime:     int(raw.PrepTime),
			CookTime:     int(raw.CookTime),
			Servings:     int(raw.Servings),
			ImageURL:     raw.ImageURL,
			Cuisine:      raw.Cuisine,
			DietaryInfo:  raw.DietaryInfo,
		}
		if err := validateRecommendation(&rec); err != nil {
			log.Printf("[AIService] dropping entry %d (%q): %v", i, rec.Name, err)
			continue
		}
		recipes = append(recipes, rec)
	}

	if len(recipes) == 0 {
		return nil, &ParseError{Reason: "no entry could be validated as a recipe"}
	}

	return recipes, nil
}

// extractJSONArray returns the outermost [...] block of the text,
// tolerating markdown code fences and prose around it.
func extractJSONArray(text string) (string, bool) {
	text = strings.ReplaceAll(text, "```json", "```")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func validateRecommendation(rec *types.RecipeRecommendation) error {
	if rec.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(rec.Ingredients) == 0 {
		return fmt.Errorf("empty ingredients list")
	}
	for _, ing := range rec.Ingredients {
		if strings.TrimSpace(ing) == "" {
			return fmt.Errorf("blank ingredient")
		}
	}
	if rec.Instructions == "" {
		return fmt.Errorf("missing instructions")
	}
	if rec.PrepTime < 0 || rec.CookTime < 0 || rec.Servings < 0 {
		return fmt.Errorf("negative time or servings")
	}
	return nil
}
