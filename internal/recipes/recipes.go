// Package recipes defines the boundary between the application and the
// external recipe database. Handlers depend on the Finder interface; the
// concrete HTTP client lives in the spoonacular subpackage.
package recipes

import (
	"context"
	"encoding/json"
)

// Recipe is one search result from the external API.
//
// The application only interprets id, title, and image. Everything else the
// API returns (used ingredient counts, likes, nutrition summaries, ...) is
// kept in Extra and passed through to the templates unmodified — we mirror
// the upstream's shape rather than model it.
type Recipe struct {
	ID    int64
	Title string
	Image string
	Extra map[string]any
}

// UnmarshalJSON splits the known fields out of the payload and keeps the
// rest in Extra.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// JSON numbers decode as float64; the recipe id is integral.
	if id, ok := raw["id"].(float64); ok {
		r.ID = int64(id)
	}
	if title, ok := raw["title"].(string); ok {
		r.Title = title
	}
	if image, ok := raw["image"].(string); ok {
		r.Image = image
	}

	delete(raw, "id")
	delete(raw, "title")
	delete(raw, "image")
	r.Extra = raw

	return nil
}

// Detail is the full information payload for a single recipe, passed through
// from the upstream API without reshaping.
type Detail map[string]any

// Finder is the Recipe Proxy contract. Every method is stateless and makes
// exactly one outbound HTTP call — no retries, no caching, no rate limiting.
// A transport failure or non-2xx upstream status surfaces as
// apperror.ErrUpstream, which the HTTP layer converts to a user notice.
//
// diets is the user's stored diet tag set; it's joined with commas into the
// upstream's diet filter parameter. An empty set means unfiltered.
type Finder interface {
	// FindByIngredients searches by a comma-separated ingredient list.
	FindByIngredients(ctx context.Context, ingredients string, diets []string) ([]Recipe, error)
	// Search runs a free-text search.
	Search(ctx context.Context, query string, diets []string) ([]Recipe, error)
	// SearchByCategory searches keyed by a category name. Same contract as
	// Search — the upstream treats the category as a query term.
	SearchByCategory(ctx context.Context, category string, diets []string) ([]Recipe, error)
	// GetDetail fetches the full nutritional/info payload for one recipe.
	GetDetail(ctx context.Context, recipeID int64) (Detail, error)
}
