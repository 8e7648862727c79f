// Package spoonacular implements recipes.Finder against the Spoonacular
// HTTP API.
//
// Three endpoints are used:
//
//	GET /recipes/findByIngredients       — ingredient search
//	GET /recipes/complexSearch           — free-text and category search
//	GET /recipes/{id}/information        — full detail for one recipe
//
// Every operation is a single outbound GET with the API key as a query
// parameter. Failures — connection errors, non-2xx statuses, bodies that
// don't decode — are wrapped as apperror.ErrUpstream so the HTTP layer can
// show a generic notice instead of leaking transport details.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/recipes"
)

// compile-time check that *Client implements recipes.Finder
var _ recipes.Finder = (*Client)(nil)

// Client is a stateless Spoonacular API client.
type Client struct {
	config Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client with the given config.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// FindByIngredients searches by a comma-separated ingredient list.
// Page size and ranking are fixed; the pantry is always ignored.
func (c *Client) FindByIngredients(ctx context.Context, ingredients string, diets []string) ([]recipes.Recipe, error) {
	params := url.Values{}
	params.Set("ingredients", ingredients)
	params.Set("number", strconv.Itoa(c.config.PageSize))
	params.Set("ranking", "1")
	params.Set("ignorePantry", "true")
	setDietFilter(params, diets)

	var results []recipes.Recipe
	if err := c.get(ctx, "findByIngredients", "/recipes/findByIngredients", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Search runs a free-text search via complexSearch.
func (c *Client) Search(ctx context.Context, query string, diets []string) ([]recipes.Recipe, error) {
	return c.complexSearch(ctx, "complexSearch", query, diets)
}

// SearchByCategory searches keyed by category. Spoonacular has no separate
// category endpoint — the category name goes into the same query parameter,
// matching the upstream's own category browsing behavior.
func (c *Client) SearchByCategory(ctx context.Context, category string, diets []string) ([]recipes.Recipe, error) {
	return c.complexSearch(ctx, "categorySearch", category, diets)
}

func (c *Client) complexSearch(ctx context.Context, op, query string, diets []string) ([]recipes.Recipe, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(c.config.PageSize))
	setDietFilter(params, diets)

	// complexSearch nests the hits under a "results" key.
	var body struct {
		Results []recipes.Recipe `json:"results"`
	}
	if err := c.get(ctx, op, "/recipes/complexSearch", params, &body); err != nil {
		return nil, err
	}
	return body.Results, nil
}

// GetDetail fetches the full information payload (nutrition included) for
// one recipe. The response is passed through unmodified.
func (c *Client) GetDetail(ctx context.Context, recipeID int64) (recipes.Detail, error) {
	params := url.Values{}
	params.Set("includeNutrition", "true")

	var detail recipes.Detail
	path := fmt.Sprintf("/recipes/%d/information", recipeID)
	if err := c.get(ctx, "information", path, params, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// get performs one API call and decodes the JSON response into out.
// The API key is appended here so no call site can forget it, and it is
// kept out of every log line and error message.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	params.Set("apiKey", c.config.APIKey)

	reqURL := c.config.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("spoonacular: building %s request: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("recipe API request failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return apperror.Upstream(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("recipe API returned non-success status",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)
		return apperror.Upstream(op, fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("recipe API response did not decode",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return apperror.Upstream(op, fmt.Errorf("decoding response: %w", err))
	}

	return nil
}

// setDietFilter adds the comma-joined diet set. An empty set means
// unfiltered, so the parameter is omitted entirely rather than sent empty.
func setDietFilter(params url.Values, diets []string) {
	if len(diets) == 0 {
		return
	}
	params.Set("diet", strings.Join(diets, ","))
}
