package spoonacular

import "time"

// Config holds the configuration for the Spoonacular client.
type Config struct {
	// BaseURL is the API root. Overridden in tests to point at a local
	// httptest server.
	BaseURL string
	// APIKey is the secret key sent as the apiKey query parameter on every
	// call. It is never logged.
	APIKey string
	// Timeout bounds each outbound call; the request context can cancel
	// earlier.
	Timeout time.Duration
	// PageSize is the fixed number of results requested per search.
	PageSize int
}

// DefaultConfig provides the production defaults. Only the API key has no
// sensible default — it comes from the environment.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:  "https://api.spoonacular.com",
		APIKey:   apiKey,
		Timeout:  15 * time.Second,
		PageSize: 50,
	}
}
