package model

import "time"

// Favorite is a user's saved reference to an externally-sourced recipe.
//
// RecipeID is the external recipe database's numeric id, reused as-is. We keep
// only the fields needed to render the favorites list (title, image) — the full
// recipe payload is never copied locally, it's fetched from the upstream API on
// demand via /recipe-detail/{id}.
//
// Uniqueness: at most one row per (RecipeID, UserID) pair. Saving the same
// recipe twice is a no-op, and the title/image captured on first save are
// never updated afterwards.
type Favorite struct {
	RecipeID  int64     `json:"id"        db:"recipe_id"` // external recipe id
	UserID    string    `json:"-"         db:"user_id"`
	Title     string    `json:"title"     db:"title"`
	ImageURL  string    `json:"image"     db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
