// Package repository declares the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
// Services receive these interfaces, never a concrete *sqlite.DB, so tests
// can substitute in-memory fakes and the backing store can change without
// touching business logic.
package repository

import (
	"context"

	"github.com/ahndawn/ReciPlanner/internal/model"
)

// UserRepository persists account records.
type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict if the
	// username is already taken.
	Create(ctx context.Context, user *model.User) error
	// GetByID returns apperror.ErrNotFound if no user has that id.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByUsername returns apperror.ErrNotFound if no user has that
	// username. Lookup is case-sensitive.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// UpsertGitHub inserts or updates a user keyed by their GitHub id.
	// Used only by the optional OAuth sign-in flow.
	UpsertGitHub(ctx context.Context, user *model.User) error
}

// DietRepository persists per-user dietary restriction tags.
type DietRepository interface {
	// ReplaceDiets atomically swaps the user's full diet set: every existing
	// row is deleted and one row inserted per tag, in a single transaction.
	// An empty slice clears all restrictions.
	ReplaceDiets(ctx context.Context, userID string, diets []string) error
	// ListDiets returns the user's diet tags. Order is not significant.
	ListDiets(ctx context.Context, userID string) ([]string, error)
}

// FavoriteRepository persists saved recipes.
type FavoriteRepository interface {
	// AddFavorite saves a recipe reference. Saving an already-saved recipe
	// is a no-op; the bool reports whether a row was actually inserted.
	AddFavorite(ctx context.Context, fav *model.Favorite) (bool, error)
	// RemoveFavorite deletes the row. Returns apperror.ErrNotFound if the
	// user never saved that recipe.
	RemoveFavorite(ctx context.Context, userID string, recipeID int64) error
	// ListFavorites returns all of the user's saved recipes.
	ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error)
}
