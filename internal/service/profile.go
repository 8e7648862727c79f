package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/model"
	"github.com/ahndawn/ReciPlanner/internal/repository"
)

// ProfileService handles the per-user profile: dietary restrictions and
// saved favorites. Every method takes the user id explicitly — identity is
// resolved once at the HTTP boundary and passed down, never read from
// ambient state.
type ProfileService struct {
	diets     repository.DietRepository
	favorites repository.FavoriteRepository
	logger    *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(
	diets repository.DietRepository,
	favorites repository.FavoriteRepository,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		diets:     diets,
		favorites: favorites,
		logger:    logger,
	}
}

// UpdateDiets replaces the user's full diet set. Tags are trimmed and empty
// ones dropped; an empty result clears all restrictions. The replacement is
// atomic — concurrent updates for the same user resolve last-writer-wins.
func (s *ProfileService) UpdateDiets(ctx context.Context, userID string, diets []string) error {
	cleaned := make([]string, 0, len(diets))
	for _, diet := range diets {
		if diet = strings.TrimSpace(diet); diet != "" {
			cleaned = append(cleaned, diet)
		}
	}

	if err := s.diets.ReplaceDiets(ctx, userID, cleaned); err != nil {
		s.logger.Error("failed to replace diets",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("replacing diets: %w", err)
	}

	s.logger.Info("dietary restrictions updated",
		slog.String("userID", userID),
		slog.Int("count", len(cleaned)),
	)

	return nil
}

// Diets returns the user's diet tags.
func (s *ProfileService) Diets(ctx context.Context, userID string) ([]string, error) {
	diets, err := s.diets.ListDiets(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list diets",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing diets: %w", err)
	}
	return diets, nil
}

// SaveFavorite records a recipe reference for the user. Saving a recipe
// that's already saved is a no-op; the bool reports whether this call
// actually added it (the handler picks the flash message from it).
func (s *ProfileService) SaveFavorite(ctx context.Context, userID string, recipeID int64, title, imageURL string) (bool, error) {
	if recipeID <= 0 {
		return false, apperror.ValidationFailed("id", "recipe id is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return false, apperror.ValidationFailed("title", "recipe title is required")
	}

	fav := &model.Favorite{
		RecipeID: recipeID,
		UserID:   userID,
		Title:    title,
		ImageURL: imageURL,
	}
	inserted, err := s.favorites.AddFavorite(ctx, fav)
	if err != nil {
		s.logger.Error("failed to save favorite",
			slog.String("userID", userID),
			slog.Int64("recipeID", recipeID),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("saving favorite: %w", err)
	}

	if inserted {
		s.logger.Info("favorite saved",
			slog.String("userID", userID),
			slog.Int64("recipeID", recipeID),
		)
	}

	return inserted, nil
}

// RemoveFavorite deletes a saved recipe. Returns apperror.ErrNotFound when
// the user never saved it — a user-visible notice, not a failure.
func (s *ProfileService) RemoveFavorite(ctx context.Context, userID string, recipeID int64) error {
	if recipeID <= 0 {
		return apperror.ValidationFailed("id", "recipe id is required")
	}

	if err := s.favorites.RemoveFavorite(ctx, userID, recipeID); err != nil {
		return err
	}

	s.logger.Info("favorite removed",
		slog.String("userID", userID),
		slog.Int64("recipeID", recipeID),
	)
	return nil
}

// Favorites returns all of the user's saved recipes.
func (s *ProfileService) Favorites(ctx context.Context, userID string) ([]model.Favorite, error) {
	favorites, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list favorites",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	return favorites, nil
}
