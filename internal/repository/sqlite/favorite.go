package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/model"
	"github.com/ahndawn/ReciPlanner/internal/repository"
)

// compile-time check that *DB implements repository.FavoriteRepository
var _ repository.FavoriteRepository = (*DB)(nil)

// AddFavorite saves a recipe reference for a user.
//
// INSERT OR IGNORE leans on the composite primary key (recipe_id, user_id):
// if the row already exists the statement is a silent no-op, which makes
// favoriting idempotent without a separate existence check. The existing
// row's title and image are never touched. RowsAffected tells us whether
// anything was actually inserted, which the caller uses to pick between the
// "saved" and "already in your favorites" notices.
func (db *DB) AddFavorite(ctx context.Context, fav *model.Favorite) (bool, error) {
	fav.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (recipe_id, user_id, title, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		fav.RecipeID,
		fav.UserID,
		fav.Title,
		fav.ImageURL,
		fav.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: saving favorite %d for user %s: %w", fav.RecipeID, fav.UserID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking favorite insert result: %w", err)
	}

	return n > 0, nil
}

// RemoveFavorite deletes a saved recipe.
// Returns apperror.ErrNotFound if the user never saved that recipe — the
// caller turns this into a non-fatal user notice, not a failure.
func (db *DB) RemoveFavorite(ctx context.Context, userID string, recipeID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE recipe_id = ? AND user_id = ?`,
		recipeID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing favorite %d for user %s: %w", recipeID, userID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking favorite delete result: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("favorite", fmt.Sprint(recipeID))
	}

	return nil
}

// ListFavorites returns all of the user's saved recipes, newest first.
func (db *DB) ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT recipe_id, user_id, title, image_url, created_at
		 FROM favorites
		 WHERE user_id = ?
		 ORDER BY created_at DESC, recipe_id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites for user %s: %w", userID, err)
	}
	defer rows.Close()

	favorites := []model.Favorite{}
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.RecipeID, &f.UserID, &f.Title, &f.ImageURL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite row: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorite rows: %w", err)
	}

	return favorites, nil
}
