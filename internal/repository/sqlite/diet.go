package sqlite

import (
	"context"
	"fmt"

	"github.com/ahndawn/ReciPlanner/internal/repository"
)

// compile-time check that *DB implements repository.DietRepository
var _ repository.DietRepository = (*DB)(nil)

// ReplaceDiets swaps the user's entire diet set inside one transaction:
// DELETE every existing row, then INSERT one row per tag. An empty slice
// clears all restrictions. There is no application-level locking — two
// concurrent replacements for the same user resolve last-writer-wins through
// SQLite's own write serialization.
func (db *DB) ReplaceDiets(ctx context.Context, userID string, diets []string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning diet replace: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM dietary_restrictions WHERE user_id = ?`, userID,
	); err != nil {
		return fmt.Errorf("sqlite: clearing diets for user %s: %w", userID, err)
	}

	for _, diet := range diets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dietary_restrictions (user_id, diet) VALUES (?, ?)`,
			userID, diet,
		); err != nil {
			return fmt.Errorf("sqlite: inserting diet %q for user %s: %w", diet, userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing diet replace: %w", err)
	}

	return nil
}

// ListDiets returns the user's diet tags. A user with no restrictions gets
// an empty (non-nil) slice.
func (db *DB) ListDiets(ctx context.Context, userID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT diet FROM dietary_restrictions WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing diets for user %s: %w", userID, err)
	}
	defer rows.Close()

	diets := []string{}
	for rows.Next() {
		var diet string
		if err := rows.Scan(&diet); err != nil {
			return nil, fmt.Errorf("sqlite: scanning diet row: %w", err)
		}
		diets = append(diets, diet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating diet rows: %w", err)
	}

	return diets, nil
}
