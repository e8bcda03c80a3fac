package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/domlearn/backend/internal/models"
)

type levelRepository struct {
	db Querier
}

// NewLevelRepository creates a new level repository on a *sql.DB or *sql.Tx
func NewLevelRepository(db Querier) *levelRepository {
	return &levelRepository{
		db: db,
	}
}

// List retrieves all levels ordered by number
func (r *levelRepository) List(ctx context.Context) ([]models.Level, error) {
	query := `
		SELECT id, number, title, slug
		FROM levels
		ORDER BY number
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels: %w", err)
	}
	defer rows.Close()

	levels := make([]models.Level, 0)
	for rows.Next() {
		var level models.Level
		if err := rows.Scan(&level.ID, &level.Number, &level.Title, &level.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return levels, nil
}

// GetByNumberAndSlug retrieves a level by its public path segment
func (r *levelRepository) GetByNumberAndSlug(ctx context.Context, number int, slug string) (*models.Level, error) {
	query := `
		SELECT id, number, title, slug
		FROM levels
		WHERE number = ? AND slug = ?
		LIMIT 1
	`

	var level models.Level
	err := r.db.QueryRowContext(ctx, query, number, slug).Scan(&level.ID, &level.Number, &level.Title, &level.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewError(models.KindNotFound, "level %d-%s not found", number, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level: %w", err)
	}

	return &level, nil
}

// LockByID locks the level row for the rest of the transaction.
// Writes to a level's sections take this lock first so they serialize.
func (r *levelRepository) LockByID(ctx context.Context, id int) error {
	query := `SELECT id FROM levels WHERE id = ? FOR UPDATE`

	var locked int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFoundError("level", id)
	}
	if err != nil {
		return fmt.Errorf("failed to lock level: %w", err)
	}

	return nil
}
