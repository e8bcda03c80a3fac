package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/domlearn/backend/internal/models"
	"github.com/domlearn/backend/internal/ordering"
)

type sectionRepository struct {
	db Querier
}

// NewSectionRepository creates a new section repository on a *sql.DB or *sql.Tx
func NewSectionRepository(db Querier) *sectionRepository {
	return &sectionRepository{
		db: db,
	}
}

const sectionColumns = `id, level_id, title, slug, section_order`

func scanSection(row interface{ Scan(...any) error }, s *models.Section) error {
	return row.Scan(&s.ID, &s.LevelID, &s.Title, &s.Slug, &s.Order)
}

// ListAll retrieves every section ordered by level and section_order
func (r *sectionRepository) ListAll(ctx context.Context) ([]models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections ORDER BY level_id, section_order`
	return r.list(ctx, query)
}

// ListByLevel retrieves the sections of a level ordered by section_order
func (r *sectionRepository) ListByLevel(ctx context.Context, levelID int) ([]models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE level_id = ? ORDER BY section_order`
	return r.list(ctx, query, levelID)
}

func (r *sectionRepository) list(ctx context.Context, query string, args ...any) ([]models.Section, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	sections := make([]models.Section, 0)
	for rows.Next() {
		var section models.Section
		if err := scanSection(rows, &section); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sections, nil
}

// GetByOrderAndSlug retrieves a section of a level by its public path segment
func (r *sectionRepository) GetByOrderAndSlug(ctx context.Context, levelID, order int, slug string) (*models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE level_id = ? AND section_order = ? AND slug = ? LIMIT 1`

	var section models.Section
	err := scanSection(r.db.QueryRowContext(ctx, query, levelID, order, slug), &section)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewError(models.KindNotFound, "section %d-%s not found", order, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	return &section, nil
}

// LockByID retrieves a section and locks its row for the rest of the transaction
func (r *sectionRepository) LockByID(ctx context.Context, id int) (*models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = ? FOR UPDATE`

	var section models.Section
	err := scanSection(r.db.QueryRowContext(ctx, query, id), &section)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundError("section", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock section: %w", err)
	}

	return &section, nil
}

// Positions retrieves the order values of a level's sections
func (r *sectionRepository) Positions(ctx context.Context, levelID int) ([]ordering.Position, error) {
	query := `SELECT id, section_order FROM sections WHERE level_id = ? ORDER BY section_order`
	return queryPositions(ctx, r.db, query, levelID)
}

// FindIDBySlug returns the id of the section of a level using slug
func (r *sectionRepository) FindIDBySlug(ctx context.Context, levelID int, slug string) (int, bool, error) {
	query := `SELECT id FROM sections WHERE level_id = ? AND slug = ? LIMIT 1`
	return findIDBySlug(ctx, r.db, query, levelID, slug)
}

// Create inserts a new section and returns its id
func (r *sectionRepository) Create(ctx context.Context, section *models.Section) (int, error) {
	query := `
		INSERT INTO sections (level_id, title, slug, section_order)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, section.LevelID, section.Title, section.Slug, section.Order)
	if err != nil {
		return 0, mapWriteError(err, "create section")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

// Update writes every column of an existing section
func (r *sectionRepository) Update(ctx context.Context, section *models.Section) error {
	query := `
		UPDATE sections
		SET level_id = ?, title = ?, slug = ?, section_order = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, section.LevelID, section.Title, section.Slug, section.Order, section.ID); err != nil {
		return mapWriteError(err, "update section")
	}

	return nil
}

// UpdateOrder sets section_order of a section that belongs to levelID
func (r *sectionRepository) UpdateOrder(ctx context.Context, levelID, id, order int) error {
	query := `UPDATE sections SET section_order = ? WHERE id = ? AND level_id = ?`

	if _, err := r.db.ExecContext(ctx, query, order, id, levelID); err != nil {
		return fmt.Errorf("failed to update section order: %w", err)
	}

	return nil
}

// Delete removes a section; its lessons are removed by the foreign key cascade
func (r *sectionRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM sections WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFoundError("section", id)
	}

	return nil
}

func queryPositions(ctx context.Context, db Querier, query string, scopeID int) ([]ordering.Position, error) {
	rows, err := db.QueryContext(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]ordering.Position, 0)
	for rows.Next() {
		var p ordering.Position
		if err := rows.Scan(&p.ID, &p.Order); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return positions, nil
}

func findIDBySlug(ctx context.Context, db Querier, query string, scopeID int, slug string) (int, bool, error) {
	var id int
	err := db.QueryRowContext(ctx, query, scopeID, slug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up slug: %w", err)
	}
	return id, true, nil
}
