package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/domlearn/backend/internal/models"
	"github.com/domlearn/backend/internal/ordering"
)

type lessonRepository struct {
	db Querier
}

// NewLessonRepository creates a new lesson repository on a *sql.DB or *sql.Tx
func NewLessonRepository(db Querier) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

const lessonColumns = `id, section_id, title, slug, lesson_order, is_published, content`

func scanLesson(row interface{ Scan(...any) error }, l *models.Lesson) error {
	var raw []byte
	if err := row.Scan(&l.ID, &l.SectionID, &l.Title, &l.Slug, &l.Order, &l.IsPublished, &raw); err != nil {
		return err
	}
	content, err := decodeContent(raw)
	if err != nil {
		return fmt.Errorf("lesson %d: %w", l.ID, err)
	}
	l.Content = content
	return nil
}

// ListAll retrieves every lesson with decoded content, ordered by section and lesson_order
func (r *lessonRepository) ListAll(ctx context.Context) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons ORDER BY section_id, lesson_order`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := make([]models.Lesson, 0)
	for rows.Next() {
		var lesson models.Lesson
		if err := scanLesson(rows, &lesson); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// ListPublishedBySection retrieves the published lessons of a section ordered by lesson_order
func (r *lessonRepository) ListPublishedBySection(ctx context.Context, sectionID int) ([]models.LessonSummary, error) {
	query := `
		SELECT id, title, slug, lesson_order
		FROM lessons
		WHERE section_id = ? AND is_published = 1
		ORDER BY lesson_order
	`

	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := make([]models.LessonSummary, 0)
	for rows.Next() {
		var lesson models.LessonSummary
		if err := rows.Scan(&lesson.ID, &lesson.Title, &lesson.Slug, &lesson.Order); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetPublishedByOrderAndSlug retrieves a published lesson of a section by its public path segment
func (r *lessonRepository) GetPublishedByOrderAndSlug(ctx context.Context, sectionID, order int, slug string) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons
		WHERE section_id = ? AND lesson_order = ? AND slug = ? AND is_published = 1
		LIMIT 1`

	var lesson models.Lesson
	err := scanLesson(r.db.QueryRowContext(ctx, query, sectionID, order, slug), &lesson)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewError(models.KindNotFound, "lesson %d-%s not found", order, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	return &lesson, nil
}

// GetPublishedNeighbours returns the nearest published lessons before and after order in a section.
// Either result is nil at the edge of the section.
func (r *lessonRepository) GetPublishedNeighbours(ctx context.Context, sectionID, order int) (*models.LessonSummary, *models.LessonSummary, error) {
	prevQuery := `
		SELECT id, title, slug, lesson_order
		FROM lessons
		WHERE section_id = ? AND is_published = 1 AND lesson_order < ?
		ORDER BY lesson_order DESC
		LIMIT 1
	`
	nextQuery := `
		SELECT id, title, slug, lesson_order
		FROM lessons
		WHERE section_id = ? AND is_published = 1 AND lesson_order > ?
		ORDER BY lesson_order ASC
		LIMIT 1
	`

	prev, err := r.getSummary(ctx, prevQuery, sectionID, order)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get previous lesson: %w", err)
	}
	next, err := r.getSummary(ctx, nextQuery, sectionID, order)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get next lesson: %w", err)
	}

	return prev, next, nil
}

func (r *lessonRepository) getSummary(ctx context.Context, query string, args ...any) (*models.LessonSummary, error) {
	var lesson models.LessonSummary
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&lesson.ID, &lesson.Title, &lesson.Slug, &lesson.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// LockByID retrieves a lesson and locks its row for the rest of the transaction
func (r *lessonRepository) LockByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ? FOR UPDATE`

	var lesson models.Lesson
	err := scanLesson(r.db.QueryRowContext(ctx, query, id), &lesson)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundError("lesson", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock lesson: %w", err)
	}

	return &lesson, nil
}

// Exists reports whether a lesson with the given id exists
func (r *lessonRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}

	return exists, nil
}

// IDsBySection retrieves the ids of every lesson in a section
func (r *lessonRepository) IDsBySection(ctx context.Context, sectionID int) ([]int, error) {
	query := `SELECT id FROM lessons WHERE section_id = ? ORDER BY lesson_order`

	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan lesson id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

// Positions retrieves the order values of a section's lessons
func (r *lessonRepository) Positions(ctx context.Context, sectionID int) ([]ordering.Position, error) {
	query := `SELECT id, lesson_order FROM lessons WHERE section_id = ? ORDER BY lesson_order`
	return queryPositions(ctx, r.db, query, sectionID)
}

// FindIDBySlug returns the id of the lesson of a section using slug
func (r *lessonRepository) FindIDBySlug(ctx context.Context, sectionID int, slug string) (int, bool, error) {
	query := `SELECT id FROM lessons WHERE section_id = ? AND slug = ? LIMIT 1`
	return findIDBySlug(ctx, r.db, query, sectionID, slug)
}

// Create inserts a new lesson and returns its id
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int, error) {
	content, err := encodeContent(lesson.Content)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO lessons (section_id, title, slug, lesson_order, is_published, content)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, lesson.SectionID, lesson.Title, lesson.Slug, lesson.Order, lesson.IsPublished, content)
	if err != nil {
		return 0, mapWriteError(err, "create lesson")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

// Update writes every column of an existing lesson
func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	content, err := encodeContent(lesson.Content)
	if err != nil {
		return err
	}

	query := `
		UPDATE lessons
		SET section_id = ?, title = ?, slug = ?, lesson_order = ?, is_published = ?, content = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, lesson.SectionID, lesson.Title, lesson.Slug, lesson.Order, lesson.IsPublished, content, lesson.ID); err != nil {
		return mapWriteError(err, "update lesson")
	}

	return nil
}

// UpdateOrder sets lesson_order of a lesson that belongs to sectionID
func (r *lessonRepository) UpdateOrder(ctx context.Context, sectionID, id, order int) error {
	query := `UPDATE lessons SET lesson_order = ? WHERE id = ? AND section_id = ?`

	if _, err := r.db.ExecContext(ctx, query, order, id, sectionID); err != nil {
		return fmt.Errorf("failed to update lesson order: %w", err)
	}

	return nil
}

// Delete removes a lesson
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM lessons WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFoundError("lesson", id)
	}

	return nil
}
