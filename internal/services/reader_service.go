package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/domlearn/backend/internal/models"
)

// ReaderLevelRepository defines level reads for the public reader
type ReaderLevelRepository interface {
	// List retrieves all levels ordered by number
	List(ctx context.Context) ([]models.Level, error)
	// GetByNumberAndSlug retrieves a level by its number and slug
	GetByNumberAndSlug(ctx context.Context, number int, slug string) (*models.Level, error)
}

// ReaderSectionRepository defines section reads for the public reader
type ReaderSectionRepository interface {
	// ListByLevel retrieves the sections of a level in order
	ListByLevel(ctx context.Context, levelID int) ([]models.Section, error)
	// GetByOrderAndSlug retrieves a section of a level by its order and slug
	GetByOrderAndSlug(ctx context.Context, levelID, order int, slug string) (*models.Section, error)
}

// ReaderLessonRepository defines lesson reads for the public reader.
// Only published lessons are ever returned.
type ReaderLessonRepository interface {
	// ListPublishedBySection retrieves the published lessons of a section in order
	ListPublishedBySection(ctx context.Context, sectionID int) ([]models.LessonSummary, error)
	// GetPublishedByOrderAndSlug retrieves a published lesson by its order and slug
	GetPublishedByOrderAndSlug(ctx context.Context, sectionID, order int, slug string) (*models.Lesson, error)
	// GetPublishedNeighbours retrieves the nearest published lessons around order
	GetPublishedNeighbours(ctx context.Context, sectionID, order int) (*models.LessonSummary, *models.LessonSummary, error)
}

// ReaderService resolves public paths of the form /{number}-{slug}/{order}-{slug}/{order}-{slug}
type ReaderService struct {
	levels   ReaderLevelRepository
	sections ReaderSectionRepository
	lessons  ReaderLessonRepository
}

// NewReaderService creates a new reader service
func NewReaderService(levels ReaderLevelRepository, sections ReaderSectionRepository, lessons ReaderLessonRepository) *ReaderService {
	return &ReaderService{
		levels:   levels,
		sections: sections,
		lessons:  lessons,
	}
}

// ParsePathSegment splits "{n}-{slug}" into its number and slug.
// Segments that do not have that shape are reported as NotFound.
func ParsePathSegment(segment string) (int, string, error) {
	numPart, slug, ok := strings.Cut(segment, "-")
	n, err := strconv.Atoi(numPart)
	if !ok || err != nil || n <= 0 || slug == "" {
		return 0, "", models.NewError(models.KindNotFound, "page %q not found", segment)
	}
	return n, slug, nil
}

// ListLevels returns all levels ordered by number
func (s *ReaderService) ListLevels(ctx context.Context) ([]models.Level, error) {
	return s.levels.List(ctx)
}

// GetLevel returns a level with its sections
func (s *ReaderService) GetLevel(ctx context.Context, levelPath string) (*models.LevelDetail, error) {
	level, err := s.resolveLevel(ctx, levelPath)
	if err != nil {
		return nil, err
	}

	sections, err := s.sections.ListByLevel(ctx, level.ID)
	if err != nil {
		return nil, err
	}

	return &models.LevelDetail{Level: *level, Sections: sections}, nil
}

// GetSection returns a section with its published lessons
func (s *ReaderService) GetSection(ctx context.Context, levelPath, sectionPath string) (*models.SectionDetail, error) {
	level, section, err := s.resolveSection(ctx, levelPath, sectionPath)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessons.ListPublishedBySection(ctx, section.ID)
	if err != nil {
		return nil, err
	}

	return &models.SectionDetail{Level: *level, Section: *section, Lessons: lessons}, nil
}

// GetLesson returns a published lesson with its published neighbours.
// Stored correct answers that point outside their answers are reported as unset.
func (s *ReaderService) GetLesson(ctx context.Context, levelPath, sectionPath, lessonPath string) (*models.LessonPage, error) {
	level, section, err := s.resolveSection(ctx, levelPath, sectionPath)
	if err != nil {
		return nil, err
	}

	order, slug, err := ParsePathSegment(lessonPath)
	if err != nil {
		return nil, err
	}
	lesson, err := s.lessons.GetPublishedByOrderAndSlug(ctx, section.ID, order, slug)
	if err != nil {
		return nil, err
	}
	lesson.Content = lesson.Content.ForReader()

	prev, next, err := s.lessons.GetPublishedNeighbours(ctx, section.ID, lesson.Order)
	if err != nil {
		return nil, err
	}

	return &models.LessonPage{
		Level:   *level,
		Section: *section,
		Lesson:  *lesson,
		Prev:    prev,
		Next:    next,
	}, nil
}

func (s *ReaderService) resolveLevel(ctx context.Context, levelPath string) (*models.Level, error) {
	number, slug, err := ParsePathSegment(levelPath)
	if err != nil {
		return nil, err
	}
	return s.levels.GetByNumberAndSlug(ctx, number, slug)
}

func (s *ReaderService) resolveSection(ctx context.Context, levelPath, sectionPath string) (*models.Level, *models.Section, error) {
	level, err := s.resolveLevel(ctx, levelPath)
	if err != nil {
		return nil, nil, err
	}

	order, slug, err := ParsePathSegment(sectionPath)
	if err != nil {
		return nil, nil, err
	}
	section, err := s.sections.GetByOrderAndSlug(ctx, level.ID, order, slug)
	if err != nil {
		return nil, nil, err
	}
	return level, section, nil
}
