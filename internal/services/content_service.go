package services

import (
	"context"
	"strings"

	"github.com/domlearn/backend/internal/models"
	"github.com/domlearn/backend/internal/ordering"
	"github.com/domlearn/backend/internal/validation"
	"go.uber.org/zap"
)

// ContentLevelRepository defines the level access content writes need
type ContentLevelRepository interface {
	// LockByID locks a level row until the transaction ends
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the level.
	//
	// Returns a NotFound error if the level does not exist.
	LockByID(ctx context.Context, id int) error
}

// ContentSectionRepository defines the section access content writes need
type ContentSectionRepository interface {
	// LockByID retrieves a section and locks its row until the transaction ends
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the section.
	//
	// Returns the section or a NotFound error.
	LockByID(ctx context.Context, id int) (*models.Section, error)
	// Positions retrieves the order values of a level's sections
	//
	// "ctx" is the context for the request.
	// "levelID" is the ID of the level.
	//
	// Returns the positions and an error if any.
	Positions(ctx context.Context, levelID int) ([]ordering.Position, error)
	// FindIDBySlug finds the section of a level using a slug
	//
	// "ctx" is the context for the request.
	// "levelID" is the ID of the level.
	// "slug" is the slug to look up.
	//
	// Returns the section ID, whether it was found and an error if any.
	FindIDBySlug(ctx context.Context, levelID int, slug string) (int, bool, error)
	// Create creates a new section
	//
	// "ctx" is the context for the request.
	// "section" is the section to create.
	//
	// Returns the ID of the new section and an error if any.
	Create(ctx context.Context, section *models.Section) (int, error)
	// Update updates a section
	//
	// "ctx" is the context for the request.
	// "section" is the section to update.
	//
	// Returns an error if any.
	Update(ctx context.Context, section *models.Section) error
	// UpdateOrder sets the order of a section inside a level
	//
	// "ctx" is the context for the request.
	// "levelID" is the ID of the level the section belongs to.
	// "id" is the ID of the section.
	// "order" is the new order value.
	//
	// Returns an error if any.
	UpdateOrder(ctx context.Context, levelID, id, order int) error
	// Delete deletes a section together with its lessons
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the section.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
}

// ContentLessonRepository defines the lesson access content writes need
type ContentLessonRepository interface {
	// LockByID retrieves a lesson and locks its row until the transaction ends
	LockByID(ctx context.Context, id int) (*models.Lesson, error)
	// IDsBySection retrieves the IDs of a section's lessons
	IDsBySection(ctx context.Context, sectionID int) ([]int, error)
	// Positions retrieves the order values of a section's lessons
	Positions(ctx context.Context, sectionID int) ([]ordering.Position, error)
	// FindIDBySlug finds the lesson of a section using a slug
	FindIDBySlug(ctx context.Context, sectionID int, slug string) (int, bool, error)
	// Create creates a new lesson and returns its ID
	Create(ctx context.Context, lesson *models.Lesson) (int, error)
	// Update updates a lesson
	Update(ctx context.Context, lesson *models.Lesson) error
	// UpdateOrder sets the order of a lesson inside a section
	UpdateOrder(ctx context.Context, sectionID, id, order int) error
	// Delete deletes a lesson
	Delete(ctx context.Context, id int) error
}

// TxRepositories are the repositories bound to one transaction
type TxRepositories struct {
	Levels   ContentLevelRepository
	Sections ContentSectionRepository
	Lessons  ContentLessonRepository
}

// Transactor runs a unit of work in a single transaction
type Transactor interface {
	// WithinTx commits if fn returns nil and rolls back otherwise
	WithinTx(ctx context.Context, fn func(repos TxRepositories) error) error
}

// Authorizer checks the admin capability token
type Authorizer interface {
	// Authorize returns an Unauthorized error unless token is a valid admin capability
	Authorize(ctx context.Context, token string) error
}

// MediaReleaser removes the media owned by a lesson
type MediaReleaser interface {
	// Release removes the lesson's media directory; releasing a lesson without media is not an error
	Release(ctx context.Context, lessonID int) error
}

// ContentService handles admin writes to the level, section and lesson hierarchy
type ContentService struct {
	tx     Transactor
	auth   Authorizer
	media  MediaReleaser
	logger *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(tx Transactor, auth Authorizer, media MediaReleaser, logger *zap.Logger) *ContentService {
	return &ContentService{
		tx:     tx,
		auth:   auth,
		media:  media,
		logger: logger,
	}
}

// SaveSection creates a section when req.ID is nil and updates it otherwise.
// Changing LevelID moves the section: it is placed in the new level and the old level is compacted.
//
// Returns the ID of the saved section.
func (s *ContentService) SaveSection(ctx context.Context, token string, req models.SaveSectionRequest) (int, error) {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return 0, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateSaveShape(req.ID, "level_id", req.LevelID, req.Title, req.Slug); err != nil {
		return 0, err
	}
	if err := validation.ValidateSlug(req.Slug); err != nil {
		return 0, err
	}

	var savedID int
	err := s.tx.WithinTx(ctx, func(repos TxRepositories) error {
		section := &models.Section{LevelID: req.LevelID, Title: req.Title, Slug: req.Slug}
		sourceLevelID := req.LevelID
		if req.ID != nil {
			current, err := repos.Sections.LockByID(ctx, *req.ID)
			if err != nil {
				return err
			}
			section.ID = current.ID
			sourceLevelID = current.LevelID
		}

		for _, levelID := range lockOrder(req.LevelID, sourceLevelID) {
			if err := repos.Levels.LockByID(ctx, levelID); err != nil {
				return err
			}
		}

		if err := validation.CheckUnique(ctx, repos.Sections, req.LevelID, req.Slug, section.ID); err != nil {
			return err
		}

		siblings, err := repos.Sections.Positions(ctx, req.LevelID)
		if err != nil {
			return err
		}

		switch {
		case req.ID == nil:
			if section.Order, err = ordering.AssignInsert(siblings, req.Order); err != nil {
				return err
			}
			savedID, err = repos.Sections.Create(ctx, section)
			return err

		case sourceLevelID == req.LevelID:
			if section.Order, err = ordering.AssignUpdate(siblings, section.ID, req.Order); err != nil {
				return err
			}
			savedID = section.ID
			return repos.Sections.Update(ctx, section)

		default:
			if section.Order, err = ordering.AssignInsert(siblings, req.Order); err != nil {
				return err
			}
			savedID = section.ID
			if err := repos.Sections.Update(ctx, section); err != nil {
				return err
			}
			return compactSections(ctx, repos.Sections, sourceLevelID)
		}
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("section saved",
		zap.Int("section_id", savedID),
		zap.Int("level_id", req.LevelID),
		zap.Bool("created", req.ID == nil),
	)
	return savedID, nil
}

// DeleteSection deletes a section with all of its lessons, compacts the level,
// and then releases the media of every deleted lesson.
func (s *ContentService) DeleteSection(ctx context.Context, token string, id int) error {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return err
	}
	if err := validation.PositiveID("id", id); err != nil {
		return err
	}

	var lessonIDs []int
	err := s.tx.WithinTx(ctx, func(repos TxRepositories) error {
		section, err := repos.Sections.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Levels.LockByID(ctx, section.LevelID); err != nil {
			return err
		}

		if lessonIDs, err = repos.Lessons.IDsBySection(ctx, id); err != nil {
			return err
		}
		if err := repos.Sections.Delete(ctx, id); err != nil {
			return err
		}
		return compactSections(ctx, repos.Sections, section.LevelID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("section deleted", zap.Int("section_id", id), zap.Ints("lesson_ids", lessonIDs))
	for _, lessonID := range lessonIDs {
		s.releaseMedia(ctx, lessonID)
	}
	return nil
}

// ReorderSections assigns 1..N to the level's sections in the order of ids.
// Sections of the level missing from ids keep their order value.
func (s *ContentService) ReorderSections(ctx context.Context, token string, levelID int, ids []int) error {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return err
	}
	if err := validation.PositiveID("level_id", levelID); err != nil {
		return err
	}
	positions, err := ordering.Renumber(ids)
	if err != nil {
		return err
	}

	var omitted []int
	err = s.tx.WithinTx(ctx, func(repos TxRepositories) error {
		if err := repos.Levels.LockByID(ctx, levelID); err != nil {
			return err
		}
		siblings, err := repos.Sections.Positions(ctx, levelID)
		if err != nil {
			return err
		}

		var foreign []int
		if foreign, omitted = ordering.Membership(siblings, ids); len(foreign) > 0 {
			return models.NewValidationError(models.KindInvalidOrder,
				"sections %v do not belong to level %d", foreign, levelID)
		}

		for _, p := range positions {
			if err := repos.Sections.UpdateOrder(ctx, levelID, p.ID, p.Order); err != nil {
				return models.WrapError(models.KindTransactionFailure, err, "failed to reorder sections")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(omitted) > 0 {
		s.logger.Warn("partial section reorder, omitted sections keep their order",
			zap.Int("level_id", levelID),
			zap.Ints("omitted_ids", omitted),
		)
	}
	return nil
}

// SaveLesson creates a lesson when req.ID is nil and updates it otherwise.
// Changing SectionID moves the lesson: it is placed in the new section and the old section is compacted.
//
// Returns the ID of the saved lesson.
func (s *ContentService) SaveLesson(ctx context.Context, token string, req models.SaveLessonRequest) (int, error) {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return 0, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateSaveShape(req.ID, "section_id", req.SectionID, req.Title, req.Slug); err != nil {
		return 0, err
	}
	if err := validation.ValidateSlug(req.Slug); err != nil {
		return 0, err
	}

	var content models.LessonContent
	if req.Content != nil {
		content = *req.Content
	}
	content.Normalize()
	if err := validation.ValidateContent(content); err != nil {
		return 0, err
	}

	var savedID int
	err := s.tx.WithinTx(ctx, func(repos TxRepositories) error {
		lesson := &models.Lesson{
			SectionID:   req.SectionID,
			Title:       req.Title,
			Slug:        req.Slug,
			IsPublished: req.IsPublished,
			Content:     content,
		}
		sourceSectionID := req.SectionID
		if req.ID != nil {
			current, err := repos.Lessons.LockByID(ctx, *req.ID)
			if err != nil {
				return err
			}
			lesson.ID = current.ID
			sourceSectionID = current.SectionID
		}

		for _, sectionID := range lockOrder(req.SectionID, sourceSectionID) {
			if _, err := repos.Sections.LockByID(ctx, sectionID); err != nil {
				return err
			}
		}

		if err := validation.CheckUnique(ctx, repos.Lessons, req.SectionID, req.Slug, lesson.ID); err != nil {
			return err
		}

		siblings, err := repos.Lessons.Positions(ctx, req.SectionID)
		if err != nil {
			return err
		}

		switch {
		case req.ID == nil:
			if lesson.Order, err = ordering.AssignInsert(siblings, req.Order); err != nil {
				return err
			}
			savedID, err = repos.Lessons.Create(ctx, lesson)
			return err

		case sourceSectionID == req.SectionID:
			if lesson.Order, err = ordering.AssignUpdate(siblings, lesson.ID, req.Order); err != nil {
				return err
			}
			savedID = lesson.ID
			return repos.Lessons.Update(ctx, lesson)

		default:
			if lesson.Order, err = ordering.AssignInsert(siblings, req.Order); err != nil {
				return err
			}
			savedID = lesson.ID
			if err := repos.Lessons.Update(ctx, lesson); err != nil {
				return err
			}
			return compactLessons(ctx, repos.Lessons, sourceSectionID)
		}
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("lesson saved",
		zap.Int("lesson_id", savedID),
		zap.Int("section_id", req.SectionID),
		zap.Bool("created", req.ID == nil),
	)
	return savedID, nil
}

// DeleteLesson deletes a lesson, compacts its section and then releases its media
func (s *ContentService) DeleteLesson(ctx context.Context, token string, id int) error {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return err
	}
	if err := validation.PositiveID("id", id); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(repos TxRepositories) error {
		lesson, err := repos.Lessons.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := repos.Sections.LockByID(ctx, lesson.SectionID); err != nil {
			return err
		}

		if err := repos.Lessons.Delete(ctx, id); err != nil {
			return err
		}
		return compactLessons(ctx, repos.Lessons, lesson.SectionID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("lesson deleted", zap.Int("lesson_id", id))
	s.releaseMedia(ctx, id)
	return nil
}

// ReorderLessons assigns 1..N to the section's lessons in the order of ids.
// Lessons of the section missing from ids keep their order value.
func (s *ContentService) ReorderLessons(ctx context.Context, token string, sectionID int, ids []int) error {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return err
	}
	if err := validation.PositiveID("section_id", sectionID); err != nil {
		return err
	}
	positions, err := ordering.Renumber(ids)
	if err != nil {
		return err
	}

	var omitted []int
	err = s.tx.WithinTx(ctx, func(repos TxRepositories) error {
		if _, err := repos.Sections.LockByID(ctx, sectionID); err != nil {
			return err
		}
		siblings, err := repos.Lessons.Positions(ctx, sectionID)
		if err != nil {
			return err
		}

		var foreign []int
		if foreign, omitted = ordering.Membership(siblings, ids); len(foreign) > 0 {
			return models.NewValidationError(models.KindInvalidOrder,
				"lessons %v do not belong to section %d", foreign, sectionID)
		}

		for _, p := range positions {
			if err := repos.Lessons.UpdateOrder(ctx, sectionID, p.ID, p.Order); err != nil {
				return models.WrapError(models.KindTransactionFailure, err, "failed to reorder lessons")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(omitted) > 0 {
		s.logger.Warn("partial lesson reorder, omitted lessons keep their order",
			zap.Int("section_id", sectionID),
			zap.Ints("omitted_ids", omitted),
		)
	}
	return nil
}

// releaseMedia is best-effort: the row is already gone, an orphaned directory is left for the sweeper
func (s *ContentService) releaseMedia(ctx context.Context, lessonID int) {
	if err := s.media.Release(ctx, lessonID); err != nil {
		s.logger.Warn("failed to release lesson media",
			zap.Int("lesson_id", lessonID),
			zap.Error(err),
		)
	}
}

func validateSaveShape(id *int, parentName string, parentID int, title, slug string) error {
	if id != nil {
		if err := validation.PositiveID("id", *id); err != nil {
			return err
		}
	}
	if err := validation.PositiveID(parentName, parentID); err != nil {
		return err
	}
	return validation.Required("title", title, "slug", slug)
}

// lockOrder returns the distinct scope ids in ascending order, so concurrent moves lock parents in the same order
func lockOrder(target, source int) []int {
	switch {
	case target == source:
		return []int{target}
	case target < source:
		return []int{target, source}
	default:
		return []int{source, target}
	}
}

func compactSections(ctx context.Context, repo ContentSectionRepository, levelID int) error {
	siblings, err := repo.Positions(ctx, levelID)
	if err != nil {
		return err
	}
	for _, p := range ordering.Compact(siblings) {
		if err := repo.UpdateOrder(ctx, levelID, p.ID, p.Order); err != nil {
			return models.WrapError(models.KindTransactionFailure, err, "failed to compact sections")
		}
	}
	return nil
}

func compactLessons(ctx context.Context, repo ContentLessonRepository, sectionID int) error {
	siblings, err := repo.Positions(ctx, sectionID)
	if err != nil {
		return err
	}
	for _, p := range ordering.Compact(siblings) {
		if err := repo.UpdateOrder(ctx, sectionID, p.ID, p.Order); err != nil {
			return models.WrapError(models.KindTransactionFailure, err, "failed to compact lessons")
		}
	}
	return nil
}
