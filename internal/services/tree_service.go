package services

import (
	"context"

	"github.com/domlearn/backend/internal/models"
)

// TreeLevelRepository defines level reads for the admin tree
type TreeLevelRepository interface {
	// List retrieves all levels ordered by number
	//
	// "ctx" is the context for the request.
	//
	// Returns the levels and an error if any.
	List(ctx context.Context) ([]models.Level, error)
}

// TreeSectionRepository defines section reads for the admin tree
type TreeSectionRepository interface {
	// ListAll retrieves every section ordered by level and section order
	//
	// "ctx" is the context for the request.
	//
	// Returns the sections and an error if any.
	ListAll(ctx context.Context) ([]models.Section, error)
}

// TreeLessonRepository defines lesson reads for the admin tree
type TreeLessonRepository interface {
	// ListAll retrieves every lesson with decoded content ordered by section and lesson order
	//
	// "ctx" is the context for the request.
	//
	// Returns the lessons and an error if any.
	ListAll(ctx context.Context) ([]models.Lesson, error)
}

// TreeRepositories are the repositories GetTree reads through, all bound to one transaction
type TreeRepositories struct {
	Levels   TreeLevelRepository
	Sections TreeSectionRepository
	Lessons  TreeLessonRepository
}

// TreeTransactor runs reads in a read-only transaction
type TreeTransactor interface {
	// WithinReadTx calls fn with repositories bound to a read-only transaction.
	//
	// Errors returned by fn are passed through unchanged.
	WithinReadTx(ctx context.Context, fn func(repos TreeRepositories) error) error
}

// TreeService assembles the full level -> section -> lesson tree for the admin panel
type TreeService struct {
	auth Authorizer
	tx   TreeTransactor
}

// NewTreeService creates a new tree service
func NewTreeService(auth Authorizer, tx TreeTransactor) *TreeService {
	return &TreeService{
		auth: auth,
		tx:   tx,
	}
}

// GetTree returns every level with its sections and their lessons, each collection in display order.
// The three reads share one snapshot so a concurrent edit cannot leave children without parents.
// An empty store yields an empty slice.
func (s *TreeService) GetTree(ctx context.Context, token string) ([]models.LevelTree, error) {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return nil, err
	}

	var tree []models.LevelTree
	err := s.tx.WithinReadTx(ctx, func(repos TreeRepositories) error {
		levels, err := repos.Levels.List(ctx)
		if err != nil {
			return err
		}
		sections, err := repos.Sections.ListAll(ctx)
		if err != nil {
			return err
		}
		lessons, err := repos.Lessons.ListAll(ctx)
		if err != nil {
			return err
		}

		tree = AssembleTree(levels, sections, lessons)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// AssembleTree nests sections under levels and lessons under sections.
// Input order is kept inside each collection; children of unknown parents are dropped.
func AssembleTree(levels []models.Level, sections []models.Section, lessons []models.Lesson) []models.LevelTree {
	lessonsBySection := make(map[int][]models.Lesson)
	for _, lesson := range lessons {
		lessonsBySection[lesson.SectionID] = append(lessonsBySection[lesson.SectionID], lesson)
	}

	sectionsByLevel := make(map[int][]models.SectionTree)
	for _, section := range sections {
		children := lessonsBySection[section.ID]
		if children == nil {
			children = []models.Lesson{}
		}
		sectionsByLevel[section.LevelID] = append(sectionsByLevel[section.LevelID], models.SectionTree{
			Section: section,
			Lessons: children,
		})
	}

	tree := make([]models.LevelTree, 0, len(levels))
	for _, level := range levels {
		children := sectionsByLevel[level.ID]
		if children == nil {
			children = []models.SectionTree{}
		}
		tree = append(tree, models.LevelTree{Level: level, Sections: children})
	}
	return tree
}
