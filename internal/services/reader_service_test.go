package services

import (
	"context"
	"errors"
	"testing"

	"github.com/domlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockReaderRepository is a mock implementation of the reader repositories
type mockReaderRepository struct {
	levels   []models.Level
	sections []models.Section
	lessons  []models.Lesson
	err      error
}

func (m *mockReaderRepository) List(ctx context.Context) ([]models.Level, error) {
	return m.levels, m.err
}

func (m *mockReaderRepository) GetByNumberAndSlug(ctx context.Context, number int, slug string) (*models.Level, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, l := range m.levels {
		if l.Number == number && l.Slug == slug {
			return &l, nil
		}
	}
	return nil, models.NewError(models.KindNotFound, "level not found")
}

func (m *mockReaderRepository) ListByLevel(ctx context.Context, levelID int) ([]models.Section, error) {
	out := make([]models.Section, 0)
	for _, s := range m.sections {
		if s.LevelID == levelID {
			out = append(out, s)
		}
	}
	return out, m.err
}

func (m *mockReaderRepository) GetByOrderAndSlug(ctx context.Context, levelID, order int, slug string) (*models.Section, error) {
	for _, s := range m.sections {
		if s.LevelID == levelID && s.Order == order && s.Slug == slug {
			return &s, nil
		}
	}
	return nil, models.NewError(models.KindNotFound, "section not found")
}

func (m *mockReaderRepository) published(sectionID int) []models.Lesson {
	out := make([]models.Lesson, 0)
	for _, l := range m.lessons {
		if l.SectionID == sectionID && l.IsPublished {
			out = append(out, l)
		}
	}
	return out
}

func summary(l models.Lesson) *models.LessonSummary {
	return &models.LessonSummary{ID: l.ID, Title: l.Title, Slug: l.Slug, Order: l.Order}
}

func (m *mockReaderRepository) ListPublishedBySection(ctx context.Context, sectionID int) ([]models.LessonSummary, error) {
	out := make([]models.LessonSummary, 0)
	for _, l := range m.published(sectionID) {
		out = append(out, *summary(l))
	}
	return out, nil
}

func (m *mockReaderRepository) GetPublishedByOrderAndSlug(ctx context.Context, sectionID, order int, slug string) (*models.Lesson, error) {
	for _, l := range m.published(sectionID) {
		if l.Order == order && l.Slug == slug {
			return &l, nil
		}
	}
	return nil, models.NewError(models.KindNotFound, "lesson not found")
}

func (m *mockReaderRepository) GetPublishedNeighbours(ctx context.Context, sectionID, order int) (*models.LessonSummary, *models.LessonSummary, error) {
	var prev, next *models.LessonSummary
	for _, l := range m.published(sectionID) {
		if l.Order < order && (prev == nil || l.Order > prev.Order) {
			prev = summary(l)
		}
		if l.Order > order && (next == nil || l.Order < next.Order) {
			next = summary(l)
		}
	}
	return prev, next, nil
}

func newTestReaderService() *ReaderService {
	repo := &mockReaderRepository{
		levels:   []models.Level{{ID: 1, Number: 1, Title: "Начальный", Slug: "beginner"}},
		sections: []models.Section{{ID: 10, LevelID: 1, Title: "Азбука", Slug: "alphabet", Order: 1}},
		lessons: []models.Lesson{
			{ID: 100, SectionID: 10, Slug: "hiragana", Order: 1, IsPublished: true},
			{ID: 101, SectionID: 10, Slug: "draft", Order: 2, IsPublished: false},
			{ID: 102, SectionID: 10, Slug: "katakana", Order: 3, IsPublished: true, Content: models.LessonContent{
				Tests: []models.Question{{Question: "q", Answers: []string{"a", "b"}, CorrectIndex: 5}},
			}},
			{ID: 103, SectionID: 10, Slug: "kanji", Order: 4, IsPublished: true},
		},
	}
	return NewReaderService(repo, repo, repo)
}

func TestParsePathSegment(t *testing.T) {
	tests := []struct {
		segment       string
		expectedN     int
		expectedSlug  string
		expectedError bool
	}{
		{segment: "1-beginner", expectedN: 1, expectedSlug: "beginner"},
		{segment: "12-basic-grammar", expectedN: 12, expectedSlug: "basic-grammar"},
		{segment: "beginner", expectedError: true},
		{segment: "x-beginner", expectedError: true},
		{segment: "0-beginner", expectedError: true},
		{segment: "3-", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			n, slug, err := ParsePathSegment(tt.segment)
			if tt.expectedError {
				assert.True(t, models.IsKind(err, models.KindNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedN, n)
			assert.Equal(t, tt.expectedSlug, slug)
		})
	}
}

func TestReaderService_GetLevelAndSection(t *testing.T) {
	svc := newTestReaderService()

	level, err := svc.GetLevel(context.Background(), "1-beginner")
	require.NoError(t, err)
	assert.Len(t, level.Sections, 1)

	section, err := svc.GetSection(context.Background(), "1-beginner", "1-alphabet")
	require.NoError(t, err)
	require.Len(t, section.Lessons, 3)
	assert.Equal(t, "katakana", section.Lessons[1].Slug)

	_, err = svc.GetSection(context.Background(), "1-beginner", "2-alphabet")
	assert.True(t, models.IsKind(err, models.KindNotFound))

	_, err = svc.GetLevel(context.Background(), "2-beginner")
	assert.True(t, models.IsKind(err, models.KindNotFound))
}

func TestReaderService_GetLesson(t *testing.T) {
	svc := newTestReaderService()

	page, err := svc.GetLesson(context.Background(), "1-beginner", "1-alphabet", "3-katakana")
	require.NoError(t, err)

	require.NotNil(t, page.Prev)
	require.NotNil(t, page.Next)
	assert.Equal(t, "hiragana", page.Prev.Slug, "unpublished lessons are skipped")
	assert.Equal(t, "kanji", page.Next.Slug)
	assert.Equal(t, models.NoCorrectAnswer, page.Lesson.Content.Tests[0].CorrectIndex)

	page, err = svc.GetLesson(context.Background(), "1-beginner", "1-alphabet", "1-hiragana")
	require.NoError(t, err)
	assert.Nil(t, page.Prev)

	_, err = svc.GetLesson(context.Background(), "1-beginner", "1-alphabet", "2-draft")
	assert.True(t, models.IsKind(err, models.KindNotFound))
}

func TestReaderService_ListLevels(t *testing.T) {
	svc := newTestReaderService()
	levels, err := svc.ListLevels(context.Background())
	require.NoError(t, err)
	assert.Len(t, levels, 1)

	repo := &mockReaderRepository{err: errors.New("database error")}
	_, err = NewReaderService(repo, repo, repo).ListLevels(context.Background())
	assert.Error(t, err)
}
