package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/domlearn/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockReaderService is a mock implementation of ReaderService
type mockReaderService struct {
	err   error
	paths []string
}

func (m *mockReaderService) ListLevels(ctx context.Context) ([]models.Level, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.Level{{ID: 1, Number: 1, Title: "Basics", Slug: "basics"}}, nil
}

func (m *mockReaderService) GetLevel(ctx context.Context, levelPath string) (*models.LevelDetail, error) {
	m.paths = []string{levelPath}
	if m.err != nil {
		return nil, m.err
	}
	return &models.LevelDetail{Level: models.Level{ID: 1}, Sections: []models.Section{}}, nil
}

func (m *mockReaderService) GetSection(ctx context.Context, levelPath, sectionPath string) (*models.SectionDetail, error) {
	m.paths = []string{levelPath, sectionPath}
	if m.err != nil {
		return nil, m.err
	}
	return &models.SectionDetail{Lessons: []models.LessonSummary{}}, nil
}

func (m *mockReaderService) GetLesson(ctx context.Context, levelPath, sectionPath, lessonPath string) (*models.LessonPage, error) {
	m.paths = []string{levelPath, sectionPath, lessonPath}
	if m.err != nil {
		return nil, m.err
	}
	return &models.LessonPage{Next: &models.LessonSummary{ID: 2, Slug: "grid", Order: 2}}, nil
}

func setupReaderRouter(svc *mockReaderService) chi.Router {
	h := NewReaderHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/api/v1", h.RegisterRoutes)
	return r
}

func TestReaderHandler_Routes(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expectedPaths []string
	}{
		{name: "levels", path: "/api/v1/levels"},
		{name: "level", path: "/api/v1/levels/1-basics", expectedPaths: []string{"1-basics"}},
		{name: "section", path: "/api/v1/levels/1-basics/2-layout", expectedPaths: []string{"1-basics", "2-layout"}},
		{name: "lesson", path: "/api/v1/levels/1-basics/2-layout/1-flexbox", expectedPaths: []string{"1-basics", "2-layout", "1-flexbox"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReaderService{}
			r := setupReaderRouter(svc)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedPaths, svc.paths)
		})
	}
}

func TestReaderHandler_LessonBody(t *testing.T) {
	r := setupReaderRouter(&mockReaderService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/levels/1-basics/2-layout/1-flexbox", nil))

	assert.Contains(t, w.Body.String(), `"prev":null`)
	assert.Contains(t, w.Body.String(), `"next":{"id":2,"title":"","slug":"grid","lesson_order":2}`)
}

func TestReaderHandler_Errors(t *testing.T) {
	svc := &mockReaderService{err: models.NewError(models.KindNotFound, "page %q not found", "x")}
	r := setupReaderRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/levels/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.KindNotFound, decodeError(t, w).Kind)

	svc.err = errors.New("database error")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/levels", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
