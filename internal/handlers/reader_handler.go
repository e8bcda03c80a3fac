package handlers

import (
	"context"
	"net/http"

	"github.com/domlearn/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReaderService is the interface that wraps the public, read-only content pages.
//
// Path parameters have the form "{number}-{slug}" and unknown or malformed paths
// are returned as a NotFound error.
type ReaderService interface {
	// Method ListLevels retrieves all levels ordered by number.
	ListLevels(ctx context.Context) ([]models.Level, error)
	// Method GetLevel retrieves a level with its sections.
	GetLevel(ctx context.Context, levelPath string) (*models.LevelDetail, error)
	// Method GetSection retrieves a section with its published lessons.
	GetSection(ctx context.Context, levelPath, sectionPath string) (*models.SectionDetail, error)
	// Method GetLesson retrieves a published lesson with its published neighbours.
	GetLesson(ctx context.Context, levelPath, sectionPath, lessonPath string) (*models.LessonPage, error)
}

// ReaderHandler handles HTTP requests of the public reader
type ReaderHandler struct {
	BaseHandler
	service ReaderService
}

// NewReaderHandler creates a new reader handler
func NewReaderHandler(svc ReaderService, logger *zap.Logger) *ReaderHandler {
	return &ReaderHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all reader handler routes
func (h *ReaderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/levels", func(r chi.Router) {
		r.Get("/", h.ListLevels)
		r.Get("/{level}", h.GetLevel)
		r.Get("/{level}/{section}", h.GetSection)
		r.Get("/{level}/{section}/{lesson}", h.GetLesson)
	})
}

// ListLevels handles GET /api/v1/levels
// @Summary Get levels
// @Description Get all levels ordered by number
// @Tags reader
// @Produce json
// @Success 200 {array} models.Level
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/levels [get]
func (h *ReaderHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.service.ListLevels(r.Context())
	if err != nil {
		h.RespondAppError(w, r, "get levels", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, levels)
}

// GetLevel handles GET /api/v1/levels/{level}
// @Summary Get level
// @Description Get a level with its sections
// @Tags reader
// @Produce json
// @Param level path string true "Level path, {number}-{slug}"
// @Success 200 {object} models.LevelDetail
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/levels/{level} [get]
func (h *ReaderHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	level, err := h.service.GetLevel(r.Context(), chi.URLParam(r, "level"))
	if err != nil {
		h.RespondAppError(w, r, "get level", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, level)
}

// GetSection handles GET /api/v1/levels/{level}/{section}
// @Summary Get section
// @Description Get a section with its published lessons
// @Tags reader
// @Produce json
// @Param level path string true "Level path, {number}-{slug}"
// @Param section path string true "Section path, {section_order}-{slug}"
// @Success 200 {object} models.SectionDetail
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/levels/{level}/{section} [get]
func (h *ReaderHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.service.GetSection(r.Context(), chi.URLParam(r, "level"), chi.URLParam(r, "section"))
	if err != nil {
		h.RespondAppError(w, r, "get section", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, section)
}

// GetLesson handles GET /api/v1/levels/{level}/{section}/{lesson}
// @Summary Get lesson
// @Description Get a published lesson with its content and the previous and next published lessons
// @Tags reader
// @Produce json
// @Param level path string true "Level path, {number}-{slug}"
// @Param section path string true "Section path, {section_order}-{slug}"
// @Param lesson path string true "Lesson path, {lesson_order}-{slug}"
// @Success 200 {object} models.LessonPage
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/levels/{level}/{section}/{lesson} [get]
func (h *ReaderHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.service.GetLesson(r.Context(), chi.URLParam(r, "level"), chi.URLParam(r, "section"), chi.URLParam(r, "lesson"))
	if err != nil {
		h.RespondAppError(w, r, "get lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}
