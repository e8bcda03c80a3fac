package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/domlearn/backend/internal/auth"
	"github.com/domlearn/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// uploadMemory is the part of a multipart upload kept in memory before spilling to disk
const uploadMemory = 8 << 20

// AdminContentService is the interface that wraps the authoring operations on sections and lessons.
//
// Every method takes the capability token presented by the caller and rejects the call
// with an Unauthorized error when it is not valid.
type AdminContentService interface {
	// Method SaveSection creates a section when "req.ID" is nil and updates it otherwise.
	//
	// Returns the id of the written section.
	// Validation failures are returned as models.AppError of a validation kind and nothing is written.
	SaveSection(ctx context.Context, token string, req models.SaveSectionRequest) (int, error)
	// Method DeleteSection deletes a section with its lessons and their media.
	DeleteSection(ctx context.Context, token string, id int) error
	// Method ReorderSections renumbers the sections of a level in the order of "ids".
	//
	// Either every listed section receives its new order or none does.
	ReorderSections(ctx context.Context, token string, levelID int, ids []int) error
	// Method SaveLesson creates a lesson when "req.ID" is nil and updates it otherwise.
	//
	// Please reference SaveSection for the returned values.
	SaveLesson(ctx context.Context, token string, req models.SaveLessonRequest) (int, error)
	// Method DeleteLesson deletes a lesson and its media.
	DeleteLesson(ctx context.Context, token string, id int) error
	// Method ReorderLessons renumbers the lessons of a section in the order of "ids".
	ReorderLessons(ctx context.Context, token string, sectionID int, ids []int) error
}

// AdminTreeService is the interface that wraps the full content tree fetch
type AdminTreeService interface {
	// Method GetTree returns every level with its sections and lessons, all in display order.
	// Unpublished lessons are included.
	GetTree(ctx context.Context, token string) ([]models.LevelTree, error)
}

// AdminMediaService is the interface that wraps image upload for lessons
type AdminMediaService interface {
	// Method StoreImage validates an uploaded image and stores it in the lesson's media directory.
	//
	// "filename" is the client's file name and only shapes the stored name.
	// "declaredType" is informational; the type is sniffed from the bytes.
	StoreImage(ctx context.Context, token string, lessonID int, file io.Reader, filename, declaredType string) (*models.StoredImage, error)
}

// AdminHandler handles HTTP requests of the admin panel
type AdminHandler struct {
	BaseHandler
	content    AdminContentService
	tree       AdminTreeService
	media      AdminMediaService
	authorizer Authorizer
}

// NewAdminHandler creates a new admin handler.
// authorizer gates every admin route before the request body is read.
func NewAdminHandler(content AdminContentService, tree AdminTreeService, media AdminMediaService, authorizer Authorizer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{Logger: logger},
		content:     content,
		tree:        tree,
		media:       media,
		authorizer:  authorizer,
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuthMiddleware(h.authorizer, h.Logger))

		r.Get("/tree", h.GetTree)
		r.Route("/sections", func(r chi.Router) {
			r.Post("/save", h.SaveSection)
			r.Post("/delete", h.DeleteSection)
			r.Post("/reorder", h.ReorderSections)
		})
		r.Route("/lessons", func(r chi.Router) {
			r.Post("/save", h.SaveLesson)
			r.Post("/delete", h.DeleteLesson)
			r.Post("/reorder", h.ReorderLessons)
		})
		r.Post("/images", h.UploadImage)
	})
}

// GetTree handles GET /api/v1/admin/tree
// @Summary Get content tree
// @Description Get all levels with their sections and lessons, including unpublished lessons
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {array} models.LevelTree
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/tree [get]
func (h *AdminHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.tree.GetTree(r.Context(), auth.TokenFromRequest(r))
	if err != nil {
		h.RespondAppError(w, r, "get content tree", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tree)
}

// SaveSection handles POST /api/v1/admin/sections/save
// @Summary Create or update section
// @Description Create a section when id is omitted, update it otherwise. Changing level_id moves the section.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body models.SaveSectionRequest true "Section"
// @Success 200 {object} models.SaveResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/sections/save [post]
func (h *AdminHandler) SaveSection(w http.ResponseWriter, r *http.Request) {
	var req models.SaveSectionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondAppError(w, r, "decode section", err)
		return
	}

	id, err := h.content.SaveSection(r.Context(), auth.TokenFromRequest(r), req)
	if err != nil {
		h.RespondAppError(w, r, "save section", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.SaveResponse{OK: true, ID: id})
}

// DeleteSection handles POST /api/v1/admin/sections/delete
// @Summary Delete section
// @Description Delete a section together with its lessons and their images
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body models.DeleteRequest true "Section id"
// @Success 200 {object} models.OKResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/sections/delete [post]
func (h *AdminHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondAppError(w, r, "decode section id", err)
		return
	}

	if err := h.content.DeleteSection(r.Context(), auth.TokenFromRequest(r), req.ID); err != nil {
		h.RespondAppError(w, r, "delete section", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// ReorderSections handles POST /api/v1/admin/sections/reorder
// @Summary Reorder sections
// @Description Assign section_order 1..N to the listed sections of a level in the given order
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body models.ReorderSectionsRequest true "New order"
// @Success 200 {object} models.OKResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/sections/reorder [post]
func (h *AdminHandler) ReorderSections(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderSectionsRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondAppError(w, r, "decode section order", err)
		return
	}

	if err := h.content.ReorderSections(r.Context(), auth.TokenFromRequest(r), req.LevelID, req.IDs); err != nil {
		h.RespondAppError(w, r, "reorder sections", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// SaveLesson handles POST /api/v1/admin/lessons/save
// @Summary Create or update lesson
// @Description Create a lesson when id is omitted, update it otherwise. Changing section_id moves the lesson.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body models.SaveLessonRequest true "Lesson"
// @Success 200 {object} models.SaveResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/lessons/save [post]
func (h *AdminHandler) SaveLesson(w http.ResponseWriter, r *http.Request) {
	var req models.SaveLessonRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondAppError(w, r, "decode lesson", err)
		return
	}

	id, err := h.content.SaveLesson(r.Context(), auth.TokenFromRequest(r), req)
	if err != nil {
		h.RespondAppError(w, r, "save lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.SaveResponse{OK: true, ID: id})
}

// DeleteLesson handles POST /api/v1/admin/lessons/delete
// @Summary Delete lesson
// @Description Delete a lesson together with its images
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body models.DeleteRequest true "Lesson id"
// @Success 200 {object} models.OKResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/lessons/delete [post]
func (h *AdminHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondAppError(w, r, "decode lesson id", err)
		return
	}

	if err := h.content.DeleteLesson(r.Context(), auth.TokenFromRequest(r), req.ID); err != nil {
		h.RespondAppError(w, r, "delete lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// ReorderLessons handles POST /api/v1/admin/lessons/reorder
// @Summary Reorder lessons
// @Description Assign lesson_order 1..N to the listed lessons of a section in the given order
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body models.ReorderLessonsRequest true "New order"
// @Success 200 {object} models.OKResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/lessons/reorder [post]
func (h *AdminHandler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderLessonsRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondAppError(w, r, "decode lesson order", err)
		return
	}

	if err := h.content.ReorderLessons(r.Context(), auth.TokenFromRequest(r), req.SectionID, req.IDs); err != nil {
		h.RespondAppError(w, r, "reorder lessons", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// UploadImage handles POST /api/v1/admin/images
// @Summary Upload lesson image
// @Description Store a png, jpeg or webp image (max 5 MiB) for a lesson and return its public URL
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security AdminToken
// @Param lesson_id formData int true "Lesson ID"
// @Param file formData file true "Image file"
// @Success 200 {object} models.StoredImage
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 415 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/images [post]
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "upload too large", models.KindTooLarge)
			return
		}
		h.Logger.Info("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse multipart form", models.KindMissingField)
		return
	}
	defer r.MultipartForm.RemoveAll()

	lessonID, err := strconv.Atoi(r.FormValue("lesson_id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "lesson_id is required", models.KindMissingField)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required", models.KindMissingField)
		return
	}
	defer file.Close()

	image, err := h.media.StoreImage(r.Context(), auth.TokenFromRequest(r), lessonID, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.RespondAppError(w, r, "store image", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, image)
}
