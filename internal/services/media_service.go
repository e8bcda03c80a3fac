package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/domlearn/backend/internal/models"
	"github.com/domlearn/backend/internal/storage"
	"github.com/domlearn/backend/internal/validation"
	"go.uber.org/zap"
)

// MaxImageSize is the largest accepted upload
const MaxImageSize = 5 << 20

// allowedImageTypes maps sniffed content types to stored file extensions
var allowedImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// Storage defines the interface for lesson media storage
type Storage interface {
	// Create creates a new file in the lesson's directory and returns a WriteCloser
	// The directory is created if it does not exist yet
	Create(lessonID int, filename string) (io.WriteCloser, error)

	// Remove deletes a single file of a lesson
	Remove(lessonID int, filename string) error

	// Release removes the lesson's whole directory
	Release(lessonID int) error

	// LessonIDs lists the lessons that own a media directory
	LessonIDs() ([]int, error)
}

// MediaLessonRepository defines the lesson lookups media operations need
type MediaLessonRepository interface {
	// Exists checks if a lesson with the given ID exists
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, id int) (bool, error)
}

// MediaService handles the lifecycle of lesson media
type MediaService struct {
	auth    Authorizer
	lessons MediaLessonRepository
	storage Storage
	baseURL string
	maxSize int64
	now     func() time.Time
	logger  *zap.Logger
}

// NewMediaService creates a new media service.
// baseURL is the public prefix the storage base path is served under (e.g. "/images").
func NewMediaService(auth Authorizer, lessons MediaLessonRepository, storage Storage, baseURL string, logger *zap.Logger) *MediaService {
	return &MediaService{
		auth:    auth,
		lessons: lessons,
		storage: storage,
		baseURL: baseURL,
		maxSize: MaxImageSize,
		now:     time.Now,
		logger:  logger,
	}
}

// StoreImage validates an uploaded image by its content and stores it in the lesson's directory.
// declaredType is the client supplied MIME type, used for logging only.
//
// Returns the public URL and the generated file name.
func (s *MediaService) StoreImage(ctx context.Context, token string, lessonID int, file io.Reader, filename, declaredType string) (*models.StoredImage, error) {
	if err := s.auth.Authorize(ctx, token); err != nil {
		return nil, err
	}
	if err := validation.PositiveID("lesson_id", lessonID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, models.NewValidationError(models.KindMissingField, "file is required")
	}

	exists, err := s.lessons.Exists(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NotFoundError("lesson", lessonID)
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, models.NewError(models.KindTooLarge, "file exceeds %d bytes", s.maxSize)
		}
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, models.NewError(models.KindTooLarge, "file exceeds %d bytes", s.maxSize)
	}
	if len(data) == 0 {
		return nil, models.NewValidationError(models.KindMissingField, "file is empty")
	}

	sniffed := http.DetectContentType(data)
	ext, ok := allowedImageTypes[sniffed]
	if !ok {
		s.logger.Info("rejected upload",
			zap.Int("lesson_id", lessonID),
			zap.String("declared_type", declaredType),
			zap.String("sniffed_type", sniffed),
		)
		return nil, models.NewError(models.KindUnsupportedType, "unsupported image type %s", sniffed)
	}

	name := storage.GenerateFileName(filename, ext, s.now())
	if err := s.write(lessonID, name, data); err != nil {
		return nil, models.WrapError(models.KindStorageFailure, err, "failed to store image")
	}

	s.logger.Info("image stored",
		zap.Int("lesson_id", lessonID),
		zap.String("filename", name),
		zap.Int("size", len(data)),
	)
	return &models.StoredImage{
		URL:      s.baseURL + "/" + storage.LessonDirName(lessonID) + "/" + name,
		Filename: name,
	}, nil
}

func (s *MediaService) write(lessonID int, name string, data []byte) error {
	w, err := s.storage.Create(lessonID, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		s.storage.Remove(lessonID, name)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := w.Close(); err != nil {
		s.storage.Remove(lessonID, name)
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Release removes every file owned by a lesson
func (s *MediaService) Release(ctx context.Context, lessonID int) error {
	if err := s.storage.Release(lessonID); err != nil {
		return models.WrapError(models.KindStorageFailure, err, "failed to release media of lesson %d", lessonID)
	}
	return nil
}

// SweepOrphans releases media directories whose lesson no longer exists.
// They are left behind when cleanup after a delete fails.
//
// Returns the number of released directories.
func (s *MediaService) SweepOrphans(ctx context.Context) (int, error) {
	ids, err := s.storage.LessonIDs()
	if err != nil {
		return 0, err
	}

	released := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return released, err
		}

		exists, err := s.lessons.Exists(ctx, id)
		if err != nil {
			return released, err
		}
		if exists {
			continue
		}

		if err := s.Release(ctx, id); err != nil {
			s.logger.Warn("failed to release orphaned media", zap.Int("lesson_id", id), zap.Error(err))
			continue
		}
		s.logger.Info("released orphaned media", zap.Int("lesson_id", id))
		released++
	}
	return released, nil
}
