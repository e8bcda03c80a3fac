package validation

import (
	"github.com/domlearn/backend/internal/models"
)

// ValidateContent checks that every set correctIndex points into its question's answers
func ValidateContent(content models.LessonContent) error {
	for i, q := range content.Tests {
		if !q.HasValidCorrectIndex() {
			return models.NewValidationError(models.KindInvalidContent,
				"tests[%d].correctIndex %d is out of range for %d answers", i, q.CorrectIndex, len(q.Answers))
		}
	}
	return nil
}
