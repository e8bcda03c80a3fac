package models

// Lesson represents a lesson inside a section
type Lesson struct {
	ID          int           `json:"id"`
	SectionID   int           `json:"section_id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Order       int           `json:"lesson_order"`
	IsPublished bool          `json:"is_published"`
	Content     LessonContent `json:"content"`
}

// LessonSummary represents a lesson without content in list responses
type LessonSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Order int    `json:"lesson_order"`
}

// LessonPage represents a published lesson with its neighbours for the public reader
type LessonPage struct {
	Level   Level          `json:"level"`
	Section Section        `json:"section"`
	Lesson  Lesson         `json:"lesson"`
	Prev    *LessonSummary `json:"prev"`
	Next    *LessonSummary `json:"next"`
}

// SaveLessonRequest represents a request to create or update a lesson.
//
// ID selects the mode: nil creates a new lesson, non-nil updates an existing one.
type SaveLessonRequest struct {
	ID          *int           `json:"id,omitempty" example:"7"`
	SectionID   int            `json:"section_id" example:"3"`
	Title       string         `json:"title" example:"Flexbox basics"`
	Slug        string         `json:"slug" example:"flexbox-basics"`
	Order       *int           `json:"lesson_order,omitempty" example:"1"`
	IsPublished bool           `json:"is_published" example:"true"`
	Content     *LessonContent `json:"content,omitempty"`
}

// ReorderLessonsRequest represents a drag-and-drop reorder of a section's lessons
type ReorderLessonsRequest struct {
	SectionID int   `json:"section_id" example:"3"`
	IDs       []int `json:"ids"`
}
