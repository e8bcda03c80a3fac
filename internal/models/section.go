package models

// Section represents a section inside a level
type Section struct {
	ID      int    `json:"id"`
	LevelID int    `json:"level_id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Order   int    `json:"section_order"`
}

// SectionTree represents a section with its lessons in admin tree responses
type SectionTree struct {
	Section
	Lessons []Lesson `json:"lessons"`
}

// SectionDetail represents a section with its published lessons in public reader responses
type SectionDetail struct {
	Level   Level           `json:"level"`
	Section Section         `json:"section"`
	Lessons []LessonSummary `json:"lessons"`
}

// SaveSectionRequest represents a request to create or update a section.
//
// ID selects the mode: nil creates a new section, non-nil updates an existing one.
type SaveSectionRequest struct {
	ID      *int   `json:"id,omitempty" example:"3"`
	LevelID int    `json:"level_id" example:"1"`
	Title   string `json:"title" example:"Selectors"`
	Slug    string `json:"slug" example:"selectors"`
	Order   *int   `json:"section_order,omitempty" example:"2"`
}

// ReorderSectionsRequest represents a drag-and-drop reorder of a level's sections.
//
// IDs lists the sections in their new order, which becomes 1..len(IDs).
type ReorderSectionsRequest struct {
	LevelID int   `json:"level_id" example:"1"`
	IDs     []int `json:"ids"`
}

// DeleteRequest represents a request to delete a section or lesson
type DeleteRequest struct {
	ID int `json:"id" example:"3"`
}

// SaveResponse is returned after a section or lesson was written
type SaveResponse struct {
	OK bool `json:"ok" example:"true"`
	ID int  `json:"id" example:"3"`
}

// OKResponse is returned by operations without a payload
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}
