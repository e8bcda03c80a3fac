package models

// Level represents a top-level group of sections (e.g. "Beginner").
//
// Levels are seeded by migrations and are read-only for the admin panel.
type Level struct {
	ID     int    `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
}

// LevelTree represents a level with its sections in admin tree responses
type LevelTree struct {
	Level
	Sections []SectionTree `json:"sections"`
}

// LevelDetail represents a level with its sections in public reader responses
type LevelDetail struct {
	Level
	Sections []Section `json:"sections"`
}
