package models

// StoredImage represents an image stored in a lesson's media directory
type StoredImage struct {
	URL      string `json:"url" example:"/images/lesson_7/diagram-20240309-140507-9f2c1a0b.png"`
	Filename string `json:"filename" example:"diagram-20240309-140507-9f2c1a0b.png"`
}
