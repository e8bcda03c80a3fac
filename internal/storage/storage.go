// Package storage keeps lesson media on the local filesystem.
//
// Every lesson owns exactly one directory, lesson_{id}, under the base path.
// Files are never shared between lessons, so releasing a lesson's media is a single recursive remove.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const lessonDirPrefix = "lesson_"

// localStorage stores lesson media under basePath
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// LessonDirName returns the directory name owned by a lesson
func LessonDirName(lessonID int) string {
	return lessonDirPrefix + strconv.Itoa(lessonID)
}

func (s *localStorage) lessonDir(lessonID int) string {
	return filepath.Join(s.basePath, LessonDirName(lessonID))
}

// Create creates a new file in the lesson's directory, creating the directory if needed.
// It fails if the file already exists.
func (s *localStorage) Create(lessonID int, filename string) (io.WriteCloser, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return nil, fmt.Errorf("invalid file name %q", filename)
	}

	dir := s.lessonDir(lessonID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lesson directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return f, nil
}

// Remove deletes one file of a lesson
func (s *localStorage) Remove(lessonID int, filename string) error {
	err := os.Remove(filepath.Join(s.lessonDir(lessonID), filepath.Base(filename)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Release removes the lesson's directory and everything in it.
// Releasing a lesson without media is not an error.
func (s *localStorage) Release(lessonID int) error {
	if err := os.RemoveAll(s.lessonDir(lessonID)); err != nil {
		return fmt.Errorf("failed to remove lesson directory: %w", err)
	}
	return nil
}

// LessonIDs lists the ids of lessons that currently own a media directory
func (s *localStorage) LessonIDs() ([]int, error) {
	entries, err := os.ReadDir(s.basePath)
	if errors.Is(err, fs.ErrNotExist) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read media directory: %w", err)
	}

	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), lessonDirPrefix) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), lessonDirPrefix))
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
