package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_CreateAndRelease(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStorage(base)

	w, err := s.Create(7, "cat.png")
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(base, "lesson_7", "cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = s.Create(7, "cat.png")
	assert.Error(t, err, "existing files are never overwritten")

	require.NoError(t, s.Release(7))
	_, err = os.Stat(filepath.Join(base, "lesson_7"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Release(7), "release is idempotent")
}

func TestLocalStorage_CreateRejectsPaths(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	for _, name := range []string{"", "../escape.png", "sub/dir.png"} {
		_, err := s.Create(1, name)
		assert.Error(t, err, name)
	}
}

func TestLocalStorage_Remove(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	w, err := s.Create(3, "a.png")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.NoError(t, s.Remove(3, "a.png"))
	assert.NoError(t, s.Remove(3, "a.png"))
}

func TestLocalStorage_LessonIDs(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStorage(base)

	for _, dir := range []string{"lesson_1", "lesson_12", "lesson_x", "other"} {
		require.NoError(t, os.Mkdir(filepath.Join(base, dir), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(base, "lesson_5"), []byte("file"), 0644))

	ids, err := s.LessonIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 12}, ids)

	ids, err = NewLocalStorage(filepath.Join(base, "missing")).LessonIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		original string
		expected string
	}{
		{original: "photo.png", expected: "photo"},
		{original: "my photo (1).jpeg", expected: "my-photo-1"},
		{original: "../../etc/passwd", expected: "passwd"},
		{original: `C:\Users\me\pic.webp`, expected: "pic"},
		{original: "фото.png", expected: "image"},
		{original: "", expected: "image"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeBaseName(tt.original))
		})
	}
}

func TestGenerateFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	first := GenerateFileName("my photo.png", "png", now)
	second := GenerateFileName("my photo.png", ".png", now)

	assert.Regexp(t, regexp.MustCompile(`^my-photo-20240309-140507-[0-9a-f]{8}\.png$`), first)
	assert.Regexp(t, regexp.MustCompile(`^my-photo-20240309-140507-[0-9a-f]{8}\.png$`), second)
	assert.NotEqual(t, first, second)
}
