package storage

import (
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseName = "image"
	maxBaseNameLen  = 64
	timestampLayout = "20060102-150405"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// SanitizeBaseName strips the extension from an uploaded file name and replaces
// everything except latin letters, digits, '_' and '-' with '-'
func SanitizeBaseName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "-"), "-")
	if len(base) > maxBaseNameLen {
		base = strings.TrimRight(base[:maxBaseNameLen], "-")
	}
	if base == "" || base == "." {
		return defaultBaseName
	}
	return base
}

// GenerateFileName builds "{base}-{timestamp}-{random}.{ext}" for an uploaded file.
// The random part keeps concurrent uploads of the same file name apart.
func GenerateFileName(original, extension string, now time.Time) string {
	id := uuid.New()
	extension = strings.TrimPrefix(extension, ".")
	return SanitizeBaseName(original) + "-" + now.Format(timestampLayout) + "-" + hex.EncodeToString(id[:4]) + "." + extension
}
