// Package validation checks slugs and required fields before content writes
package validation

import (
	"context"
	"regexp"
	"strings"

	"github.com/domlearn/backend/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z-]+$`)

// IsValidSlug reports whether candidate is non-empty and made of lowercase ASCII letters and hyphens
func IsValidSlug(candidate string) bool {
	return slugPattern.MatchString(candidate)
}

// ValidateSlug returns an InvalidSlug error if candidate is not a valid slug
func ValidateSlug(candidate string) error {
	if !IsValidSlug(candidate) {
		return models.NewValidationError(models.KindInvalidSlug,
			"slug %q must contain only lowercase latin letters and hyphens", candidate)
	}
	return nil
}

// SlugLookup finds which sibling in a scope owns a slug
type SlugLookup interface {
	// FindIDBySlug returns the id of the entity in scope "scopeID" whose slug is "slug".
	// "found" is false when no sibling uses the slug.
	FindIDBySlug(ctx context.Context, scopeID int, slug string) (id int, found bool, err error)
}

// CheckUnique returns a DuplicateSlug error if another sibling in the scope already uses slug.
// excludingID is the entity being updated, or 0 on create.
func CheckUnique(ctx context.Context, lookup SlugLookup, scopeID int, slug string, excludingID int) error {
	id, found, err := lookup.FindIDBySlug(ctx, scopeID, slug)
	if err != nil {
		return err
	}
	if found && id != excludingID {
		return models.NewValidationError(models.KindDuplicateSlug, "slug %q is already used in this scope", slug)
	}
	return nil
}

// Required returns a MissingField error naming the first empty field.
// fields alternates name and value.
func Required(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return models.NewValidationError(models.KindMissingField, "%s is required", fields[i])
		}
	}
	return nil
}

// PositiveID returns a MissingField error if id is not a positive identifier
func PositiveID(name string, id int) error {
	if id <= 0 {
		return models.NewValidationError(models.KindMissingField, "%s is required", name)
	}
	return nil
}
