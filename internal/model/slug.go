package model

import (
	"strings"

	"github.com/google/uuid"
)

var slugQuoteStripper = strings.NewReplacer(
	"'", "",
	"\"", "",
	"‘", "",
	"’", "",
	"“", "",
	"”", "",
)

// Slugify derives a URL-safe slug from an orphanage name: lower-cased,
// spaces replaced with hyphens, straight and curly quotes stripped.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	return slugQuoteStripper.Replace(slug)
}

// SlugSuffix returns the random suffix appended to a colliding slug,
// the first 8 characters of a freshly generated id.
func SlugSuffix() string {
	return uuid.NewString()[:8]
}
