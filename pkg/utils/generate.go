package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ==================== BOOKING REFERENCE ====================

// BookingReference formats BK-<year>-<id padded to 4 digits>.
func BookingReference(id int64, createdAt time.Time) string {
	return fmt.Sprintf("BK-%d-%04d", createdAt.Year(), id)
}

// ==================== SLUG ====================

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(s string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}
