package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultImportName is used when a name sanitizes to nothing
const DefaultImportName = "imported-rule"

// SanitizeName keeps letters, digits, '-', '_' and whitespace, then collapses
// whitespace runs into single dashes.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), "-")
	if out == "" {
		return DefaultImportName
	}
	return out
}

// Slugify produces a lowercase file name stem
func Slugify(name string) string {
	slug := strings.ToLower(SanitizeName(name))
	slug = strings.Trim(slug, "-_")
	if slug == "" {
		return "untitled"
	}
	return slug
}

// MakeUniqueName appends -2, -3, ... until the name is not taken.
// taken is keyed by lowercase name.
func MakeUniqueName(base string, taken map[string]bool) string {
	if !taken[strings.ToLower(base)] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
