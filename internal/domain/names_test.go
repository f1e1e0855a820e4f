package domain

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Rule", "My-Rule"},
		{"  spaced   out  ", "spaced-out"},
		{"keep_under-score", "keep_under-score"},
		{"drop!@#chars", "dropchars"},
		{"!!!", DefaultImportName},
		{"", DefaultImportName},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("Review PR"); got != "review-pr" {
		t.Errorf("Slugify() = %q", got)
	}
	if got := Slugify("---"); got != "untitled" {
		t.Errorf("Slugify() = %q, want untitled", got)
	}
}

func TestMakeUniqueName(t *testing.T) {
	taken := map[string]bool{"style": true, "style-2": true}

	tests := []struct {
		base string
		want string
	}{
		{"fresh", "fresh"},
		{"Style", "Style-3"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := MakeUniqueName(tt.base, taken); got != tt.want {
				t.Errorf("MakeUniqueName(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}
