package domain

import "strings"

// SplitFrontmatter separates a leading YAML frontmatter block from the body.
// ok is false when content has no frontmatter.
func SplitFrontmatter(content string) (front, body string, ok bool) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return "", content, false
	}

	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", content, false
	}

	front = rest[:end]
	body = rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return front, body, true
}

// StripGeneratedHeader removes header comment lines written by Render
func StripGeneratedHeader(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if isHeaderLine(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimLeft(strings.Join(kept, "\n"), "\n")
}

func isHeaderLine(line string) bool {
	inner := line
	switch {
	case strings.HasPrefix(line, "<!--") && strings.HasSuffix(line, "-->"):
		inner = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "<!--"), "-->"))
	case strings.HasPrefix(line, "# "):
		inner = strings.TrimPrefix(line, "# ")
	default:
		return false
	}
	return inner == GeneratedMarker ||
		strings.HasPrefix(inner, lastSyncedPrefix) ||
		strings.HasPrefix(inner, artifactsPrefix)
}
