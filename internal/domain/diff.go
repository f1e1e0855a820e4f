package domain

import "strings"

// DiffKind tags a diff line
type DiffKind string

const (
	DiffContext DiffKind = "context"
	DiffAdded   DiffKind = "added"
	DiffRemoved DiffKind = "removed"
)

// DiffLine is one line of a conflict preview
type DiffLine struct {
	Kind DiffKind
	Text string
}

// DiffSummary counts diff lines by kind
type DiffSummary struct {
	Added   int
	Removed int
	Context int
}

// LineDiff compares the content about to be written (local) with the content
// on disk (remote). Matching lines become context; otherwise the side with
// more remaining lines advances, and a tie emits one removed and one added
// line. The result is a preview aid, not a minimal diff.
func LineDiff(local, remote string) []DiffLine {
	a := splitLines(local)
	b := splitLines(remote)

	out := make([]DiffLine, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if i < len(a) && j < len(b) && a[i] == b[j] {
			out = append(out, DiffLine{Kind: DiffContext, Text: a[i]})
			i++
			j++
			continue
		}

		remA, remB := len(a)-i, len(b)-j
		switch {
		case remA > remB:
			out = append(out, DiffLine{Kind: DiffRemoved, Text: a[i]})
			i++
		case remB > remA:
			out = append(out, DiffLine{Kind: DiffAdded, Text: b[j]})
			j++
		default:
			out = append(out,
				DiffLine{Kind: DiffRemoved, Text: a[i]},
				DiffLine{Kind: DiffAdded, Text: b[j]},
			)
			i++
			j++
		}
	}
	return out
}

// SummarizeDiff counts lines per kind
func SummarizeDiff(lines []DiffLine) DiffSummary {
	var s DiffSummary
	for _, l := range lines {
		switch l.Kind {
		case DiffAdded:
			s.Added++
		case DiffRemoved:
			s.Removed++
		default:
			s.Context++
		}
	}
	return s
}

// FormatUnified renders diff lines with +, - and space prefixes
func FormatUnified(lines []DiffLine) string {
	var sb strings.Builder
	for _, l := range lines {
		switch l.Kind {
		case DiffAdded:
			sb.WriteString("+ ")
		case DiffRemoved:
			sb.WriteString("- ")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
