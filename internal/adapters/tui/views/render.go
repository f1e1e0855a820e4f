package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/domain"
)

const minMarkdownWidth = 20

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders key bindings separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message styled by isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderDiff colors diff lines. The canonical side is prefixed with -,
// the on-disk side with +. At most maxLines lines are shown; 0 means all.
func RenderDiff(lines []domain.DiffLine, maxLines int) string {
	var b strings.Builder
	for i, l := range lines {
		if maxLines > 0 && i == maxLines {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("… %d more line(s)", len(lines)-maxLines)))
			b.WriteString("\n")
			break
		}
		switch l.Kind {
		case domain.DiffAdded:
			b.WriteString(styles.DiffAdded.Render("+ " + l.Text))
		case domain.DiffRemoved:
			b.WriteString(styles.DiffRemoved.Render("- " + l.Text))
		default:
			b.WriteString(styles.DiffContext.Render("  " + l.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CanonicalText rebuilds the content that overwrite would write from a diff
func CanonicalText(lines []domain.DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		if l.Kind != domain.DiffAdded {
			b.WriteString(l.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderMarkdown renders markdown with glamour, wrapped to width.
// Rendering failures fall back to the raw text.
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width < minMarkdownWidth {
		width = minMarkdownWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// RenderConflictRow renders one conflict in the list
func RenderConflictRow(c domain.Conflict, selected bool) string {
	summary := fmt.Sprintf("+%d -%d", c.Summary.Added, c.Summary.Removed)
	line := fmt.Sprintf("%s  %s  %s", c.FilePath, styles.MutedText.Render(c.AdapterName), summary)

	switch {
	case selected:
		return styles.RowSelected.Render(styles.Cursor + line)
	case c.Suppressed:
		return styles.RowSuppressed.Render("  " + line + " (kept)")
	default:
		return styles.Row.Render("  " + line)
	}
}
