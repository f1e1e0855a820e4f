package registry

import (
	"strings"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// MatrixHeaders are the column titles of the support matrix
var MatrixHeaders = []string{"Adapter", "Rules", "Command stubs", "Slash commands", "Skills", "Global", "Local", "Global rules path"}

// SupportMatrix returns one row per adapter with yes/no capability cells
func SupportMatrix(reg ports.AdapterRegistry) [][]string {
	var rows [][]string
	for _, d := range reg.ListAdapters() {
		c := d.Capabilities
		rows = append(rows, []string{
			d.Name,
			yesNo(c.Rules),
			yesNo(c.CommandStubs),
			slashCell(d),
			yesNo(c.Skills),
			yesNo(c.GlobalScope),
			yesNo(c.LocalScope),
			d.Paths.GlobalRules,
		})
	}
	return rows
}

// SupportMatrixMarkdown renders the matrix as a markdown table
func SupportMatrixMarkdown(reg ports.AdapterRegistry) string {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(MatrixHeaders, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(MatrixHeaders)) + "\n")
	for _, row := range SupportMatrix(reg) {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return sb.String()
}

func slashCell(d domain.AdapterDescriptor) string {
	if !d.Capabilities.SlashCommands || d.SlashCommand.Extension == "" {
		return "no"
	}
	return "yes (." + d.SlashCommand.Extension + ")"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
