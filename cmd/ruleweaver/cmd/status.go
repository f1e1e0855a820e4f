package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/domain"
)

var (
	filterArgs  commands.FilterArgs
	statusJSON  bool
	summaryOnly bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync status of every generated file",
	Long: `Show one line per (artifact, adapter, target) entry with its status:
synced, out_of_date, missing, conflicted, unsupported or error.

Examples:
  ruleweaver status
  ruleweaver status --status conflicted
  ruleweaver status --adapter codex --type rule
  ruleweaver status --summary`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterArgs.Filter()
		if err != nil {
			return err
		}

		result, err := commands.NewStatusCommand(GetServices().Engine, filter).Execute(cmd.Context())
		if err != nil {
			return err
		}

		switch {
		case statusJSON && summaryOnly:
			return printJSON(result.Summary)
		case statusJSON:
			return printJSON(result.Entries)
		case summaryOnly:
			fmt.Println(result.Message)
			return nil
		}

		if len(result.Entries) == 0 {
			fmt.Println("No entries. Add an artifact with 'ruleweaver artifact add' or import one.")
			return nil
		}

		rows := make([][]string, 0, len(result.Entries))
		for _, e := range result.Entries {
			path := e.ExpectedPath
			if e.Detail != "" {
				path += " (" + e.Detail + ")"
			}
			rows = append(rows, []string{e.ID, string(e.Status), string(e.Adapter), string(e.ArtifactType) + "/" + e.ArtifactName, path})
		}
		fmt.Println(renderTable([]string{"Entry", "Status", "Adapter", "Artifact", "Path"}, rows,
			func(row, col int) lipgloss.Style {
				if col == 1 {
					return styles.Cell.Foreground(styles.StatusColor(result.Entries[row].Status))
				}
				return styles.Cell
			}))
		fmt.Println(result.Message)
		return nil
	},
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&filterArgs.Type, "type", "", "artifact type: rule, command or skill")
	cmd.Flags().StringVar(&filterArgs.ArtifactID, "artifact", "", "artifact id")
	cmd.Flags().StringVar(&filterArgs.Adapter, "adapter", "", "adapter id, e.g. codex")
	cmd.Flags().StringVar(&filterArgs.Scope, "scope", "", "global or local")
	cmd.Flags().StringVar(&filterArgs.RepoRoot, "repo", "", "repository root of local entries")
	cmd.Flags().StringVar(&filterArgs.Status, "status", "", "only entries with this status")
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addFilterFlags(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print JSON")
	statusCmd.Flags().BoolVar(&summaryOnly, "summary", false, "print counts per status only")
}

// printConflicts lists conflicts left untouched by a write
func printConflicts(conflicts []domain.Conflict) {
	for _, c := range conflicts {
		fmt.Printf("  %s %s  %s\n", styles.Status(domain.StatusConflicted), c.FilePath, styles.MutedText.Render(c.ID))
	}
}
