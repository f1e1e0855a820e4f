package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/domain"
)

var (
	syncDryRun  bool
	pruneDryRun bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write every missing or out-of-date generated file",
	Long: `Write every missing or out-of-date generated file.

Files edited outside ruleweaver are conflicts: they are listed and left
alone. Review them with 'ruleweaver review' or 'ruleweaver resolve'.

Examples:
  ruleweaver sync
  ruleweaver sync --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSyncCommand(GetServices().Engine, domain.TriggerManual, syncDryRun).Execute(cmd.Context())
		if err != nil {
			return err
		}

		verb := "wrote"
		if syncDryRun {
			verb = "would write"
		}
		for _, p := range result.Result.FilesWritten {
			fmt.Printf("  %s %s\n", styles.Success.Render(verb), p)
		}
		printConflicts(result.Result.Conflicts)
		for _, e := range result.Result.Errors {
			fmt.Printf("  %s %s: %s\n", styles.ErrorMsg.Render("error"), e.FilePath, e.Message)
		}
		fmt.Println(result.Message)
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove generated files that no artifact targets anymore",
	Long: `Remove files ruleweaver wrote earlier whose artifact or adapter was
removed. Files edited since they were written are kept.

Examples:
  ruleweaver prune --dry-run
  ruleweaver prune`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewPruneCommand(GetServices().Engine, pruneDryRun).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range result.Result.Removed {
			fmt.Printf("  remove %s\n", p)
		}
		for _, f := range result.Result.Kept {
			fmt.Printf("  %s %s (%s)\n", styles.WarningMsg.Render("keep"), f.Path, f.Reason)
		}
		for _, e := range result.Result.Errors {
			fmt.Printf("  %s %s: %s\n", styles.ErrorMsg.Render("error"), e.Path, e.Reason)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVarP(&syncDryRun, "dry-run", "n", false, "show what would be written")

	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().BoolVarP(&pruneDryRun, "dry-run", "n", false, "show what would be removed")
}
