package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/tui"
	"ruleweaver/internal/adapters/tui/views"
	"ruleweaver/internal/application/commands"
)

var (
	resolveHash string
	diffPlain   bool
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "List generated files that were edited by hand",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conflicts, err := commands.NewListConflictsCommand(GetServices().Engine).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(conflicts) == 0 {
			fmt.Println("No conflicts")
			return nil
		}

		rows := make([][]string, 0, len(conflicts))
		for _, c := range conflicts {
			state := fmt.Sprintf("+%d -%d", c.Summary.Added, c.Summary.Removed)
			if c.Suppressed {
				state += " (kept)"
			}
			rows = append(rows, []string{c.ID, c.AdapterName, c.FilePath, state})
		}
		fmt.Println(renderTable([]string{"Conflict", "Adapter", "File", "Diff"}, rows, nil))
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <conflict-id>",
	Short: "Show what overwriting a conflict would change",
	Long: `Show the line diff of a conflict. Lines marked - are the canonical
content ruleweaver would write; lines marked + are on disk now.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDiffCommand(GetServices().Engine, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n\n", result.Conflict.FilePath, result.Conflict.AdapterName)
		if diffPlain || !isInteractive() {
			fmt.Print(result.Unified)
			return nil
		}
		fmt.Print(views.RenderDiff(result.Lines, 0))
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <conflict-id> <overwrite|keep-remote>",
	Short: "Overwrite a conflicted file or keep the edited version",
	Long: `Resolve a conflict.

overwrite    write the canonical content over the edited file
keep-remote  keep the edited file; it is reported again once it or its
             artifacts change

Examples:
  ruleweaver resolve conflict-3f2a9c1b7d4e overwrite
  ruleweaver resolve conflict-3f2a9c1b7d4e keep-remote`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewResolveCommand(GetServices().Engine, args[0], args[1], resolveHash).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <conflict-id>",
	Short: "Open a conflicted file in your editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := GetServices()
		result, err := commands.NewDiffCommand(svc.Engine, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return svc.Editor.OpenFile(result.Conflict.FilePath)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review conflicts interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isInteractive() {
			return fmt.Errorf("review needs a terminal; use 'ruleweaver conflicts' and 'ruleweaver resolve'")
		}
		svc := GetServices()
		return tui.Run(cmd.Context(), svc.Engine, svc.Editor)
	},
}

func init() {
	rootCmd.AddCommand(conflictsCmd)
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&diffPlain, "plain", false, "print without colors")
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveHash, "hash", "", "refuse if the file no longer has this hash")
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(reviewCmd)
}
