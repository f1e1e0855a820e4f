package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/application/commands"
)

var repairAll bool

var repairCmd = &cobra.Command{
	Use:   "repair [entry-id]",
	Short: "Rewrite the file of one status entry, or of every repairable entry",
	Long: `Re-render and write the file of a status entry. Missing, out-of-date
and errored entries are repaired; conflicted and unsupported entries fail.

Entry ids have the form <artifact-id>:<adapter>:<path-hash> and are listed
in the Entry column of 'ruleweaver status'.

Examples:
  ruleweaver repair 0b7e9c52-6d1f-4f0e-9a53-2c8d1e4b7a10:gemini:3f2a9c1b7d4e
  ruleweaver repair --all
  ruleweaver repair --all --adapter gemini`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := GetServices().Engine

		if !repairAll {
			if len(args) == 0 {
				return fmt.Errorf("entry id required (or use --all)")
			}
			result, err := commands.NewRepairCommand(engine, args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		}

		filter, err := filterArgs.Filter()
		if err != nil {
			return err
		}
		result, err := commands.NewRepairAllCommand(engine, filter).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range result.Results {
			if r.Success {
				fmt.Printf("  %s %s\n", styles.Success.Render("ok"), r.Path)
			} else {
				fmt.Printf("  %s %s: %s\n", styles.ErrorMsg.Render("fail"), r.Path, r.Error)
			}
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
	repairCmd.Flags().BoolVar(&repairAll, "all", false, "repair every repairable entry matching the filter flags")
	addFilterFlags(repairCmd)
}
