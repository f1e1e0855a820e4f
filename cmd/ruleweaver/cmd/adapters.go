package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/registry"
	"ruleweaver/internal/application/commands"
)

var (
	adaptersMarkdown bool
	adaptersJSON     bool
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "Show the AI tools ruleweaver writes for and what each supports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := GetServices().Registry
		if adaptersJSON {
			descriptors, err := commands.NewListAdaptersCommand(reg).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(descriptors)
		}
		if adaptersMarkdown {
			fmt.Print(registry.SupportMatrixMarkdown(reg))
			return nil
		}
		fmt.Println(renderTable(registry.MatrixHeaders, registry.SupportMatrix(reg), nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adaptersCmd)
	adaptersCmd.Flags().BoolVar(&adaptersJSON, "json", false, "print adapter descriptors as JSON")
	adaptersCmd.Flags().BoolVar(&adaptersMarkdown, "markdown", false, "print a markdown table")
}
