package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/config"
)

var (
	migrateTo        string
	migrateOverwrite bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy every artifact into the other storage backend",
	Long: `Copy every artifact from the configured canonical store into the other
backend. Set storage in config.yaml afterwards to switch.

Examples:
  ruleweaver migrate --to files
  ruleweaver migrate --to sqlite --overwrite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := GetServices().MigrationStores(migrateTo)
		if err != nil {
			return err
		}
		result, err := commands.NewMigrateCommand(from, to, migrateOverwrite).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", fmt.Sprintf("target backend: %s or %s", config.StorageSQLite, config.StorageFiles))
	migrateCmd.Flags().BoolVar(&migrateOverwrite, "overwrite", false, "replace artifacts that already exist in the target")
	migrateCmd.MarkFlagRequired("to")
}
