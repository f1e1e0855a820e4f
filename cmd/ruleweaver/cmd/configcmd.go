package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the config files in use and the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetServices().Config
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		fmt.Printf("home     %s\n", cfg.Home)
		for _, f := range []struct{ label, path string }{
			{"global", config.GlobalConfigPathIn(cfg.Home)},
			{"project", config.ProjectConfigPath(cwd)},
		} {
			state := styles.MutedText.Render("(not found)")
			if _, err := os.Stat(f.path); err == nil {
				state = styles.Success.Render("(loaded)")
			}
			fmt.Printf("%-8s %s %s\n", f.label, f.path, state)
		}
		fmt.Println()

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
