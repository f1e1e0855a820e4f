package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/adapters/watcher"
	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/domain"
)

var (
	watchDebounce time.Duration
	watchSync     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch generated files and report new conflicts",
	Long: `Watch every generated file and re-plan when one changes. New conflicts
are printed as they appear. With --sync, files that are missing or out of
date after a change are written.

Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		engine := GetServices().Engine

		onUpdate := func(u watcher.Update) {
			for _, c := range u.NewConflicts {
				fmt.Printf("%s %s %s\n", styles.MutedText.Render(time.Now().Format("15:04:05")),
					styles.Status(domain.StatusConflicted), c.FilePath)
			}
			if !watchSync || len(u.Plan.FilesToWrite) == 0 {
				return
			}
			result, err := commands.NewSyncCommand(engine, domain.TriggerWatch, false).Execute(ctx)
			if err != nil {
				fmt.Println(styles.ErrorMsg.Render(err.Error()))
				return
			}
			fmt.Printf("%s %s\n", styles.MutedText.Render(time.Now().Format("15:04:05")), result.Message)
		}

		w, err := watcher.New(engine, watcher.WithDebounce(watchDebounce), watcher.WithUpdates(onUpdate))
		if err != nil {
			return err
		}
		fmt.Println("Watching generated files. Press Ctrl+C to stop.")
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before re-planning")
	watchCmd.Flags().BoolVar(&watchSync, "sync", false, "write missing and out-of-date files after each change")
}
