package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ruleweaver/internal/application/commands"
)

var (
	historyLimit int
	historySync  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent imports, or recent syncs with --sync",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := GetServices()
		limit := historyLimit
		if limit <= 0 {
			limit = svc.Config.Import.HistoryLimit
		}

		if historySync {
			entries, err := commands.NewSyncHistoryCommand(svc.Engine, limit).Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No syncs yet")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				result := "ok"
				if !e.Success {
					result = "failed"
				}
				rows = append(rows, []string{
					humanize.Time(e.At), string(e.TriggeredBy), result,
					fmt.Sprint(e.FilesWritten), fmt.Sprint(e.Conflicts), fmt.Sprint(e.Errors),
					e.Duration.Round(time.Millisecond).String(),
				})
			}
			fmt.Println(renderTable([]string{"When", "Trigger", "Result", "Written", "Conflicts", "Errors", "Took"}, rows, nil))
			return nil
		}

		entries, err := commands.NewImportHistoryCommand(svc.State, limit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No imports yet")
			return nil
		}
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				humanize.Time(e.At), string(e.SourceType), e.SourceLabel, string(e.ConflictMode),
				fmt.Sprint(e.Imported), fmt.Sprint(e.Skipped), fmt.Sprint(e.Conflicts), fmt.Sprint(e.Errors),
			})
		}
		fmt.Println(renderTable([]string{"When", "Source", "Label", "Mode", "Imported", "Skipped", "Conflicts", "Errors"}, rows, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "maximum entries (default import.history_limit)")
	historyCmd.Flags().BoolVar(&historySync, "sync", false, "show sync history instead of imports")
}
