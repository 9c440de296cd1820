package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dump-analysis/internal/service"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analysis runs",
	Long: `List the most recent analysis runs recorded in the run-history database.
Requires database.type to be configured to something other than "none".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := service.New(cfg, logger)
		if err != nil {
			return err
		}
		if err := svc.Initialize(cmd.Context()); err != nil {
			return err
		}
		defer svc.Close()

		runs, err := svc.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			logger.Info("No recorded runs")
			return nil
		}

		for _, run := range runs {
			end := "-"
			if run.EndTime != nil {
				end = run.EndTime.Format("2006-01-02 15:04:05")
			}
			logger.Info("%s  %-12s %-8s %s", run.TaskUUID, run.TaskType, run.Status, end)
			logger.Info("  inputs: %s", strings.Join(run.InputFileList(), ", "))
			if run.StatusInfo != "" {
				logger.Info("  info: %s", run.StatusInfo)
			}
		}
		logger.Info("%d run(s)", len(runs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
}
