package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dump-analysis/pkg/model"
)

var threadsFilter string

// threadsCmd represents the threads command
var threadsCmd = &cobra.Command{
	Use:   "threads <dump|dir>...",
	Short: "Analyze a series of JDK thread dumps",
	Long: `Analyze one or more JDK thread dumps captured over time and track how
thread groups with identical normalized stacks evolve across the series.

Arguments may be individual dump files or directories. Directories are
expanded to their immediate files in lexicographic order, which should
match the capture order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.AnalysisRequest{
			TaskUUID:   resolveUUID(),
			TaskType:   model.TaskTypeThreadDump,
			InputFiles: args,
			Filter:     threadsFilter,
		}
		return runTask(cmd.Context(), req)
	},
}

func init() {
	rootCmd.AddCommand(threadsCmd)

	threadsCmd.Flags().StringVarP(&threadsFilter, "filter", "f", "", "Only keep stacks containing this substring (case-insensitive)")

	threadsCmd.Example = `  # A directory of dumps captured by a cron job
  ` + BinName() + ` threads ./dumps/

  # Explicit files, filtered to application frames
  ` + BinName() + ` threads d1.txt d2.txt d3.txt --filter com.example`
}
