package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dump-analysis/pkg/model"
)

var connsNameMap string

// connsCmd represents the conns command
var connsCmd = &cobra.Command{
	Use:   "conns <snapshot>",
	Short: "Aggregate one netstat connection snapshot",
	Long: `Aggregate a single netstat snapshot into per-state and per-peer
connection counts.

Connections are classified as incoming or outgoing against the snapshot's
own listening ports. An optional name map file (ip=name per line) replaces
peer addresses with readable labels.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.AnalysisRequest{
			TaskUUID:    resolveUUID(),
			TaskType:    model.TaskTypeNetstat,
			InputFiles:  args,
			NameMapFile: connsNameMap,
		}
		return runTask(cmd.Context(), req)
	},
}

func init() {
	rootCmd.AddCommand(connsCmd)

	connsCmd.Flags().StringVar(&connsNameMap, "names", "", "Address name map file (ip=name per line)")

	connsCmd.Example = `  # Aggregate a snapshot
  ` + BinName() + ` conns ./netstat.txt

  # Label peers with readable names
  ` + BinName() + ` conns ./netstat.txt --names ./hosts.map`
}
