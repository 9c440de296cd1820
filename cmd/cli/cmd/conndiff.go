package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dump-analysis/pkg/model"
)

var (
	conndiffPort    int
	conndiffNameMap string
)

// conndiffCmd represents the conndiff command
var conndiffCmd = &cobra.Command{
	Use:   "conndiff <before> <after>",
	Short: "Compare two snapshots of the same host for one port",
	Long: `Compare two netstat snapshots taken from the same host and report the
per-connection state transitions touching the target port.

Connections are matched by protocol, local address and foreign address.
For each matched pair the higher-priority state is shown first, e.g.
"ESTABLISHED ==> CLOSE_WAIT".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.AnalysisRequest{
			TaskUUID:    resolveUUID(),
			TaskType:    model.TaskTypeNetstatDiff,
			InputFiles:  args,
			NameMapFile: conndiffNameMap,
			Port:        conndiffPort,
		}
		return runTask(cmd.Context(), req)
	},
}

func init() {
	rootCmd.AddCommand(conndiffCmd)

	conndiffCmd.Flags().IntVarP(&conndiffPort, "port", "p", 0, "Target port (required)")
	conndiffCmd.Flags().StringVar(&conndiffNameMap, "names", "", "Address name map file (ip=name per line)")
	conndiffCmd.MarkFlagRequired("port")

	conndiffCmd.Example = `  # Transitions for port 443
  ` + BinName() + ` conndiff ./before.txt ./after.txt --port 443`
}
