// Package cmd implements the dump-analysis command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dump-analysis/internal/service"
	"github.com/dump-analysis/pkg/config"
	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/telemetry"
	"github.com/dump-analysis/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	taskUUID   string

	logger utils.Logger
	cfg    *config.Config

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dump-analysis",
	Short: "Offline netstat and JDK thread-dump analysis",
	Long: `dump-analysis is a CLI tool for offline analysis of host diagnostic dumps.

It aggregates netstat connection snapshots, compares two snapshots of the
same host for one port, and correlates a time-ordered series of JDK thread
dumps including virtual thread tracking.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if !verbose {
			logger = utils.NewDefaultLogger(utils.ParseLogLevel(loaded.Log.Level), os.Stdout)
		}
		cfg = loaded

		shutdown, err := telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("telemetry disabled: %v", err)
		} else {
			telemetryShutdown = shutdown
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetryShutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown: %v", err)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&taskUUID, "uuid", "", "Task UUID (auto-generated if empty)")

	binName := BinName()
	rootCmd.Example = `  # Aggregate one netstat snapshot
  ` + binName + ` conns ./netstat.txt --names ./hosts.map

  # Compare two snapshots for port 443
  ` + binName + ` conndiff ./before.txt ./after.txt --port 443

  # Analyze a thread dump series
  ` + binName + ` threads ./dumps/ --filter com.example`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}

// resolveUUID returns the --uuid flag or a generated local identifier.
func resolveUUID() string {
	if taskUUID != "" {
		return taskUUID
	}
	return fmt.Sprintf("local-%d-%d", os.Getpid(), time.Now().Unix())
}

// runTask builds the service, executes one request and tears down.
func runTask(ctx context.Context, req *model.AnalysisRequest) error {
	svc, err := service.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := svc.Initialize(ctx); err != nil {
		return err
	}
	defer svc.Close()

	logger.Info("Task UUID: %s", req.TaskUUID)
	if _, err := svc.Run(ctx, req); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	return nil
}
