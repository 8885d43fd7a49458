package cmd

import (
	"fmt"
	"os"

	"particle-wui/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// envDir is where the optional .env file is read from.
var envDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "particle-wui",
	Short: "Particle simulation with an embedded diagnostics server",
	Long: `particle-wui runs a frame-paced particle simulation and serves a small
diagnostics web UI and live frame statistics next to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "directory holding the optional .env file")
}
