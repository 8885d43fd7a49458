package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	coretelemetry "particle-wui/core/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run only the diagnostics server",
	Long: `Serves the content root and the telemetry endpoints without running the
simulation. Useful for working on the web UI. Unlike start, a bind failure is fatal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if cfg.Server.Disabled {
			logg.Info("Diagnostics server disabled, nothing to serve")
			return nil
		}

		cell := coretelemetry.NewCell()
		svc := openHistory(cmd.Context(), cfg, cell, logg)

		handle, err := startServer(cfg, svc, logg)
		if err != nil {
			return err
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			logg.Info("Shutting down", zap.String("signal", sig.String()))
		case <-handle.Done():
			return fmt.Errorf("diagnostics server stopped unexpectedly")
		}

		return shutdownAll(cfg.Server.ShutdownTimeout, logg, handle.Shutdown)
	},
}

func init() {
	addServerFlags(serveCmd)
	RootCmd.AddCommand(serveCmd)
}
