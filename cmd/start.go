package cmd

import (
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"particle-wui/core/scheduler"
	coretelemetry "particle-wui/core/telemetry"
	"particle-wui/core/wui"
	"particle-wui/feature/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title particle-wui Diagnostics API
// @version 1.0
// @description Frame statistics of the particle simulation.
// @host localhost:10002
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the simulation with the diagnostics server",
	Long: `Runs the frame loop on the main thread and the diagnostics server next to it.
The server is best-effort: if its port cannot be bound the simulation still runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Keeps the frame loop on one OS thread. main's init pins that thread to
		// the process main thread when the binary is run directly.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		cfg, logg, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := cmd.Context()
		cell := coretelemetry.NewCell()
		svc := openHistory(ctx, cfg, cell, logg)

		handle, err := startServer(cfg, svc, logg)
		var bindErr *wui.BindError
		switch {
		case errors.As(err, &bindErr):
			logg.Warn("Diagnostics server unavailable, continuing without it", zap.Error(err))
		case err != nil:
			return err
		}

		var recorder *telemetry.Recorder
		if svc.HasHistory() {
			recorder = telemetry.NewRecorder(svc, cfg.Telemetry.RecordInterval, logg)
			recorder.Start(ctx)
		}

		var stream *telemetry.Stream
		if cfg.Telemetry.StreamPort != 0 {
			stream = telemetry.NewStream(cell, cfg.Telemetry.StreamInterval, logg)
			if err := stream.Start(streamAddr(cfg.Telemetry.StreamPort)); err != nil {
				logg.Warn("Telemetry stream unavailable", zap.Error(err))
				stream = nil
			}
		}

		pump := scheduler.NewChannelPump(64)
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigs)
		go func() {
			for sig := range sigs {
				if sig == syscall.SIGHUP {
					pump.Post(scheduler.Message{Kind: scheduler.KindSignal, Payload: sig.String()})
					continue
				}
				logg.Info("Shutting down", zap.String("signal", sig.String()))
				pump.Quit()
				return
			}
		}()

		loop, err := scheduler.New(cfg.Scheduler, pump, scheduler.NewHeadless(logg), scheduler.Options{
			Cell:   cell,
			Logger: logg,
		})
		if err != nil {
			return err
		}
		runErr := loop.Run(ctx)

		parts := []stoppable{handle.Shutdown}
		if recorder != nil {
			parts = append(parts, recorder.Stop)
		}
		if stream != nil {
			parts = append(parts, stream.Shutdown)
		}
		_ = shutdownAll(cfg.Server.ShutdownTimeout, logg, parts...)

		logg.Info("Simulation finished",
			zap.Uint64("frames", loop.Frames()),
			zap.Any("server", handle.Stats()),
		)
		return runErr
	},
}

func init() {
	addServerFlags(startCmd)
	startCmd.Flags().Float64("max-fps", 0, "frame rate ceiling (overrides SCHEDULER_MAX_FPS)")
	RootCmd.AddCommand(startCmd)
}
