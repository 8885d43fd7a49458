package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"particle-wui/core/config"
	"particle-wui/core/database"
	"particle-wui/core/loader"
	"particle-wui/core/logger"
	coretelemetry "particle-wui/core/telemetry"
	"particle-wui/core/utils"
	"particle-wui/core/wui"
	"particle-wui/feature/content"
	"particle-wui/feature/static"
	"particle-wui/feature/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	_ "particle-wui/docs/swagger"
)

// addServerFlags registers the flags that override the server section.
func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().Uint16("port", 0, "diagnostics server port (overrides SERVER_PORT)")
	cmd.Flags().Bool("disabled", false, "do not start the diagnostics server")
}

// bootstrap loads the configuration, applies flag overrides and builds the logger.
func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetUint16("port")
	}
	if flags.Changed("disabled") {
		cfg.Server.Disabled, _ = flags.GetBool("disabled")
	}
	if flags.Changed("max-fps") {
		cfg.Scheduler.MaxFPS, _ = flags.GetFloat64("max-fps")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// contentRoot returns the absolute content root next to the executable.
func contentRoot(cfg *config.Config) string {
	return filepath.Join(utils.ModuleDir(), cfg.Server.ContentRoot)
}

// openHistory connects the optional history database and migrates it.
// Any failure degrades to running without history.
func openHistory(ctx context.Context, cfg *config.Config, cell *coretelemetry.Cell, logg *zap.Logger) *telemetry.Service {
	var db *gorm.DB
	conn, err := database.ConnectOptional(cfg.Database)
	switch {
	case errors.Is(err, database.ErrDisabled):
		logg.Debug("Telemetry history disabled")
	case err != nil:
		logg.Warn("Optional database connection failed", zap.Error(err))
	default:
		db = conn
		logg.Info("Connected to telemetry database", zap.String("driver", cfg.Database.Driver))
	}

	svc := telemetry.NewService(cell, db, cfg.Telemetry, logg)
	if db != nil {
		if err := svc.Migrate(ctx); err != nil {
			logg.Warn("Telemetry history unavailable", zap.Error(err))
			svc = telemetry.NewService(cell, nil, cfg.Telemetry, logg)
		}
	}
	return svc
}

// startServer mounts the features and starts the diagnostics server. A bind failure
// comes back as *wui.BindError; whether it is fatal is up to the command.
func startServer(cfg *config.Config, svc *telemetry.Service, logg *zap.Logger) (*wui.Handle, error) {
	if !cfg.Server.Disabled {
		warnContent(contentRoot(cfg), logg)
	}

	mgr := loader.NewManager(logg)
	mgr.Register(telemetry.NewFeature(svc, cfg.Server.ApiKey))
	mgr.Register(static.NewFeature(utils.ModuleDir(), cfg.Server.ContentRoot, logg))

	mount := func(app fiber.Router) error {
		if cfg.Server.Docs {
			app.Get("/swagger/*", swagger.HandlerDefault)
		}
		return mgr.LoadAll(app)
	}

	return wui.Start(cfg.Server, mount, logg)
}

func warnContent(root string, logg *zap.Logger) {
	report, err := content.Check(root)
	if err != nil {
		logg.Warn("Content root unavailable", zap.String("root", root), zap.Error(err))
		return
	}
	if !report.IndexPresent {
		logg.Warn("Content root has no index.html; GET / will fail", zap.String("root", root))
	}
	if len(report.DefaultTyped) > 0 {
		logg.Debug("Files served as text/plain", zap.Strings("files", report.DefaultTyped))
	}
}

// stoppable is a component torn down within the shutdown deadline.
type stoppable func(ctx context.Context) error

// shutdownAll stops every component concurrently within timeout.
func shutdownAll(timeout time.Duration, logg *zap.Logger, parts ...stoppable) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var g errgroup.Group
	for _, stop := range parts {
		if stop == nil {
			continue
		}
		g.Go(func() error { return stop(ctx) })
	}

	err := g.Wait()
	if err != nil {
		logg.Warn("Shutdown incomplete", zap.Error(err))
	}
	return err
}

func streamAddr(port uint16) string {
	return fmt.Sprintf(":%d", port)
}
