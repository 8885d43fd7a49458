package wui

import (
	"errors"
	"fmt"
	"net"

	"particle-wui/core/admission"
	"particle-wui/core/logger"
	"particle-wui/core/middleware/rayid"
	"particle-wui/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Mount registers routes on a freshly built app.
type Mount func(app fiber.Router) error

// Start builds and starts the diagnostics server.
//
// A disabled config yields an inert handle and no socket. An invalid config or a
// failing mount is returned as an ordinary error; a failed bind as *BindError.
func Start(cfg server.Config, mount Mount, log *zap.Logger) (*Handle, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.Disabled {
		h := &Handle{logger: log}
		h.setState(StateDisabled)
		log.Info("Diagnostics server disabled")
		return h, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	pool := admission.NewPool(int(cfg.MaxThreads), int(cfg.MaxQueued))

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		IdleTimeout:           cfg.IdleTimeout,
		UnescapePath:          true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(rayid.New())
	app.Use(pool.Middleware())
	app.Use(requestLogger(log))

	if mount != nil {
		if err := mount(app); err != nil {
			return nil, fmt.Errorf("failed to mount routes: %w", err)
		}
	}

	addr := cfg.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}

	h := &Handle{
		app:    app,
		ln:     ln,
		pool:   pool,
		logger: log,
		done:   make(chan struct{}),
	}
	h.setState(StateRunning)
	go h.serve()

	log.Info("Diagnostics server started",
		zap.String("addr", h.Addr()),
		zap.Uint16("max_threads", cfg.MaxThreads),
		zap.Uint16("max_queued", cfg.MaxQueued),
		zap.Duration("idle_timeout", cfg.IdleTimeout),
	)
	return h, nil
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Debug("Request error", zap.Error(err))
		}
		return err
	}
}

// errorHandler keeps fiber's status codes and turns everything else into a bare 500.
// File paths in I/O errors are logged, never sent to the client.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := fiber.ErrInternalServerError.Message

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.WithRayID(log, c).Error("Request failed",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
}
