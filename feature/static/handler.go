package static

import (
	"particle-wui/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler adapts the Router to fiber.
type Handler struct {
	router *Router
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(router *Router, logger *zap.Logger) *Handler {
	return &Handler{router: router, logger: logger}
}

// RegisterRoutes registers the index and the catch-all file route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleFile)
	app.Get("/*", h.HandleFile)
}

// HandleFile serves the file the router resolves for the request path.
func (h *Handler) HandleFile(c *fiber.Ctx) error {
	fh := h.router.RoutePath(c.Path())
	if fh == nil {
		return fiber.ErrNotFound
	}

	if err := fh.Serve(c); err != nil {
		logger.WithRayID(h.logger, c).Warn("Failed to serve file",
			zap.String("path", fh.Path),
			zap.Error(err),
		)
		return err
	}
	return nil
}
