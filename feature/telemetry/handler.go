package telemetry

import (
	"errors"

	"particle-wui/core/logger"
	coretelemetry "particle-wui/core/telemetry"
	"particle-wui/feature/telemetry/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for telemetry.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.FrameSample{}
	var _ = coretelemetry.Snapshot{}
	return &Handler{service: service}
}

// RegisterRoutes registers the telemetry routes behind the given middleware.
func (h *Handler) RegisterRoutes(app fiber.Router, middleware ...fiber.Handler) {
	group := app.Group("/data", middleware...)
	group.Get("/", h.HandleCurrent)
	group.Get("/history", h.HandleHistory)
}

// HandleCurrent returns the latest frame statistics.
// @Summary Current Frame Statistics
// @Description Returns the snapshot published by the frame loop at the end of its last one-second window.
// @Tags telemetry
// @Produce json
// @Success 200 {object} telemetry.Snapshot
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /data [get]
func (h *Handler) HandleCurrent(c *fiber.Ctx) error {
	return c.JSON(h.service.Current())
}

// HandleHistory returns persisted frame samples, newest first.
// @Summary Frame Statistics History
// @Description Returns the most recent persisted samples. Requires a configured database.
// @Tags telemetry
// @Produce json
// @Param limit query int false "Maximum number of samples"
// @Success 200 {array} models.FrameSample
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "No database configured"
// @Router /data/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	samples, err := h.service.History(c.Context(), c.QueryInt("limit", 0))
	if errors.Is(err, ErrNoDatabase) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load history"})
	}
	return c.JSON(samples)
}
