package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/config"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/utils"
)

// AppHandler serves the service status and health routes
type AppHandler struct {
	Base
	Config    *config.Config
	StartedAt time.Time
}

// Status handles GET /
// @Summary Service status
// @Tags App
// @Produce json
// @Success 200 {object} utils.Envelope
// @Router / [get]
func (h *AppHandler) Status(c *fiber.Ctx) error {
	return utils.OK(c, services.Status(c.UserContext(), h.StartedAt), "")
}

// Health handles GET /healthz
// @Summary Health check
// @Tags App
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /healthz [get]
func (h *AppHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Log, false)
	if result.Status != services.HealthStatusHealthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.JSON(result)
}
