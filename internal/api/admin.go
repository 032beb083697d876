package api

import (
	"strings"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// TriggerScrape handles POST /api/admin/scrape/:source.
func (h *Handlers) TriggerScrape(c *fiber.Ctx) error {
	source := c.Params("source")

	result, err := h.runner.Trigger(c.Context(), source)
	if err != nil {
		if strings.Contains(err.Error(), "unknown source") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Unknown source",
			})
		}
		logger.Error().Err(err).Str("source", source).Msg("manual scrape failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Scrape failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Scrape completed",
		"result":  result,
	})
}

// SchedulerStatus handles GET /api/admin/scheduler/status.
func (h *Handlers) SchedulerStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"scheduler": h.runner.Status()})
}
