package controllers

import (
	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
)

type PercentageController struct {
	Percentages *services.PercentageService
}

func NewPercentageController(percentages *services.PercentageService) *PercentageController {
	return &PercentageController{Percentages: percentages}
}

func (c *PercentageController) Ping(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"ok": true, "service": "percentages"})
}

func (c *PercentageController) SummaryByPort(ctx *fiber.Ctx) error {
	summaries, err := c.Percentages.SummaryByPort(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Percentage summary by port", summaries)
}

func (c *PercentageController) ByPort(ctx *fiber.Ctx) error {
	portID, err := paramID(ctx, "port_id")
	if err != nil {
		return respondError(ctx, err)
	}
	summary, err := c.Percentages.ByPort(ctx.UserContext(), portID)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Percentage by port", summary)
}

func (c *PercentageController) ByContainerMovement(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	pct, err := c.Percentages.ForMovement(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Percentage found", pct)
}
