package controllers

import (
	"strconv"
	"time"

	"shipops-app/models"
	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CostController struct {
	Cost *services.CostService
}

func NewCostController(cost *services.CostService) *CostController {
	return &CostController{Cost: cost}
}

// EstimationResponse nilai null kalau estimasi belum pernah dihitung
type EstimationResponse struct {
	VoyageID        uint              `json:"voyage_id"`
	EstimationCost1 *decimal.Decimal  `json:"estimation_cost1"`
	EstimationCost2 *decimal.Decimal  `json:"estimation_cost2"`
	FinalCost       *decimal.Decimal  `json:"final_cost"`
	Breakdown       datatypes.JSONMap `json:"breakdown"`
	ComputedAt      *time.Time        `json:"computed_at"`
}

func toEstimationResponse(voyageID uint, est *models.VoyageCostEstimation) EstimationResponse {
	resp := EstimationResponse{VoyageID: voyageID}
	if est != nil {
		resp.EstimationCost1 = &est.EstimationCost1
		resp.EstimationCost2 = &est.EstimationCost2
		resp.FinalCost = &est.FinalCost
		resp.Breakdown = est.Breakdown
		resp.ComputedAt = &est.ComputedAt
	}
	return resp
}

func (c *CostController) GetCostRates(ctx *fiber.Ctx) error {
	var portID uint
	if raw := ctx.Query("port_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fail(ctx, fiber.StatusBadRequest, "Invalid port_id")
		}
		portID = uint(id)
	}
	rates, err := c.Cost.ListRates(ctx.UserContext(), portID)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Cost rates found", rates)
}

func (c *CostController) CreateCostRate(ctx *fiber.Ctx) error {
	var input models.CostRateInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	rate, err := c.Cost.CreateRate(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusCreated, "Cost rate dibuat", rate)
}

func (c *CostController) UpdateCostRate(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var input models.CostRateInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	rate, err := c.Cost.UpdateRate(ctx.UserContext(), id, input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Cost rate diperbarui", rate)
}

func (c *CostController) DeleteCostRate(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := c.Cost.DeleteRate(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Cost rate dihapus", nil)
}

func (c *CostController) GetCostEstimation(ctx *fiber.Ctx) error {
	voyageID, err := paramID(ctx, "voyage_id")
	if err != nil {
		return respondError(ctx, err)
	}
	est, err := c.Cost.GetEstimation(ctx.UserContext(), voyageID)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Cost estimation", toEstimationResponse(voyageID, est))
}

// RecomputeCostEstimation menghitung ulang sekarang dengan tarif terbaru
func (c *CostController) RecomputeCostEstimation(ctx *fiber.Ctx) error {
	voyageID, err := paramID(ctx, "voyage_id")
	if err != nil {
		return respondError(ctx, err)
	}
	est, err := c.Cost.Recompute(ctx.UserContext(), voyageID)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Cost estimation dihitung ulang", toEstimationResponse(voyageID, est))
}
