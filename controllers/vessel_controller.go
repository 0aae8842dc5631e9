package controllers

import (
	"shipops-app/models"
	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
)

type VesselController struct {
	Vessels *services.VesselService
}

func NewVesselController(vessels *services.VesselService) *VesselController {
	return &VesselController{Vessels: vessels}
}

func (c *VesselController) GetAllVessels(ctx *fiber.Ctx) error {
	vessels, err := c.Vessels.List(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Vessels found", vessels)
}

func (c *VesselController) GetVesselByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	vessel, err := c.Vessels.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Vessel found", vessel)
}

func (c *VesselController) CreateVessel(ctx *fiber.Ctx) error {
	var input models.VesselInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	vessel, err := c.Vessels.Create(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusCreated, "Vessel berhasil dibuat", vessel)
}
