package controllers

import (
	"shipops-app/models"
	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
)

type VoyageController struct {
	Voyages *services.VoyageService
}

func NewVoyageController(voyages *services.VoyageService) *VoyageController {
	return &VoyageController{Voyages: voyages}
}

func (c *VoyageController) GetAllVoyages(ctx *fiber.Ctx) error {
	voyages, err := c.Voyages.List(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Voyages found", voyages)
}

func (c *VoyageController) GetVoyageByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	voyage, err := c.Voyages.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Voyage found", voyage)
}

func (c *VoyageController) CreateVoyage(ctx *fiber.Ctx) error {
	var input models.VoyageInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	voyage, err := c.Voyages.Create(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusCreated, "Voyage berhasil dibuat", voyage)
}
