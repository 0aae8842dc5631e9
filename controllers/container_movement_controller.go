package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipops-app/models"
	"shipops-app/repositories"
	"shipops-app/services"
	"shipops-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContainerMovementController struct {
	Movements *services.ContainerMovementService
	Repo      *repositories.ContainerMovementRepository
}

func NewContainerMovementController(movements *services.ContainerMovementService, repo *repositories.ContainerMovementRepository) *ContainerMovementController {
	return &ContainerMovementController{Movements: movements, Repo: repo}
}

func (c *ContainerMovementController) GetContainerMovements(ctx *fiber.Ctx) error {
	p := utils.ParsePagination(ctx, "created_at")
	rows, total, err := c.Repo.List(ctx.UserContext(), p)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(utils.PagedResponse(rows, total, p))
}

func (c *ContainerMovementController) GetContainerMovementByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	row, err := c.Repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(ctx, fiber.StatusNotFound, "Container movement not found")
		}
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Container movement found", row)
}

func (c *ContainerMovementController) SummaryByPort(ctx *fiber.Ctx) error {
	summaries, err := c.Repo.SummaryByPort(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Summary by port", summaries)
}

// ExportExcel menerima filter yang sama dengan list (q, field, sort_by, order)
func (c *ContainerMovementController) ExportExcel(ctx *fiber.Ctx) error {
	p := utils.ParsePagination(ctx, "created_at")
	rows, err := c.Repo.ListAll(ctx.UserContext(), p)
	if err != nil {
		return respondError(ctx, err)
	}

	filename := fmt.Sprintf("monitoring_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := services.WriteMonitoringWorkbook(ctx.Response().BodyWriter(), rows); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("Gagal generate Excel")
	}
	return nil
}

func (c *ContainerMovementController) CreateBongkaran(ctx *fiber.Ctx) error {
	var input models.BongkaranInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	cm, err := c.Movements.RecordBongkaran(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusCreated, "Data bongkaran berhasil disimpan", cm)
}

func (c *ContainerMovementController) UploadBongkaran(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, "File is required")
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return fail(ctx, fiber.StatusBadRequest, "Only Excel files (.xlsx) are allowed")
	}

	fileContent, err := file.Open()
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, "Failed to open file")
	}
	defer fileContent.Close()

	result, err := c.Movements.ImportBongkaran(ctx.UserContext(), fileContent)
	if err != nil {
		return respondError(ctx, err)
	}

	return success(ctx, fiber.StatusOK, fmt.Sprintf("Upload selesai: %d berhasil, %d dilewati, %d gagal",
		result.SuccessCount, result.SkippedCount, result.ErrorCount), result)
}

func (c *ContainerMovementController) CreatePengajuan(ctx *fiber.Ctx) error {
	var input models.PengajuanInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	cm, err := c.Movements.RecordPengajuan(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Data pengajuan berhasil disimpan", cm)
}

func (c *ContainerMovementController) CreateAccPengajuan(ctx *fiber.Ctx) error {
	var input models.AccPengajuanInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	cm, err := c.Movements.RecordAccPengajuan(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Data ACC pengajuan berhasil disimpan", cm)
}

func (c *ContainerMovementController) CreateRealisasi(ctx *fiber.Ctx) error {
	var input models.RealisasiInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	cm, err := c.Movements.RecordRealisasi(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Data realisasi berhasil disimpan", cm)
}

func (c *ContainerMovementController) CreateShipside(ctx *fiber.Ctx) error {
	var input models.ShipsideInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	cm, err := c.Movements.RecordShipside(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Data shipside berhasil disimpan", cm)
}

func (c *ContainerMovementController) CreateRealisasiShipside(ctx *fiber.Ctx) error {
	var input models.RealisasiShipsideInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	cm, err := c.Movements.RecordRealisasiShipside(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Data realisasi dan shipside berhasil disimpan", cm)
}

func (c *ContainerMovementController) UpdateObstacles(ctx *fiber.Ctx) error {
	var input models.ObstaclesInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}
	cm, err := c.Movements.UpdateObstacles(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "Obstacles berhasil disimpan", cm)
}
