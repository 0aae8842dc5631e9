package port

import (
	"errors"
	"strings"

	"shipops-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type PortHandler struct {
	DB *gorm.DB
}

func NewPortHandler(db *gorm.DB) *PortHandler {
	return &PortHandler{DB: db}
}

func respond(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"success": status < 400,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return ctx.Status(status).JSON(body)
}

func parseInput(ctx *fiber.Ctx) (PortInput, error) {
	var input PortInput
	if err := ctx.BodyParser(&input); err != nil {
		return input, errors.New("Invalid request body")
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Code))
		if code == "" {
			input.Code = nil
		} else {
			input.Code = &code
		}
	}
	if err := validate.Struct(input); err != nil {
		return input, errors.New("Nama port diperlukan (maks 100 karakter), code maks 20 karakter")
	}
	return input, nil
}

func (h *PortHandler) GetAllPorts(ctx *fiber.Ctx) error {
	ports := []Port{}
	if err := h.DB.WithContext(ctx.UserContext()).Order("name").Find(&ports).Error; err != nil {
		return respond(ctx, fiber.StatusInternalServerError, "Failed to retrieve ports", nil)
	}
	return respond(ctx, fiber.StatusOK, "Ports retrieved successfully", ports)
}

func (h *PortHandler) CreatePort(ctx *fiber.Ctx) error {
	input, err := parseInput(ctx)
	if err != nil {
		return respond(ctx, fiber.StatusBadRequest, err.Error(), nil)
	}

	p := Port{Name: input.Name, Code: input.Code}
	if err := h.DB.WithContext(ctx.UserContext()).Create(&p).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return respond(ctx, fiber.StatusConflict, "Nama atau code port sudah dipakai", nil)
		}
		return respond(ctx, fiber.StatusInternalServerError, err.Error(), nil)
	}
	return respond(ctx, fiber.StatusCreated, "Port created successfully", p)
}

func (h *PortHandler) UpdatePort(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return respond(ctx, fiber.StatusBadRequest, "Invalid ID", nil)
	}
	input, err := parseInput(ctx)
	if err != nil {
		return respond(ctx, fiber.StatusBadRequest, err.Error(), nil)
	}

	db := h.DB.WithContext(ctx.UserContext())
	var p Port
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respond(ctx, fiber.StatusNotFound, "Port not found", nil)
		}
		return respond(ctx, fiber.StatusInternalServerError, err.Error(), nil)
	}

	p.Name = input.Name
	p.Code = input.Code
	if err := db.Save(&p).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return respond(ctx, fiber.StatusConflict, "Nama atau code port sudah dipakai", nil)
		}
		return respond(ctx, fiber.StatusInternalServerError, err.Error(), nil)
	}
	return respond(ctx, fiber.StatusOK, "Port updated successfully", p)
}

// DeletePort ditolak selama masih ada voyage yang memakai port
func (h *PortHandler) DeletePort(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return respond(ctx, fiber.StatusBadRequest, "Invalid ID", nil)
	}

	err = h.DB.WithContext(ctx.UserContext()).Transaction(func(tx *gorm.DB) error {
		var p Port
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		var used int64
		if err := tx.Table("voyages").Where("port_id = ?", id).Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return errPortInUse
		}
		return tx.Delete(&p).Error
	})

	switch {
	case err == nil:
		return respond(ctx, fiber.StatusOK, "Port deleted successfully", nil)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return respond(ctx, fiber.StatusNotFound, "Port not found", nil)
	case errors.Is(err, errPortInUse):
		return respond(ctx, fiber.StatusConflict, err.Error(), nil)
	default:
		return respond(ctx, fiber.StatusInternalServerError, err.Error(), nil)
	}
}

var errPortInUse = errors.New("Port masih dipakai oleh voyage")
