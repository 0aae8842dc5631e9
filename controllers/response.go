package controllers

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"shipops-app/services"
	"shipops-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// nama field di pesan error mengikuti tag json
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// parseBody membaca JSON lalu menjalankan validasi struct tag
func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return err
	}
	return nil
}

func success(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func fail(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// respondError memetakan error service ke status HTTP
func respondError(ctx *fiber.Ctx, err error) error {
	var violation *services.ViolationError
	if errors.As(err, &violation) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":    false,
			"message":    violation.Message,
			"violations": violation.Violations,
		})
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := fiber.Map{}
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validasi gagal",
			"errors":  fields,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fail(ctx, fiberErr.Code, fiberErr.Message)
	}

	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrMovementExists):
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fail(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict), utils.IsDuplicateKeyError(err):
		return fail(ctx, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return fail(ctx, fiber.StatusUnauthorized, err.Error())
	}

	log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	return fail(ctx, fiber.StatusInternalServerError, "Internal server error")
}

func paramID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := ctx.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}
