package port

import (
	"shipops-app/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPortRoutes(app *fiber.App, db *gorm.DB, auth fiber.Handler) {
	handler := NewPortHandler(db)
	api := app.Group(config.MAIN_ROUTES+"/ports", auth)
	api.Get("/", handler.GetAllPorts)
	api.Post("/", handler.CreatePort)
	api.Put("/:id", handler.UpdatePort)
	api.Delete("/:id", handler.DeletePort)
}
