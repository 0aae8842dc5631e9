package routes

import (
	"shipops-app/config"
	"shipops-app/controllers"
	"shipops-app/middleware"
	"shipops-app/repositories"
	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, d *Deps) {
	authController := controllers.NewAuthController(
		services.NewUserService(repositories.NewUserRepository(d.DB)),
		d.Tokens,
	)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/register", authController.Register)
	api.Post("/login", middleware.LoginLimiter(config.LoginRateLimit), authController.Login)
	api.Post("/refresh", d.Auth.Refresh, authController.Refresh)
	api.Post("/logout", d.Auth.Access, authController.Logout)
	api.Get("/me", d.Auth.Access, authController.Me)
}
