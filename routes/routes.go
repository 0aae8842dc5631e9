package routes

import (
	"time"

	"shipops-app/config"
	"shipops-app/controllers"
	"shipops-app/master/port"
	"shipops-app/middleware"
	"shipops-app/repositories"
	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps dependensi bersama untuk semua grup route
type Deps struct {
	DB     *gorm.DB
	Tokens *services.TokenService
	Auth   *middleware.AuthMiddleware
	Cost   *services.CostService
}

func NewDeps(db *gorm.DB, tokens *services.TokenService) *Deps {
	return &Deps{
		DB:     db,
		Tokens: tokens,
		Auth:   middleware.NewAuthMiddleware(tokens),
		Cost:   services.NewCostService(db),
	}
}

func SetupRoutes(app *fiber.App, d *Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Selamat datang di API Ship Operation System!")
	})

	api := app.Group(config.MAIN_ROUTES, middleware.RequestContext(time.Duration(config.RequestTimeout)*time.Second))
	api.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Selamat datang di API Ship Operation System!")
	})

	SetupAuthRoutes(app, d)
	SetupMasterRoutes(app, d)
	port.SetupPortRoutes(app, d.DB, d.Auth.Access)
	SetupContainerMovementRoutes(app, d)
	SetupPercentageRoutes(app, d)
	SetupCostRoutes(app, d)
}

func SetupMasterRoutes(app *fiber.App, d *Deps) {
	vesselController := controllers.NewVesselController(services.NewVesselService(d.DB))
	vessels := app.Group(config.MAIN_ROUTES+"/vessels", d.Auth.Access)
	vessels.Get("/", vesselController.GetAllVessels)
	vessels.Post("/", vesselController.CreateVessel)
	vessels.Get("/:id", vesselController.GetVesselByID)

	voyageController := controllers.NewVoyageController(services.NewVoyageService(d.DB))
	voyages := app.Group(config.MAIN_ROUTES+"/voyages", d.Auth.Access)
	voyages.Get("/", voyageController.GetAllVoyages)
	voyages.Post("/", voyageController.CreateVoyage)
	voyages.Get("/:id", voyageController.GetVoyageByID)
}

func SetupContainerMovementRoutes(app *fiber.App, d *Deps) {
	controller := controllers.NewContainerMovementController(
		services.NewContainerMovementService(d.DB, d.Cost),
		repositories.NewContainerMovementRepository(d.DB),
	)
	api := app.Group(config.MAIN_ROUTES+"/container_movements", d.Auth.Access)
	api.Get("/", controller.GetContainerMovements)
	api.Get("/export", controller.ExportExcel)
	api.Get("/summary-by-port", controller.SummaryByPort)
	api.Get("/:id", controller.GetContainerMovementByID)
	api.Post("/bongkaran", controller.CreateBongkaran)
	api.Post("/bongkaran/upload", controller.UploadBongkaran)
	api.Post("/pengajuan", controller.CreatePengajuan)
	api.Post("/acc_pengajuan", controller.CreateAccPengajuan)
	api.Post("/realisasi", controller.CreateRealisasi)
	api.Post("/shipside", controller.CreateShipside)
	api.Post("/realisasi_shipside", controller.CreateRealisasiShipside)
	api.Post("/obstacles", controller.UpdateObstacles)
}

func SetupPercentageRoutes(app *fiber.App, d *Deps) {
	controller := controllers.NewPercentageController(services.NewPercentageService(d.DB))
	app.Get(config.MAIN_ROUTES+"/percentages/ping", controller.Ping)

	api := app.Group(config.MAIN_ROUTES+"/percentages", d.Auth.Access)
	api.Get("/summary-by-port", controller.SummaryByPort)
	api.Get("/by-port/:port_id", controller.ByPort)
	api.Get("/container-movements/:id", controller.ByContainerMovement)
}

func SetupCostRoutes(app *fiber.App, d *Deps) {
	controller := controllers.NewCostController(d.Cost)
	api := app.Group(config.MAIN_ROUTES+"/cost", d.Auth.Access)
	api.Get("/cost-rates", controller.GetCostRates)
	api.Post("/cost-rates", controller.CreateCostRate)
	api.Put("/cost-rates/:id", controller.UpdateCostRate)
	api.Delete("/cost-rates/:id", controller.DeleteCostRate)
	api.Get("/cost-estimation/:voyage_id", controller.GetCostEstimation)
	api.Post("/cost-estimation/:voyage_id", controller.RecomputeCostEstimation)
}
