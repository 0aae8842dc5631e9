package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipops-app/config"
	"shipops-app/controllers/idgen"
	"shipops-app/database"
	"shipops-app/migration"
	"shipops-app/routes"
	"shipops-app/services"
)

func main() {
	config.LoadConfig()

	// Pastikan database ada
	if err := database.EnsureDatabaseExists(config.DBName); err != nil {
		log.Fatalf("Failed to ensure database: %v", err)
	}

	// Connect to database
	db, err := database.OpenDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	if err := idgen.Init(config.SnowflakeNode); err != nil {
		log.Fatalf("Failed to init id generator: %v", err)
	}
	database.RunSeeders(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blocklist := services.NewBlocklist()
	blocklist.StartJanitor(ctx, 10*time.Minute)

	tokens := services.NewTokenService(config.JWTSecret, config.AccessTokenTTL(), config.RefreshTokenTTL(), blocklist)
	app := routes.NewApp(routes.NewDeps(db, tokens))

	go func() {
		port := config.APP_PORT
		log.Println("🚀 Server berjalan di port " + port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
