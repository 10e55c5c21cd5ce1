package main

import (
	"context"
	"log"

	"catering-shop/config"
	_ "catering-shop/docs"
	"catering-shop/middleware"
	"catering-shop/routes"

	"github.com/gin-gonic/gin"
)

// @title Catering Shop API
// @version 1.0
// @description Single-storefront cart, booking and order hand-off service
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.ConnectRedis()
	defer config.CloseRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	bookingService, assetWorker := routes.SetupRoutes(router)

	ctx := context.Background()
	bookingService.RefreshAvailability(ctx)
	assetWorker.Install(ctx)
	assetWorker.Activate(ctx)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
