package api

import (
	"context"
	"net/http"
	"sync"

	"catering-shop/config"
	_ "catering-shop/docs"
	"catering-shop/middleware"
	"catering-shop/routes"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.ConnectDB()
		config.ConnectRedis()

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		bookingService, assetWorker := routes.SetupRoutes(router)

		ctx := context.Background()
		bookingService.RefreshAvailability(ctx)
		assetWorker.Install(ctx)
		assetWorker.Activate(ctx)
	})
}

// Handler adapts the engine for serverless deployments.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
