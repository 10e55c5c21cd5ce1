package routes

import (
	"catering-shop/assetcache"
	"catering-shop/config"
	"catering-shop/controllers"
	"catering-shop/libs"
	"catering-shop/middleware"
	"catering-shop/repositories"
	"catering-shop/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes wires repositories, services and controllers from the loaded
// config and returns the services main needs at boot.
func SetupRoutes(router *gin.Engine) (*services.BookingService, *assetcache.Worker) {
	cfg := config.AppConfig

	fees := services.FeeSchedule{
		Processing: cfg.ProcessingFee,
		Delivery:   cfg.DeliveryFee,
	}

	cartRepo := repositories.NewCartRepository(config.Redis, cfg.CartTTL)
	availabilityRepo := repositories.NewAvailabilityRepository(config.DB, cfg.OrderLimitPerDay)
	productRepo := repositories.NewProductRepository(config.DB)

	cartService := services.NewCartService(cartRepo, fees)
	bookingService := services.NewBookingService(availabilityRepo, services.BookingPolicy{
		LeadTimeDays:    cfg.LeadTimeDays,
		BlockedWeekdays: cfg.BlockedWeekdays,
		HolidayDates:    cfg.HolidayDates,
		SlotStartHour:   cfg.SlotStartHour,
		SlotEndHour:     cfg.SlotEndHour,
	})
	relay := libs.NewRelayClient(cfg.RelayURL)
	checkoutService := services.NewCheckoutService(cartRepo, availabilityRepo, relay, bookingService, services.CheckoutPolicy{
		OrderLimitPerDay: cfg.OrderLimitPerDay,
		DeliveryZips:     cfg.DeliveryZips,
		Fees:             fees,
	})
	productService := services.NewProductService(productRepo)

	cartCtrl := controllers.NewCartController(cartService)
	bookingCtrl := controllers.NewBookingController(bookingService)
	checkoutCtrl := controllers.NewCheckoutController(checkoutService, bookingService)
	productCtrl := controllers.NewProductController(productService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.GET("/products", productCtrl.GetAllProducts)

	session := router.Group("/")
	session.Use(middleware.SessionMiddleware())
	{
		session.GET("/cart", cartCtrl.GetCart)
		session.POST("/cart/items", cartCtrl.AddToCart)
		session.PATCH("/cart/items/:id", cartCtrl.UpdateQuantity)
		session.DELETE("/cart/items/:id", cartCtrl.RemoveItem)

		session.GET("/bookings/calendar", bookingCtrl.GetCalendar)
		session.POST("/bookings/date", bookingCtrl.SelectDate)
		session.POST("/bookings/time", bookingCtrl.SelectTime)
		session.GET("/bookings/selection", bookingCtrl.GetSelection)

		session.POST("/checkout", checkoutCtrl.Submit)
	}

	bucketStore := assetcache.NewRedisBucketStore(config.Redis)
	worker := assetcache.NewWorker(bucketStore, cfg.AssetCacheVersion, cfg.AssetOriginURL, cfg.AssetURLs)
	router.NoRoute(worker.Handler())

	return bookingService, worker
}
