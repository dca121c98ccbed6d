package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/config"
	"github.com/foodtruckos/backend/controllers"
	"github.com/foodtruckos/backend/middlewares"
	"github.com/foodtruckos/backend/services"
)

// SetupRouter wires services, controllers and route groups. The webhook and
// health endpoints sit outside the tenant middleware: webhooks recover tenant
// context from provider metadata, not from the request host.
func SetupRouter(db *gorm.DB, cfg *config.Config, provider services.CheckoutProvider) *gin.Engine {
	catalogService := services.NewCatalogService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, provider, cfg.Currency, cfg.StripeWebhookSecret)
	volumeService := services.NewVolumeService(db)
	overviewService := services.NewOverviewService(db, volumeService)
	paymentStatusService := services.NewPaymentStatusService(db, cfg.StripeSecretKey)

	menuCtrl := controllers.NewMenuController(catalogService)
	orderCtrl := controllers.NewOrderController(orderService)
	checkoutCtrl := controllers.NewCheckoutController(paymentService)
	webhookCtrl := controllers.NewWebhookController(paymentService)
	metricsCtrl := controllers.NewMetricsController(volumeService)
	adminCtrl := controllers.NewAdminController(db, overviewService, paymentStatusService, []byte(cfg.JWTSecret))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/webhooks/stripe", webhookCtrl.StripeWebhook)

	api := r.Group("/api")
	api.Use(middlewares.TenantMiddleware(db))
	{
		api.GET("/menu", menuCtrl.GetMenu)
		api.POST("/orders", orderCtrl.CreateOrder)
		api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		api.POST("/checkout", checkoutCtrl.CreateCheckout)
		api.GET("/metrics/volume", metricsCtrl.GetVolume)

		admin := api.Group("/admin")
		admin.POST("/auth/login", adminCtrl.Login)

		authed := admin.Group("")
		authed.Use(middlewares.AuthMiddleware([]byte(cfg.JWTSecret)))
		{
			authed.GET("/orders", orderCtrl.GetAllOrders)
			authed.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
			authed.GET("/overview", adminCtrl.GetOverview)
			authed.GET("/payments/status", adminCtrl.GetPaymentStatus)
		}
	}

	return r
}
