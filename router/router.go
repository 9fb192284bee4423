package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/controllers"
	"github.com/yeremiapane/restaurant-ordering/middlewares"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies is everything SetupRouter needs to build the services.
type Dependencies struct {
	DB        *gorm.DB
	Registry  *services.CategoryRegistry
	Tokens    utils.TokenStore
	Hub       *notify.Hub
	Publisher notify.Publisher

	CORSOrigins    []string
	StaffKey       string
	RestaurantName string
	PublicBaseURL  string
	// RateLimitRPS <= 0 disables the global per-IP limiter.
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigins))
	if deps.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(rate.Limit(deps.RateLimitRPS), deps.RateLimitBurst).RateLimit())
	}

	pub := deps.Publisher
	if pub == nil {
		pub = notify.Nop{}
	}
	tokens := deps.Tokens
	if tokens == nil {
		tokens = utils.NewMemoryTokenStore()
	}

	// Services
	orderSvc := services.NewOrderService(deps.DB, pub)
	dispatchSvc := services.NewDispatchService(deps.DB, pub)
	completionSvc := services.NewCompletionService(deps.DB, pub)
	refundSvc := services.NewRefundService(deps.DB, pub)
	supplierSvc := services.NewSupplierService(deps.DB, pub)
	catalogSvc := services.NewCatalogService(deps.DB, deps.Registry)
	authSvc := services.NewAuthService(deps.DB, tokens, deps.StaffKey)
	receiptSvc := services.NewReceiptService(completionSvc, deps.RestaurantName, deps.PublicBaseURL)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	catalogCtrl := controllers.NewCatalogController(catalogSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	supplierCtrl := controllers.NewSupplierController(dispatchSvc, supplierSvc)
	vendorCtrl := controllers.NewVendorController(supplierSvc)
	completionCtrl := controllers.NewCompletionController(completionSvc)
	refundCtrl := controllers.NewRefundController(refundSvc)
	receiptCtrl := controllers.NewReceiptController(receiptSvc)

	credentialLimiter := middlewares.NewStrictRateLimiter()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if deps.Hub != nil {
		liveCtrl := controllers.NewLiveController(deps.Hub)
		r.GET("/ws/:role", middlewares.WebSocketAuthMiddleware(tokens, deps.StaffKey), liveCtrl.Feed)
	}

	// Without a staff key the staff surface is left open for local use.
	var staffOnly, staffOrSupplier []gin.HandlerFunc
	if deps.StaffKey != "" {
		staffOnly = []gin.HandlerFunc{middlewares.AuthMiddleware(tokens), middlewares.RequireRole(utils.RoleStaff)}
		staffOrSupplier = []gin.HandlerFunc{middlewares.AuthMiddleware(tokens), middlewares.RequireRole(utils.RoleStaff, utils.RoleSupplier)}
	} else {
		utils.ErrorLogger.Warn("STAFF_KEY is not set; staff routes are unauthenticated")
	}

	api := r.Group("/api")

	auth := api.Group("/auth", middlewares.NoStore())
	{
		auth.POST("", credentialLimiter.RateLimit(), authCtrl.Authenticate)
		auth.POST("/staff", credentialLimiter.RateLimit(), authCtrl.StaffLogin)
		auth.GET("/me", middlewares.AuthMiddleware(tokens), authCtrl.Me)
		auth.POST("/logout", middlewares.AuthMiddleware(tokens), authCtrl.Logout)
	}

	catalog := api.Group("/catalog")
	{
		catalog.GET("", catalogCtrl.ListCategories)
		catalog.GET("/:category", catalogCtrl.ListItems)
		catalog.GET("/:category/:id", catalogCtrl.GetItem)

		manage := catalog.Group("", staffOnly...)
		manage.POST("/:category", catalogCtrl.AddItem)
		manage.PUT("/:category/:id", catalogCtrl.UpdateItem)
		manage.DELETE("/:category/:id", catalogCtrl.DeleteItem)
	}

	orders := api.Group("/orders")
	{
		orders.POST("/place-order", orderCtrl.PlaceOrder)
		orders.GET("", orderCtrl.ListOrders)
		orders.DELETE("/cancel-order/:id", orderCtrl.CancelOrder)
		orders.POST("/mark-paid/:tableNumber", append(staffOnly, orderCtrl.MarkTablePaid)...)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("/orders/:identifier", append(staffOrSupplier, supplierCtrl.OrdersForSupplier)...)

		manage := suppliers.Group("", staffOnly...)
		manage.POST("/send-notification", supplierCtrl.SendNotification)
		manage.GET("", supplierCtrl.ListSuppliers)
		manage.POST("", supplierCtrl.CreateSupplier)
		manage.PUT("/:id", supplierCtrl.UpdateSupplier)
		manage.DELETE("/:id", supplierCtrl.DeleteSupplier)
	}

	vendors := api.Group("/vendors/suppliers")
	{
		vendors.POST("/login", credentialLimiter.RateLimit(), middlewares.NoStore(), vendorCtrl.Login)

		manage := vendors.Group("", staffOnly...)
		manage.GET("", vendorCtrl.ListVendors)
		manage.POST("", vendorCtrl.CreateVendor)
		manage.GET("/attendance/:attendance", vendorCtrl.ListByAttendance)
		manage.PUT("/:id", vendorCtrl.UpdateVendor)
		manage.PUT("/:id/attendance", vendorCtrl.UpdateAttendance)
		manage.DELETE("/:id", vendorCtrl.DeleteVendor)
	}

	refunds := api.Group("", append([]gin.HandlerFunc{middlewares.NoStore()}, staffOnly...)...)
	{
		refunds.POST("/refund", refundCtrl.ProcessRefund)
		refunds.GET("/refunds", refundCtrl.ListRefunds)
	}

	api.GET("/tables/:tableNumber/qr", middlewares.DocumentLogger("table QR", "tableNumber"), receiptCtrl.TableQR)

	done := r.Group("/orderdone")
	{
		suppliersDone := done.Group("", staffOrSupplier...)
		suppliersDone.POST("/complete", completionCtrl.CompleteOrder)
		suppliersDone.GET("/supplier/:supplierId", completionCtrl.ListBySupplier)
		suppliersDone.GET("/order/:orderId", completionCtrl.GetCompletion)
		suppliersDone.GET("/order/:orderId/receipt", middlewares.DocumentLogger("receipt", "orderId"), receiptCtrl.CompletionReceipt)

		staffDone := done.Group("", staffOnly...)
		staffDone.GET("/all", completionCtrl.ListAll)
		staffDone.GET("/stats", completionCtrl.Stats)
		staffDone.GET("/stats/:supplierId", completionCtrl.Stats)
	}

	return r
}
