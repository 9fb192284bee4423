package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-ordering/config"
	"github.com/yeremiapane/restaurant-ordering/controllers"
	"github.com/yeremiapane/restaurant-ordering/database"
	"github.com/yeremiapane/restaurant-ordering/middlewares"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status     bool              `json:"status"`
	Message    string            `json:"message"`
	Error      string            `json:"error"`
	Data       json.RawMessage   `json:"data"`
	Pagination *utils.Pagination `json:"pagination"`
}

const testStaffKey = "desk-key"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("controllers-secret", time.Hour)
	db := setupTestDB(t)
	tokens := utils.NewMemoryTokenStore()
	pub := notify.Nop{}

	registry, err := services.NewCategoryRegistry(config.DefaultCategories)
	require.NoError(t, err)

	completions := services.NewCompletionService(db, pub)
	suppliers := services.NewSupplierService(db, pub)

	orderCtrl := controllers.NewOrderController(services.NewOrderService(db, pub))
	supplierCtrl := controllers.NewSupplierController(services.NewDispatchService(db, pub), suppliers)
	vendorCtrl := controllers.NewVendorController(suppliers)
	completionCtrl := controllers.NewCompletionController(completions)
	refundCtrl := controllers.NewRefundController(services.NewRefundService(db, pub))
	receiptCtrl := controllers.NewReceiptController(services.NewReceiptService(completions, "Test Kitchen", "http://menu.test"))
	catalogCtrl := controllers.NewCatalogController(services.NewCatalogService(db, registry))
	authCtrl := controllers.NewAuthController(services.NewAuthService(db, tokens, testStaffKey))

	r := gin.New()
	r.POST("/api/auth", authCtrl.Authenticate)
	r.POST("/api/auth/staff", authCtrl.StaffLogin)
	r.GET("/api/auth/me", middlewares.AuthMiddleware(tokens), authCtrl.Me)
	r.POST("/api/auth/logout", middlewares.AuthMiddleware(tokens), authCtrl.Logout)

	r.GET("/api/catalog", catalogCtrl.ListCategories)
	r.GET("/api/catalog/:category", catalogCtrl.ListItems)
	r.POST("/api/catalog/:category", catalogCtrl.AddItem)
	r.PUT("/api/catalog/:category/:id", catalogCtrl.UpdateItem)
	r.DELETE("/api/catalog/:category/:id", catalogCtrl.DeleteItem)

	r.POST("/api/orders/place-order", orderCtrl.PlaceOrder)
	r.GET("/api/orders", orderCtrl.ListOrders)
	r.DELETE("/api/orders/cancel-order/:id", orderCtrl.CancelOrder)
	r.POST("/api/orders/mark-paid/:tableNumber", orderCtrl.MarkTablePaid)

	r.POST("/api/suppliers/send-notification", supplierCtrl.SendNotification)
	r.GET("/api/suppliers/orders/:identifier", supplierCtrl.OrdersForSupplier)
	r.POST("/api/suppliers", supplierCtrl.CreateSupplier)
	r.GET("/api/suppliers", supplierCtrl.ListSuppliers)
	r.DELETE("/api/suppliers/:id", supplierCtrl.DeleteSupplier)

	r.GET("/api/vendors/suppliers", vendorCtrl.ListVendors)
	r.POST("/api/vendors/suppliers", vendorCtrl.CreateVendor)
	r.GET("/api/vendors/suppliers/attendance/:attendance", vendorCtrl.ListByAttendance)
	r.PUT("/api/vendors/suppliers/:id/attendance", vendorCtrl.UpdateAttendance)
	r.DELETE("/api/vendors/suppliers/:id", vendorCtrl.DeleteVendor)
	r.POST("/api/vendors/suppliers/login", vendorCtrl.Login)

	r.POST("/orderdone/complete", completionCtrl.CompleteOrder)
	r.GET("/orderdone/all", completionCtrl.ListAll)
	r.GET("/orderdone/supplier/:supplierId", completionCtrl.ListBySupplier)
	r.GET("/orderdone/stats", completionCtrl.Stats)
	r.GET("/orderdone/stats/:supplierId", completionCtrl.Stats)
	r.GET("/orderdone/order/:orderId", completionCtrl.GetCompletion)
	r.GET("/orderdone/order/:orderId/receipt", receiptCtrl.CompletionReceipt)

	r.POST("/api/refund", refundCtrl.ProcessRefund)
	r.GET("/api/refunds", refundCtrl.ListRefunds)
	r.GET("/api/tables/:tableNumber/qr", receiptCtrl.TableQR)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dst))
}
