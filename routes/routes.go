package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth   *controllers.AuthController
	Menu   *controllers.MenuController
	Tables *controllers.TableController
	Orders *controllers.OrderController
	Admin  *controllers.AdminController
	Hub    *ws.Hub
}

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Live updates: table sessions and the staff dashboard share one
	// socket endpoint and pick channels via join messages.
	r.GET("/ws", ctrl.Hub.HandleWebSocket)

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/validate", middlewares.AuthMiddleware(cfg.JWTSecret), ctrl.Auth.Validate)
	}

	// Public (customer-facing)
	api.GET("/menu", ctrl.Menu.List)
	api.GET("/menu/items/:id", ctrl.Menu.Item)
	api.GET("/tables", ctrl.Tables.List)
	api.GET("/tables/:number", ctrl.Tables.Check)
	api.POST("/orders", ctrl.Orders.Place)
	api.GET("/orders/:id", ctrl.Orders.Detail)
	api.GET("/orders/table/:number", ctrl.Orders.ListForTable)

	// Admin (staff only)
	admin := api.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/menu-items", ctrl.Admin.MenuItems)
		admin.POST("/menu-items", ctrl.Admin.CreateMenuItem)
		admin.PUT("/menu-items/:id", ctrl.Admin.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", ctrl.Admin.DeleteMenuItem)

		admin.GET("/orders/active", ctrl.Admin.ActiveOrders)
		admin.PUT("/orders/:id/status", ctrl.Admin.UpdateOrderStatus)

		admin.GET("/tables", ctrl.Admin.AdminTables)
		admin.POST("/tables", ctrl.Admin.CreateTable)
		admin.DELETE("/tables/:id", ctrl.Admin.DeleteTable)
		admin.GET("/tables/:id/qrcode", ctrl.Admin.TableQRCode)

		admin.GET("/dashboard/stats", ctrl.Admin.DashboardStats)
		admin.GET("/analytics/sales-by-hour", ctrl.Admin.SalesByHour)
		admin.GET("/analytics/daily-trends", ctrl.Admin.DailyTrends)
		admin.GET("/analytics/product-performance", ctrl.Admin.ProductPerformance)
		admin.GET("/analytics/category-performance", ctrl.Admin.CategoryPerformance)
	}
}
