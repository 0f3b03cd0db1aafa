package main

import (
	"log"

	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/pkg/logger"
	"backend/repository"
	"backend/routes"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer appLog.Sync()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		appLog.Fatal("database connect failed", "error", err)
	}
	if err := configs.SetupDatabase(); err != nil {
		appLog.Fatal("migration failed", "error", err)
	}
	if err := configs.SeedAdmin(); err != nil {
		appLog.Fatal("seed admin failed", "error", err)
	}
	if err := configs.SeedData(); err != nil {
		appLog.Fatal("seed data failed", "error", err)
	}
	db := configs.DB()

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	// Hub is the single Publisher; created here, torn down with the process.
	hub := ws.NewHub(appLog)

	// Services
	throttle := services.NewThrottle(orderRepo)
	orderSvc := services.NewOrderService(orderRepo, tableRepo, menuRepo, throttle, hub, appLog, cfg.OrderWindow)
	menuSvc := services.NewMenuService(menuRepo, hub)
	tableSvc := services.NewTableService(tableRepo, cfg.FrontendURL)
	reportSvc := services.NewReportService(orderRepo)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, cfg, routes.Controllers{
		Auth:   controllers.NewAuthController(authSvc),
		Menu:   controllers.NewMenuController(menuSvc),
		Tables: controllers.NewTableController(tableSvc),
		Orders: controllers.NewOrderController(orderSvc),
		Admin:  controllers.NewAdminController(menuSvc, orderSvc, tableSvc, reportSvc),
		Hub:    hub,
	})

	appLog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("server exited", "error", err)
	}
}
