package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "agrimarket/docs" // swagger docs

	"agrimarket/internal/auth"
	"agrimarket/internal/cache"
	"agrimarket/internal/config"
	"agrimarket/internal/db"
	"agrimarket/internal/handler"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
	"agrimarket/internal/router"
	"agrimarket/internal/service"
)

// @title AgriMarket API
// @version 1.0
// @description Farmer-to-consumer marketplace API with crop listings and JWT authentication.
// @host localhost:3001
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env from the working directory or the repo root, when present
	_ = godotenv.Load(".env", "../../.env")

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Schema is applied idempotently. A failure here (typically an unreachable
	// server) leaves the process running in a degraded mode where
	// store-dependent routes fail per request.
	if err := gormDB.AutoMigrate(&model.User{}, &model.Crop{}); err != nil {
		log.Printf("Warning: schema setup failed, store-backed routes will error: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	cropRepo := repository.NewCropRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService)
	cropService := service.NewCropService(cropRepo, userRepo, cacheClient)
	cartService := service.NewCartService()
	orderService := service.NewOrderService()

	authHandler := handler.NewAuthHandler(authService)
	cropHandler := handler.NewCropHandler(cropService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)

	router.Register(
		e,
		cfg,
		jwtService,
		authService,
		authHandler,
		cropHandler,
		cartHandler,
		orderHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
