package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"agrimarket/internal/auth"
	"agrimarket/internal/config"
	"agrimarket/internal/handler"
	"agrimarket/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	cropHandler *handler.CropHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "OK",
			"message":   "AgriMarket API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/crops", cropHandler.List)
	api.GET("/crops/:id", cropHandler.Get)

	// Secured routes (require a bearer token that resolves to a live user)
	protect := []echo.MiddlewareFunc{bearerAuth(jwtService), resolveUser(authService)}

	secured := api.Group("", protect...)
	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/profile", authHandler.UpdateProfile)

	secured.POST("/crops", cropHandler.Create)
	secured.GET("/crops/my-crops", cropHandler.ListMine)
	secured.PUT("/crops/:id", cropHandler.Update)
	secured.DELETE("/crops/:id", cropHandler.Delete)
	secured.POST("/crops/:id/images", cropHandler.UploadImages)
	secured.DELETE("/crops/:id/images/:imageIndex", cropHandler.DeleteImage)

	cart := api.Group("/cart", protect...)
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.DELETE("", cartHandler.Clear)
	cart.GET("/summary", cartHandler.Summary)
	cart.PUT("/:itemId", cartHandler.UpdateItem)
	cart.DELETE("/:itemId", cartHandler.RemoveItem)

	orders := api.Group("/orders", protect...)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/stats", orderHandler.Stats)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)
	orders.PUT("/:id/payment", orderHandler.UpdatePayment)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
