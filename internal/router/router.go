package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bigbrother/internal/auth"
	"bigbrother/internal/config"
	"bigbrother/internal/handler"
	"bigbrother/internal/repository"
)

// Register wires routes and middleware. The auth gate runs on every /api
// request and only attributes a principal; enforcement happens per group via
// RequirePrincipal, so /api/auth stays reachable without credentials.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	cameraHandler *handler.CameraHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", auth.Gate(jwtService, userRepo, cfg.InternalAPIToken))

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// User routes (end-user token required)
	users := api.Group("/users", auth.RequirePrincipal())
	users.GET("", userHandler.ListUsers)
	users.POST("", userHandler.CreateUser)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	// Camera routes (end-user token or internal-service token)
	cameras := api.Group("/cameras", auth.RequirePrincipal())
	cameras.GET("", cameraHandler.ListCameras)
	cameras.POST("", cameraHandler.CreateCamera)
	cameras.GET("/search", cameraHandler.SearchCameras)
	cameras.GET("/:id", cameraHandler.GetCamera)
	cameras.PUT("/:id", cameraHandler.UpdateCamera)
	cameras.DELETE("/:id", cameraHandler.DeleteCamera)

	// Upload proxy routes
	uploads := api.Group("/upload", auth.RequirePrincipal())
	uploads.POST("/image", uploadHandler.UploadImage)
	uploads.POST("/video", uploadHandler.UploadVideo)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
