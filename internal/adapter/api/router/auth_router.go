package router

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/internal/adapter/api/handler"
)

// SetupAuthRouter initializes auth routes. They are public: each one acts on
// whatever session the client state holds.
func SetupAuthRouter(e *echo.Echo) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.GET("", authHandler.GetState)
	auth.POST("/check", authHandler.CheckSession)
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout)
	auth.DELETE("/error", authHandler.ClearError)
}
