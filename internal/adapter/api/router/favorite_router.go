package router

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/internal/adapter/api/handler"
	"gamecatalog/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)

	favorites.GET("", favoriteHandler.GetFavorites)
	favorites.DELETE("", favoriteHandler.Clear)
	favorites.POST("/:gameId/toggle", favoriteHandler.Toggle)
	favorites.GET("/:gameId/status", favoriteHandler.Status)
}
