package router

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/internal/adapter/api/handler"
)

func SetupGameRouter(e *echo.Echo) {
	gameHandler := handler.GetGameHandler()

	games := e.Group("/v1/games")
	games.GET("", gameHandler.ListGames)
	games.GET("/featured", gameHandler.Featured)
	games.GET("/new-releases", gameHandler.NewReleases)
	games.GET("/options", gameHandler.Options)
	games.GET("/:id", gameHandler.GetGame)
	games.POST("/reload", gameHandler.Reload)
	games.PATCH("/filter", gameHandler.UpdateFilter)
	games.DELETE("/filter", gameHandler.ResetFilter)
}
