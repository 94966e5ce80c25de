package router

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/internal/adapter/api/handler"
	"gamecatalog/internal/adapter/api/middleware"
)

func SetupCollectionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	collectionHandler := handler.GetCollectionHandler()

	collection := e.Group("/v1/collection")
	collection.Use(authMiddleware.Authenticate)

	collection.GET("", collectionHandler.ListRecords)
	collection.GET("/stats", collectionHandler.Stats)
	collection.GET("/recent", collectionHandler.Recent)
	collection.POST("", collectionHandler.AddRecord)
	collection.PATCH("/:id", collectionHandler.UpdateRecord)
	collection.DELETE("/:id", collectionHandler.RemoveRecord)
}
