package router

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e)
	SetupGameRouter(e)
	SetupFavoriteRouter(e, authMiddleware)
	SetupCollectionRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
