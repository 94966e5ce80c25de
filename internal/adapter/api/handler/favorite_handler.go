package handler

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/internal/usecase"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) GetFavorites(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"items":          h.favoriteUseCase.List(),
		"count":          h.favoriteUseCase.Count(),
		"average_rating": h.favoriteUseCase.AverageRating(),
		"pending":        h.favoriteUseCase.State().Pending,
		"error":          h.favoriteUseCase.State().Error,
	})
}

// Toggle flips a game in or out of the favorites. mode=sync keeps the change
// on this device only; the default confirms it with the data service.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	gameID := c.Param("gameId")
	if gameID == "" {
		return response.Error(c, errors.BadRequest("Game ID is required", nil))
	}

	var (
		added bool
		err   error
	)
	switch c.QueryParam("mode") {
	case "sync":
		added, err = h.favoriteUseCase.ToggleSync(c.Request().Context(), gameID)
	case "", "confirmed":
		added, err = h.favoriteUseCase.Toggle(c.Request().Context(), gameID)
	default:
		return response.Error(c, errors.BadRequest("mode must be sync or confirmed", nil))
	}
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"game_id":     gameID,
		"is_favorite": added,
		"count":       h.favoriteUseCase.Count(),
	})
}

func (h *FavoriteHandler) Status(c echo.Context) error {
	gameID := c.Param("gameId")
	return response.Success(c, map[string]interface{}{
		"game_id":     gameID,
		"is_favorite": h.favoriteUseCase.IsFavorite(gameID),
		"pending":     h.favoriteUseCase.State().Pending[gameID] > 0,
	})
}

func (h *FavoriteHandler) Clear(c echo.Context) error {
	if err := h.favoriteUseCase.Clear(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"message": "Favorites cleared",
	})
}
