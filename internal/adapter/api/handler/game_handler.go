package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/service"
	"gamecatalog/internal/usecase"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/response"
)

type GameHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	featuredLimit  int
}

func NewGameHandler(catalogUseCase *usecase.CatalogUseCase, featuredLimit int) *GameHandler {
	return &GameHandler{
		catalogUseCase: catalogUseCase,
		featuredLimit:  featuredLimit,
	}
}

// ListGames returns the active page of the filtered catalog. A page query
// parameter moves the catalog to that page first.
func (h *GameHandler) ListGames(c echo.Context) error {
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid page number", err))
		}
		h.catalogUseCase.SetPage(page)
	}

	page := h.catalogUseCase.Page()
	return response.Paginated(c, page.Games, int64(page.TotalItems), page.Page, page.PageSize)
}

func (h *GameHandler) Featured(c echo.Context) error {
	limit, err := h.limit(c)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.catalogUseCase.Featured(limit))
}

func (h *GameHandler) NewReleases(c echo.Context) error {
	limit, err := h.limit(c)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.catalogUseCase.NewReleases(limit))
}

func (h *GameHandler) Options(c echo.Context) error {
	platforms, genres := h.catalogUseCase.Options()
	return response.Success(c, map[string]interface{}{
		"platforms": platforms,
		"genres":    genres,
	})
}

func (h *GameHandler) GetGame(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Game ID is required", nil))
	}

	game, err := h.catalogUseCase.GetGame(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, game)
}

func (h *GameHandler) Reload(c echo.Context) error {
	if err := h.catalogUseCase.LoadAll(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.catalogUseCase.State())
}

type filterRequest struct {
	Platforms   *[]string `json:"platforms"`
	Genres      *[]string `json:"genres"`
	SortBy      *string   `json:"sort_by"`
	SearchQuery *string   `json:"search_query" validate:"omitempty,max=200"`
}

func (h *GameHandler) UpdateFilter(c echo.Context) error {
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	patch := entity.FilterPatch{
		Platforms:   req.Platforms,
		Genres:      req.Genres,
		SearchQuery: req.SearchQuery,
	}
	if req.SortBy != nil {
		mode, ok := service.ParseSortMode(*req.SortBy)
		if !ok {
			return response.Error(c, errors.BadRequest("Unknown sort mode: "+*req.SortBy, nil))
		}
		patch.SortBy = &mode
	}

	return response.Success(c, h.catalogUseCase.UpdateFilter(patch))
}

func (h *GameHandler) ResetFilter(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.ResetFilter())
}

func (h *GameHandler) limit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return h.featuredLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.BadRequest("Invalid limit", err)
	}
	return limit, nil
}
