package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/store"
	"gamecatalog/internal/usecase"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/response"
	"gamecatalog/pkg/utils"
)

const recentRecordsLimit = 5

type CollectionHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewCollectionHandler(collectionUseCase *usecase.CollectionUseCase) *CollectionHandler {
	return &CollectionHandler{
		collectionUseCase: collectionUseCase,
	}
}

// ListRecords returns one page of the collection. status and q replace the
// list view (and rewind to page one) when present; page then selects a page.
func (h *CollectionHandler) ListRecords(c echo.Context) error {
	params := c.QueryParams()
	if params.Has("status") || params.Has("q") {
		status := entity.GameStatus(c.QueryParam("status"))
		if status != "" && !status.Valid() {
			return response.Error(c, errors.BadRequest("Unknown status: "+string(status), nil))
		}
		h.collectionUseCase.SetView(store.RecordView{Status: status, Search: c.QueryParam("q")})
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid page number", err))
		}
		h.collectionUseCase.SetPage(page)
	}

	state := h.collectionUseCase.State()
	return response.Paginated(c, h.collectionUseCase.PagedRecords(), int64(h.collectionUseCase.VisibleCount()), state.Page, state.PageSize)
}

func (h *CollectionHandler) Stats(c echo.Context) error {
	return response.Success(c, h.collectionUseCase.Stats())
}

func (h *CollectionHandler) Recent(c echo.Context) error {
	params := utils.GetPaginationParams(c, recentRecordsLimit)
	return response.Success(c, h.collectionUseCase.RecentRecords(params.PageSize))
}

type addRecordRequest struct {
	GameID string `json:"game_id" validate:"required"`
	usecase.RecordInput
}

func (h *CollectionHandler) AddRecord(c echo.Context) error {
	var req addRecordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	record, err := h.collectionUseCase.AddRecord(c.Request().Context(), uid, req.GameID, req.RecordInput)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, record)
}

func (h *CollectionHandler) UpdateRecord(c echo.Context) error {
	var req entity.RecordPatch
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	record, err := h.collectionUseCase.UpdateRecord(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, record)
}

func (h *CollectionHandler) RemoveRecord(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.collectionUseCase.RemoveRecord(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"message": "Record removed from collection",
	})
}
