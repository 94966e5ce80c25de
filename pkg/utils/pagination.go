package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from request.
// A missing limit falls back to defaultSize.
func GetPaginationParams(c echo.Context, defaultSize int) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = defaultSize
	}

	offset := (page - 1) * pageSize

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   offset,
	}
}

// Paginate returns items[(page-1)*size : page*size], clipped to the slice bounds.
// Pages are 1-based; out-of-range pages yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// TotalPages is the number of pages needed for total items, never below 1.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	pages := total / size
	if total%size > 0 {
		pages++
	}
	return pages
}
