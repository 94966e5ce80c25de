package store

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/pkg/utils"
)

const viewCacheSize = 64

// CatalogPage is one page of the filtered catalog.
type CatalogPage struct {
	Games      []entity.Game `json:"games"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}

// Views memoises the derived catalog views. Entries are keyed by catalog
// revision, so any catalog update makes older entries unreachable and they age
// out of the LRU.
type Views struct {
	cache *lru.Cache[string, []entity.Game]
}

func NewViews() *Views {
	cache, err := lru.New[string, []entity.Game](viewCacheSize)
	if err != nil {
		panic(fmt.Sprintf("store: view cache: %v", err))
	}
	return &Views{cache: cache}
}

func (v *Views) Filtered(c CatalogState) []entity.Game {
	return v.memo(c, "filtered", 0, func() []entity.Game { return FilteredGames(c) })
}

func (v *Views) Featured(c CatalogState, limit int) []entity.Game {
	return v.memo(c, "featured", limit, func() []entity.Game { return Featured(c, limit) })
}

func (v *Views) NewReleases(c CatalogState, limit int) []entity.Game {
	return v.memo(c, "new", limit, func() []entity.Game { return NewReleases(c, limit) })
}

func (v *Views) Page(c CatalogState) CatalogPage {
	filtered := v.Filtered(c)
	return CatalogPage{
		Games:      utils.Paginate(filtered, c.Page, c.PageSize),
		Page:       c.Page,
		PageSize:   c.PageSize,
		TotalItems: len(filtered),
		TotalPages: utils.TotalPages(len(filtered), c.PageSize),
	}
}

// memo returns a fresh copy so callers may sort or trim the result.
func (v *Views) memo(c CatalogState, kind string, limit int, compute func() []entity.Game) []entity.Game {
	key := fmt.Sprintf("%s:%d:%d", kind, c.Revision, limit)
	games, ok := v.cache.Get(key)
	if !ok {
		games = compute()
		v.cache.Add(key, games)
	}
	return append([]entity.Game{}, games...)
}
