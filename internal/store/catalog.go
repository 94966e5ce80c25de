package store

import (
	"time"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/service"
	"gamecatalog/pkg/utils"
)

var (
	DefaultPlatforms = []string{"PC", "PlayStation", "Xbox", "Nintendo Switch"}
	DefaultGenres    = []string{"Action", "RPG", "Strategy", "Adventure", "Shooter", "Simulation", "Sports", "Horror", "Indie", "Fantasy", "Sci-Fi"}
)

type CatalogState struct {
	Games    []entity.Game     `json:"-"`
	Current  *entity.Game      `json:"current,omitempty"`
	Filter   entity.FilterSpec `json:"filter"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int               `json:"total"`
	Loading  bool              `json:"loading"`
	Error    string            `json:"error,omitempty"`
	LoadedAt time.Time         `json:"loaded_at,omitempty"`

	AllPlatforms []string `json:"all_platforms"`
	AllGenres    []string `json:"all_genres"`

	// Revision increases on every catalog update; derived views are cached by it.
	Revision uint64 `json:"revision"`
}

func InitialCatalogState(pageSize int) CatalogState {
	if pageSize <= 0 {
		pageSize = 12
	}
	return CatalogState{
		Games:        []entity.Game{},
		Filter:       entity.DefaultFilterSpec(),
		Page:         1,
		PageSize:     pageSize,
		AllPlatforms: append([]string{}, DefaultPlatforms...),
		AllGenres:    append([]string{}, DefaultGenres...),
	}
}

func CatalogLoading(c CatalogState) CatalogState {
	c.Loading = true
	c.Error = ""
	return c
}

// CatalogLoaded replaces the collection wholesale.
func CatalogLoaded(c CatalogState, games []entity.Game, at time.Time) CatalogState {
	c.Games = append([]entity.Game{}, games...)
	c.Total = len(games)
	c.Loading = false
	c.Error = ""
	c.LoadedAt = at
	c.AllPlatforms = mergeOptions(c.AllPlatforms, games, func(g entity.Game) []string { return g.Platforms })
	c.AllGenres = mergeOptions(c.AllGenres, games, func(g entity.Game) []string { return g.Genres })
	if c.Current != nil {
		for _, g := range games {
			if g.ID == c.Current.ID {
				current := g
				c.Current = &current
				break
			}
		}
	}
	return c
}

// CatalogLoadFailed keeps the last-known collection.
func CatalogLoadFailed(c CatalogState, errMsg string) CatalogState {
	c.Loading = false
	c.Error = errMsg
	return c
}

// UpdateFilter merges patch into the filter and rewinds to the first page.
func UpdateFilter(c CatalogState, patch entity.FilterPatch) CatalogState {
	c.Filter = c.Filter.Merge(patch)
	c.Page = 1
	return c
}

func ResetFilter(c CatalogState) CatalogState {
	c.Filter = entity.DefaultFilterSpec()
	c.Page = 1
	return c
}

func SetPage(c CatalogState, page int) CatalogState {
	if page < 1 {
		page = 1
	}
	c.Page = page
	return c
}

func SetCurrentGame(c CatalogState, game entity.Game) CatalogState {
	c.Current = &game
	c.Loading = false
	c.Error = ""
	return c
}

func ClearCurrentGame(c CatalogState) CatalogState {
	c.Current = nil
	return c
}

// FilteredGames is the full derived list for the active filter.
func FilteredGames(c CatalogState) []entity.Game {
	return service.ApplyFilters(c.Games, c.Filter)
}

// PagedGames is the active page of FilteredGames.
func PagedGames(c CatalogState) []entity.Game {
	return utils.Paginate(FilteredGames(c), c.Page, c.PageSize)
}

// TopGames applies the active filter under a different ordering and keeps the
// first limit entries. Featured and new-release shelves are built this way so
// they are always subsets of the collection.
func TopGames(c CatalogState, mode entity.SortMode, limit int) []entity.Game {
	spec := c.Filter
	spec.SortBy = mode
	games := service.ApplyFilters(c.Games, spec)
	if limit >= 0 && len(games) > limit {
		games = games[:limit]
	}
	return games
}

func Featured(c CatalogState, limit int) []entity.Game {
	return TopGames(c, entity.SortRating, limit)
}

func NewReleases(c CatalogState, limit int) []entity.Game {
	return TopGames(c, entity.SortNewest, limit)
}

func GameByID(c CatalogState, id string) (entity.Game, bool) {
	for _, g := range c.Games {
		if g.ID == id {
			return g, true
		}
	}
	return entity.Game{}, false
}

// GamesIndex maps game id to game for joins from other regions.
func GamesIndex(c CatalogState) map[string]entity.Game {
	index := make(map[string]entity.Game, len(c.Games))
	for _, g := range c.Games {
		index[g.ID] = g
	}
	return index
}

func mergeOptions(base []string, games []entity.Game, tags func(entity.Game) []string) []string {
	out := append([]string{}, base...)
	seen := make(map[string]struct{}, len(out))
	for _, v := range out {
		seen[v] = struct{}{}
	}
	for _, g := range games {
		for _, tag := range tags(g) {
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
