package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
)

func catalogGames() []entity.Game {
	return []entity.Game{
		{ID: "a", Title: "Alpha", Rating: 3, ReleaseDate: "2020-01-01", Platforms: []string{"PC"}, Genres: []string{"RPG"}},
		{ID: "b", Title: "Beta", Rating: 5, ReleaseDate: "2018-01-01", Platforms: []string{"Xbox"}, Genres: []string{"Racing"}},
		{ID: "c", Title: "Gamma", Rating: 4, ReleaseDate: "2023-06-01", Platforms: []string{"PC"}, Genres: []string{"Action"}},
	}
}

func loadedCatalog() CatalogState {
	return CatalogLoaded(InitialCatalogState(2), catalogGames(), time.Unix(0, 0))
}

func TestCatalogLoaded_MergesOptions(t *testing.T) {
	c := loadedCatalog()

	assert.Equal(t, 3, c.Total)
	assert.Contains(t, c.AllGenres, "Racing")
	assert.Equal(t, DefaultGenres, c.AllGenres[:len(DefaultGenres)])
}

func TestCatalogLoadFailed_KeepsGames(t *testing.T) {
	c := CatalogLoading(loadedCatalog())

	c = CatalogLoadFailed(c, "network down")

	assert.Len(t, c.Games, 3)
	assert.Equal(t, "network down", c.Error)
	assert.False(t, c.Loading)
}

func TestUpdateFilter_ResetsPage(t *testing.T) {
	c := SetPage(loadedCatalog(), 2)
	query := "gam"

	c = UpdateFilter(c, entity.FilterPatch{SearchQuery: &query})

	assert.Equal(t, 1, c.Page)
	assert.Equal(t, "gam", c.Filter.SearchQuery)
	assert.Equal(t, entity.SortPopular, c.Filter.SortBy)
	assert.Equal(t, []string{"c"}, gameIDs(FilteredGames(c)))

	c = ResetFilter(SetPage(c, 4))
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, entity.DefaultFilterSpec(), c.Filter)
}

func TestFeaturedAndNewReleasesAreSubsets(t *testing.T) {
	c := loadedCatalog()

	featured := Featured(c, 2)
	releases := NewReleases(c, 2)

	assert.Equal(t, []string{"b", "c"}, gameIDs(featured))
	assert.Equal(t, []string{"c", "a"}, gameIDs(releases))
	all := gameIDs(c.Games)
	for _, id := range append(gameIDs(featured), gameIDs(releases)...) {
		assert.Contains(t, all, id)
	}
}

func TestPagedGames(t *testing.T) {
	c := loadedCatalog()

	assert.Equal(t, []string{"b", "c"}, gameIDs(PagedGames(c)))
	assert.Equal(t, []string{"a"}, gameIDs(PagedGames(SetPage(c, 2))))
	assert.Empty(t, PagedGames(SetPage(c, 3)))
	assert.Equal(t, 1, SetPage(c, -5).Page)
}

func TestViews_MemoisedPerRevision(t *testing.T) {
	s := newTestStore()
	views := NewViews()
	s.UpdateCatalog(func(c CatalogState) CatalogState { return CatalogLoaded(c, catalogGames(), time.Now()) })

	first := views.Featured(s.State().Catalog, 1)
	require.Equal(t, []string{"b"}, gameIDs(first))

	// mutating a returned view must not leak into the cache
	first[0].Title = "changed"
	assert.Equal(t, "Beta", views.Featured(s.State().Catalog, 1)[0].Title)

	platforms := []string{"PC"}
	s.UpdateCatalog(func(c CatalogState) CatalogState {
		return UpdateFilter(c, entity.FilterPatch{Platforms: &platforms})
	})
	assert.Equal(t, []string{"c"}, gameIDs(views.Featured(s.State().Catalog, 1)))

	page := views.Page(s.State().Catalog)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func gameIDs(games []entity.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}
