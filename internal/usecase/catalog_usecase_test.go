package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/store"
	"gamecatalog/internal/testutil/mocks"
	"gamecatalog/pkg/errors"
)

func intPtr(v int) *int { return &v }

func sampleGames() []entity.Game {
	return []entity.Game{
		{ID: "g1", Title: "Celeste", Rating: 4.8, ReleaseDate: "2018-01-25", Achievements: intPtr(40), Platforms: []string{"PC", "Nintendo Switch"}, Genres: []string{"Indie"}},
		{ID: "g2", Title: "Doom", Rating: 4.5, ReleaseDate: "2016-05-13", Achievements: intPtr(54), Platforms: []string{"PC", "Xbox"}, Genres: []string{"Shooter", "Action"}},
		{ID: "g3", Title: "Hades", Rating: 4.9, ReleaseDate: "2020-09-17", Platforms: []string{"PC"}, Genres: []string{"Action", "Indie"}},
	}
}

type fixture struct {
	st         *store.Store
	games      *mocks.MockGameRepository
	favRepo    *mocks.MockFavoriteRepository
	colRepo    *mocks.MockCollectionRepository
	local      *mocks.MemoryLocalStore
	catalog    *CatalogUseCase
	favorites  *FavoriteUseCase
	collection *CollectionUseCase
}

func newFixture() *fixture {
	st := store.New(store.InitialState(store.Config{CatalogPageSize: 2, CollectionPageSize: 2}))
	f := &fixture{
		st:      st,
		games:   &mocks.MockGameRepository{},
		favRepo: &mocks.MockFavoriteRepository{},
		colRepo: &mocks.MockCollectionRepository{},
		local:   mocks.NewMemoryLocalStore(),
	}
	f.catalog = NewCatalogUseCase(st, f.games, time.Minute)
	f.favorites = NewFavoriteUseCase(st, f.favRepo, f.catalog, f.local)
	f.collection = NewCollectionUseCase(st, f.colRepo, f.catalog)
	return f
}

// withCatalog loads sampleGames through the use case.
func (f *fixture) withCatalog(t *testing.T) {
	t.Helper()
	f.games.On("List", mock.Anything).Return(sampleGames(), nil).Once()
	require.NoError(t, f.catalog.LoadAll(context.Background()))
}

func (f *fixture) signIn(userID string) {
	f.st.UpdateAuth(func(a store.AuthState) store.AuthState {
		a, _ = store.BeginSessionCheck(a)
		a, _ = store.SessionRestored(a, entity.User{ID: userID, Username: "ana"})
		return a
	})
}

func TestLoadAll_ReplacesCatalog(t *testing.T) {
	f := newFixture()
	f.withCatalog(t)

	c := f.catalog.State()
	assert.Len(t, c.Games, 3)
	assert.False(t, c.Loading)
	assert.Empty(t, c.Error)
	assert.False(t, c.LoadedAt.IsZero())
}

func TestLoadAll_FailureKeepsPreviousCatalog(t *testing.T) {
	f := newFixture()
	f.withCatalog(t)
	f.games.On("List", mock.Anything).Return(nil, errors.Unavailable("Failed to fetch games", nil)).Once()

	err := f.catalog.LoadAll(context.Background())

	require.Error(t, err)
	c := f.catalog.State()
	assert.Len(t, c.Games, 3)
	assert.False(t, c.Loading)
	assert.Equal(t, "Failed to fetch games", c.Error)
}

func TestUpdateFilter_ResetsPageAndNarrowsViews(t *testing.T) {
	f := newFixture()
	f.withCatalog(t)
	f.catalog.SetPage(2)
	require.Equal(t, 2, f.catalog.State().Page)

	genres := []string{"Indie"}
	c := f.catalog.UpdateFilter(entity.FilterPatch{Genres: &genres})

	assert.Equal(t, 1, c.Page)
	assert.Equal(t, entity.SortPopular, c.Filter.SortBy)
	filtered := f.catalog.Filtered()
	require.Len(t, filtered, 2)
	assert.Equal(t, "g3", filtered[0].ID)
	assert.Equal(t, "g1", filtered[1].ID)

	c = f.catalog.ResetFilter()
	assert.Equal(t, entity.DefaultFilterSpec(), c.Filter)
	assert.Len(t, f.catalog.Filtered(), 3)
}

func TestPage_SlicesFilteredList(t *testing.T) {
	f := newFixture()
	f.withCatalog(t)

	first := f.catalog.Page()
	assert.Equal(t, 3, first.TotalItems)
	assert.Equal(t, 2, first.TotalPages)
	assert.Len(t, first.Games, 2)

	f.catalog.SetPage(2)
	second := f.catalog.Page()
	require.Len(t, second.Games, 1)
	assert.Equal(t, "g2", second.Games[0].ID)
}

func TestFeaturedAndNewReleases_AreSubsetsOfCatalog(t *testing.T) {
	f := newFixture()
	f.withCatalog(t)
	all := map[string]bool{}
	for _, g := range f.catalog.State().Games {
		all[g.ID] = true
	}

	featured := f.catalog.Featured(2)
	releases := f.catalog.NewReleases(2)

	require.Len(t, featured, 2)
	assert.Equal(t, []string{"g3", "g1"}, []string{featured[0].ID, featured[1].ID})
	require.Len(t, releases, 2)
	assert.Equal(t, []string{"g3", "g1"}, []string{releases[0].ID, releases[1].ID})
	for _, g := range append(featured, releases...) {
		assert.True(t, all[g.ID])
	}
}

func TestGetGame_ServedFromCatalog(t *testing.T) {
	f := newFixture()
	f.withCatalog(t)

	game, err := f.catalog.GetGame(context.Background(), "g2")

	require.NoError(t, err)
	assert.Equal(t, "Doom", game.Title)
	require.NotNil(t, f.catalog.State().Current)
	assert.Equal(t, "g2", f.catalog.State().Current.ID)
	f.games.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)

	f.catalog.ClearCurrentGame()
	assert.Nil(t, f.catalog.State().Current)
}

func TestGetGame_FetchesOnceThenCaches(t *testing.T) {
	f := newFixture()
	f.games.On("GetByID", mock.Anything, "g9").Return(&entity.Game{ID: "g9", Title: "Outer Wilds"}, nil).Once()

	for i := 0; i < 3; i++ {
		game, err := f.catalog.GetGame(context.Background(), "g9")
		require.NoError(t, err)
		assert.Equal(t, "Outer Wilds", game.Title)
	}

	f.games.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetGame_NotFoundRecordsError(t *testing.T) {
	f := newFixture()
	f.games.On("GetByID", mock.Anything, "missing").Return(nil, errors.NotFound("Game", nil))

	_, err := f.catalog.GetGame(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Equal(t, "Game not found", f.catalog.State().Error)
	assert.Nil(t, f.catalog.State().Current)
}

func TestOptions_IncludeDefaultsAndSeenTags(t *testing.T) {
	f := newFixture()
	f.games.On("List", mock.Anything).Return([]entity.Game{
		{ID: "x", Title: "X", Platforms: []string{"Stadia"}, Genres: []string{"Puzzle"}},
	}, nil)
	require.NoError(t, f.catalog.LoadAll(context.Background()))

	platforms, genres := f.catalog.Options()

	assert.Contains(t, platforms, "PC")
	assert.Contains(t, platforms, "Stadia")
	assert.Contains(t, genres, "RPG")
	assert.Contains(t, genres, "Puzzle")
}
