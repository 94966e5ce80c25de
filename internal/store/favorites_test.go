package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
)

func TestToggleFavorite_TwiceRestoresMembership(t *testing.T) {
	game := entity.Game{ID: "g1", Rating: 4}
	f := InitialFavoritesState()

	once, added := ToggleFavorite(f, game)
	require.True(t, added)
	twice, added := ToggleFavorite(once, game)
	require.False(t, added)

	assert.Equal(t, FavoriteIDs(f), FavoriteIDs(twice))
	assert.Equal(t, uint64(2), twice.Revision)
	// the earlier value is untouched
	assert.Empty(t, f.Items)
	assert.Equal(t, []string{"g1"}, FavoriteIDs(once))
}

func TestRollbackToggle(t *testing.T) {
	g1 := entity.Game{ID: "g1"}
	g2 := entity.Game{ID: "g2"}
	f, _ := ToggleFavorite(InitialFavoritesState(), g1)
	f, _ = ToggleFavorite(f, g2)
	rev := ToggleRevision(f, "g2")

	rolled := RollbackToggle(f, g2, rev, true)

	assert.Equal(t, []string{"g1"}, FavoriteIDs(rolled))
}

func TestRollbackToggle_NewerToggleWins(t *testing.T) {
	g1 := entity.Game{ID: "g1"}
	f, _ := ToggleFavorite(InitialFavoritesState(), g1)
	stale := ToggleRevision(f, "g1")
	f, _ = ToggleFavorite(f, g1)
	f, _ = ToggleFavorite(f, g1)

	rolled := RollbackToggle(f, g1, stale, true)

	assert.True(t, IsFavorite(rolled, "g1"))
}

func TestPendingNeverHidesOptimisticState(t *testing.T) {
	game := entity.Game{ID: "g1"}
	f, _ := ToggleFavorite(InitialFavoritesState(), game)

	f = MarkPending(f, "g1")
	assert.True(t, IsFavorite(f, "g1"))
	assert.True(t, f.Loading)

	f = SettlePending(f, "g1", "")
	assert.Empty(t, f.Pending)
	assert.False(t, f.Loading)
}

func TestFavoritesSelectors(t *testing.T) {
	f := FavoritesLoaded(InitialFavoritesState(), []entity.Game{
		{ID: "a", Rating: 4}, {ID: "b", Rating: 2}, {ID: "a", Rating: 4},
	})

	assert.Equal(t, 2, FavoritesCount(f))
	assert.InDelta(t, 3.0, AverageFavoriteRating(f), 1e-9)
	assert.Zero(t, AverageFavoriteRating(InitialFavoritesState()))

	cleared := ClearFavorites(f)
	assert.Zero(t, FavoritesCount(cleared))
}
