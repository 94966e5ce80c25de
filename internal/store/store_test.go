package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
)

func newTestStore() *Store {
	return New(InitialState(Config{CatalogPageSize: 2, CollectionPageSize: 2}))
}

func TestStore_SubscribeReceivesRegionAndSnapshot(t *testing.T) {
	s := newTestStore()
	var got []Region
	unsubscribe := s.Subscribe(func(region Region, state State) {
		got = append(got, region)
		if region == RegionCatalog {
			assert.Equal(t, 3, state.Catalog.Page)
		}
	})

	s.UpdateCatalog(func(c CatalogState) CatalogState { return SetPage(c, 3) })
	s.UpdateAuth(ClearAuthError)
	unsubscribe()
	s.UpdateFavorites(ClearFavoritesError)

	assert.Equal(t, []Region{RegionCatalog, RegionAuth}, got)
}

func TestStore_ListenerMayReadState(t *testing.T) {
	s := newTestStore()
	done := make(chan State, 1)
	s.Subscribe(func(region Region, _ State) {
		// would deadlock if listeners ran under the lock
		done <- s.State()
	})

	s.UpdateProfile(func(p ProfileState) ProfileState { return SetRecordPage(p, 2) })

	assert.Equal(t, 2, (<-done).Profile.Page)
}

func TestStore_ConcurrentTogglesAreAtomic(t *testing.T) {
	s := newTestStore()
	game := entity.Game{ID: "g1"}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.UpdateFavorites(func(f FavoritesState) FavoritesState {
				next, _ := ToggleFavorite(f, game)
				return next
			})
		}()
	}
	wg.Wait()

	state := s.State().Favorites
	assert.Equal(t, uint64(100), state.Revision)
	assert.False(t, IsFavorite(state, "g1"))
}

func TestStore_CatalogRevisionAdvances(t *testing.T) {
	s := newTestStore()
	before := s.State().Catalog.Revision

	s.UpdateCatalog(ResetFilter)
	s.UpdateCatalog(ResetFilter)

	require.Equal(t, before+2, s.State().Catalog.Revision)
}

func TestStore_ConcurrentUpdatesNotifyInOrder(t *testing.T) {
	s := newTestStore()
	var seen []uint64
	s.Subscribe(func(region Region, state State) {
		if region == RegionCatalog {
			seen = append(seen, state.Catalog.Revision)
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			s.UpdateCatalog(func(c CatalogState) CatalogState { return SetPage(c, page) })
		}(i + 1)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.notifying
	}, time.Second, time.Millisecond)
	require.Len(t, seen, 50)
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i])
	}
	assert.Equal(t, s.State().Catalog.Revision, seen[len(seen)-1])
}

func TestStore_ListenerUpdateIsDeliveredAfterCurrent(t *testing.T) {
	s := newTestStore()
	var got []Region
	s.Subscribe(func(region Region, state State) {
		got = append(got, region)
		if region == RegionCatalog {
			s.UpdateProfile(func(p ProfileState) ProfileState { return SetRecordPage(p, 2) })
		}
	})

	s.UpdateCatalog(ResetFilter)

	assert.Equal(t, []Region{RegionCatalog, RegionProfile}, got)
	assert.Equal(t, 2, s.State().Profile.Page)
}
