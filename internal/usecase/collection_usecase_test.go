package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/store"
	"gamecatalog/pkg/errors"
)

var fixedNow = time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC)

func newCollectionFixture(t *testing.T) *fixture {
	f := newFixture()
	f.withCatalog(t)
	f.signIn("u1")
	f.collection.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) addRecord(t *testing.T, gameID string, input RecordInput) *entity.UserGameRecord {
	t.Helper()
	f.colRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.UserGameRecord) bool {
		return r.GameID == gameID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.UserGameRecord).ID = "rec-" + gameID
	}).Return(nil).Once()
	record, err := f.collection.AddRecord(context.Background(), "u1", gameID, input)
	require.NoError(t, err)
	return record
}

func TestAddRecord_AppliesDefaults(t *testing.T) {
	f := newCollectionFixture(t)

	record := f.addRecord(t, "g3", RecordInput{HoursPlayed: 12})

	assert.Equal(t, entity.StatusPlaying, record.Status)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), record.LastPlayed)
	assert.Zero(t, record.CompletionPercentage)

	p := f.collection.State()
	require.Len(t, p.Records, 1)
	assert.Equal(t, "rec-g3", p.Records[0].ID)
	assert.Equal(t, 1, p.Stats.TotalGames)
	assert.Equal(t, 12, p.Stats.TotalHours)
	assert.Equal(t, 1, p.Stats.GamesByStatus[entity.StatusPlaying])
}

func TestAddRecord_DerivesCompletionFromAchievements(t *testing.T) {
	f := newCollectionFixture(t)

	record := f.addRecord(t, "g1", RecordInput{AchievementsCompleted: 10, Status: entity.StatusCompleted})

	assert.Equal(t, 40, record.TotalAchievements)
	assert.InDelta(t, 25.0, record.CompletionPercentage, 0.001)
	assert.Equal(t, entity.StatusCompleted, record.Status)
}

func TestAddRecord_DuplicateIsConflict(t *testing.T) {
	f := newCollectionFixture(t)
	f.addRecord(t, "g1", RecordInput{})

	_, err := f.collection.AddRecord(context.Background(), "u1", "g1", RecordInput{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.Len(t, f.collection.State().Records, 1)
	f.colRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAddRecord_RemoteConflictIsSurfaced(t *testing.T) {
	f := newCollectionFixture(t)
	f.colRepo.On("Create", mock.Anything, mock.Anything).Return(errors.Conflict("Game is already in your collection"))

	_, err := f.collection.AddRecord(context.Background(), "u1", "g2", RecordInput{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.Empty(t, f.collection.State().Records)
	assert.Equal(t, "Game is already in your collection", f.collection.State().Error)
}

func TestAddRecord_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RecordInput
	}{
		{"rating above five", RecordInput{UserRating: 5.5}},
		{"negative hours", RecordInput{HoursPlayed: -1}},
		{"unknown status", RecordInput{Status: "abandoned"}},
		{"achievements above game total", RecordInput{AchievementsCompleted: 41}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCollectionFixture(t)

			_, err := f.collection.AddRecord(context.Background(), "u1", "g1", tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeValidation))
			f.colRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateRecord_MergesAndRecomputesStats(t *testing.T) {
	f := newCollectionFixture(t)
	f.addRecord(t, "g1", RecordInput{UserRating: 4, HoursPlayed: 5})
	f.addRecord(t, "g2", RecordInput{UserRating: 2, HoursPlayed: 3})
	f.colRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	hours := 20
	done := 20
	status := entity.StatusCompleted
	updated, err := f.collection.UpdateRecord(context.Background(), "rec-g1", entity.RecordPatch{
		HoursPlayed:           &hours,
		AchievementsCompleted: &done,
		Status:                &status,
	})

	require.NoError(t, err)
	assert.Equal(t, 20, updated.HoursPlayed)
	assert.InDelta(t, 50.0, updated.CompletionPercentage, 0.001)
	assert.Equal(t, 4.0, updated.UserRating)
	assert.Equal(t, fixedNow, updated.UpdatedAt)

	stats := f.collection.Stats()
	assert.Equal(t, 23, stats.TotalHours)
	assert.InDelta(t, 3.0, stats.AverageRating, 0.001)
	assert.Equal(t, 1, stats.GamesByStatus[entity.StatusCompleted])
	assert.Equal(t, 1, stats.GamesByStatus[entity.StatusPlaying])
}

func TestUpdateRecord_UnknownRecord(t *testing.T) {
	f := newCollectionFixture(t)
	rating := 3.0

	_, err := f.collection.UpdateRecord(context.Background(), "nope", entity.RecordPatch{UserRating: &rating})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestRemoveRecord_RecomputesStats(t *testing.T) {
	f := newCollectionFixture(t)
	f.addRecord(t, "g1", RecordInput{HoursPlayed: 5})
	f.addRecord(t, "g2", RecordInput{HoursPlayed: 3})
	f.colRepo.On("Delete", mock.Anything, "u1", "rec-g1").Return(nil)

	require.NoError(t, f.collection.RemoveRecord(context.Background(), "u1", "rec-g1"))

	p := f.collection.State()
	require.Len(t, p.Records, 1)
	assert.Equal(t, "rec-g2", p.Records[0].ID)
	assert.Equal(t, 1, p.Stats.TotalGames)
	assert.Equal(t, 3, p.Stats.TotalHours)
}

func TestRemoveRecord_FailureKeepsRecord(t *testing.T) {
	f := newCollectionFixture(t)
	f.addRecord(t, "g1", RecordInput{})
	f.colRepo.On("Delete", mock.Anything, "u1", "rec-g1").Return(errors.Unavailable("Failed to delete record", nil))

	require.Error(t, f.collection.RemoveRecord(context.Background(), "u1", "rec-g1"))

	assert.Len(t, f.collection.State().Records, 1)
	assert.Equal(t, "Failed to delete record", f.collection.State().Error)
}

func TestSetView_ResetsPage(t *testing.T) {
	f := newCollectionFixture(t)
	f.addRecord(t, "g1", RecordInput{Status: entity.StatusCompleted})
	f.addRecord(t, "g2", RecordInput{})
	f.addRecord(t, "g3", RecordInput{})
	f.collection.SetPage(2)
	require.Len(t, f.collection.PagedRecords(), 1)

	p := f.collection.SetView(store.RecordView{Status: entity.StatusPlaying})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 2, f.collection.VisibleCount())

	f.collection.SetView(store.RecordView{Search: "doom"})
	paged := f.collection.PagedRecords()
	require.Len(t, paged, 1)
	assert.Equal(t, "g2", paged[0].GameID)
}

func TestLoad_ReplacesRecords(t *testing.T) {
	f := newCollectionFixture(t)
	f.colRepo.On("ListByUser", mock.Anything, "u1").Return([]entity.UserGameRecord{
		{ID: "r1", UserID: "u1", GameID: "g1", HoursPlayed: 2, Status: entity.StatusDropped},
		{ID: "r2", UserID: "u1", GameID: "g3", HoursPlayed: 8, Status: entity.StatusPlaying},
	}, nil)

	require.NoError(t, f.collection.Load(context.Background(), "u1"))

	stats := f.collection.Stats()
	assert.Equal(t, 2, stats.TotalGames)
	assert.Equal(t, 10, stats.TotalHours)
	assert.Equal(t, "Indie", stats.FavoriteGenre)
	assert.Equal(t, "PC", stats.FavoritePlatform)
	assert.Len(t, f.collection.RecordsByStatus(entity.StatusDropped), 1)
	_, ok := f.collection.RecordByGameID("g3")
	assert.True(t, ok)
}

func TestWatchCatalog_RefreshesStatsOnReload(t *testing.T) {
	f := newFixture()
	f.signIn("u1")
	unsubscribe := f.collection.WatchCatalog()
	defer unsubscribe()
	f.colRepo.On("ListByUser", mock.Anything, "u1").Return([]entity.UserGameRecord{
		{ID: "r1", UserID: "u1", GameID: "g2", Status: entity.StatusPlaying},
	}, nil)
	require.NoError(t, f.collection.Load(context.Background(), "u1"))
	require.Empty(t, f.collection.Stats().FavoriteGenre)

	f.withCatalog(t)

	assert.Equal(t, "Shooter", f.collection.Stats().FavoriteGenre)
}

func TestWatchCatalog_ConcurrentCatalogUpdates(t *testing.T) {
	f := newFixture()
	f.signIn("u1")
	unsubscribe := f.collection.WatchCatalog()
	defer unsubscribe()
	f.colRepo.On("ListByUser", mock.Anything, "u1").Return([]entity.UserGameRecord{
		{ID: "r1", UserID: "u1", GameID: "g3", Status: entity.StatusPlaying},
	}, nil)
	require.NoError(t, f.collection.Load(context.Background(), "u1"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			at := fixedNow.Add(time.Duration(i) * time.Minute)
			f.st.UpdateCatalog(func(c store.CatalogState) store.CatalogState {
				return store.CatalogLoaded(c, sampleGames(), at)
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "Action", f.collection.Stats().FavoriteGenre)
}
