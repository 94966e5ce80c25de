package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/internal/infrastructure/metrics"
	"gamecatalog/internal/store"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
	"gamecatalog/pkg/validation"
)

type CollectionUseCase struct {
	store          *store.Store
	collectionRepo repository.CollectionRepository
	catalog        *CatalogUseCase
	now            func() time.Time
}

func NewCollectionUseCase(st *store.Store, collectionRepo repository.CollectionRepository, catalog *CatalogUseCase) *CollectionUseCase {
	return &CollectionUseCase{
		store:          st,
		collectionRepo: collectionRepo,
		catalog:        catalog,
		now:            time.Now,
	}
}

// RecordInput is the body of a new collection entry. Unset fields take
// their defaults: status playing, last played today.
type RecordInput struct {
	UserRating            float64           `json:"user_rating" validate:"gte=0,lte=5"`
	HoursPlayed           int               `json:"hours_played" validate:"gte=0"`
	AchievementsCompleted int               `json:"achievements_completed" validate:"gte=0"`
	CompletionPercentage  *float64          `json:"completion_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Status                entity.GameStatus `json:"status,omitempty" validate:"omitempty,oneof=playing completed on-hold dropped planning"`
	Notes                 string            `json:"notes,omitempty" validate:"max=2000"`
	LastPlayed            *time.Time        `json:"last_played,omitempty"`
}

// WatchCatalog keeps collection statistics in step with the catalog: genre
// and platform tallies depend on catalog metadata. It returns the
// unsubscribe function.
func (uc *CollectionUseCase) WatchCatalog() func() {
	var (
		mu         sync.Mutex
		lastLoaded time.Time
	)
	return uc.store.Subscribe(func(region store.Region, state store.State) {
		if region != store.RegionCatalog {
			return
		}
		mu.Lock()
		fresh := !state.Catalog.LoadedAt.Equal(lastLoaded)
		lastLoaded = state.Catalog.LoadedAt
		mu.Unlock()
		if !fresh {
			return
		}
		index := store.GamesIndex(state.Catalog)
		uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
			return store.RefreshStats(p, index)
		})
	})
}

func (uc *CollectionUseCase) State() store.ProfileState {
	return uc.store.State().Profile
}

func (uc *CollectionUseCase) Stats() entity.CollectionStats {
	return uc.State().Stats
}

func (uc *CollectionUseCase) Load(ctx context.Context, userID string) error {
	uc.store.UpdateProfile(store.ProfileLoading)

	records, err := uc.collectionRepo.ListByUser(ctx, userID)
	metrics.ObserveRemote("collection", "list", err)
	if err != nil {
		logger.LogRemoteFailure("collection", "load", err)
		uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
			return store.ProfileFailed(p, errors.Message(err))
		})
		return err
	}

	index := uc.gamesIndex()
	uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
		return store.RecordsLoaded(p, records, index)
	})
	return nil
}

// AddRecord starts tracking gameID for userID. A user can track a game once;
// a second add is rejected with a conflict.
func (uc *CollectionUseCase) AddRecord(ctx context.Context, userID, gameID string, input RecordInput) (*entity.UserGameRecord, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	if store.HasRecordFor(uc.State(), userID, gameID) {
		return nil, errors.Conflict("Game is already in your collection")
	}

	game, err := uc.catalog.Lookup(ctx, gameID)
	if err != nil {
		return nil, err
	}

	total, known := game.TotalAchievements()
	if known && input.AchievementsCompleted > total {
		return nil, errors.Validation(fmt.Sprintf("AchievementsCompleted must be at most %d", total), nil)
	}

	now := uc.now()
	record := entity.UserGameRecord{
		UserID:                userID,
		GameID:                gameID,
		UserRating:            input.UserRating,
		HoursPlayed:           input.HoursPlayed,
		AchievementsCompleted: input.AchievementsCompleted,
		TotalAchievements:     total,
		Status:                input.Status,
		Notes:                 input.Notes,
		LastPlayed:            today(now),
	}
	if record.Status == "" {
		record.Status = entity.StatusPlaying
	}
	if input.LastPlayed != nil {
		record.LastPlayed = *input.LastPlayed
	}
	switch {
	case input.CompletionPercentage != nil:
		record.CompletionPercentage = *input.CompletionPercentage
	case known:
		record.CompletionPercentage = completion(record.AchievementsCompleted, total)
	}

	err = uc.collectionRepo.Create(ctx, &record)
	metrics.ObserveRemote("collection", "create", err)
	if err != nil {
		if !errors.Is(err, errors.CodeConflict) {
			logger.LogRemoteFailure("collection", "add", err)
		}
		uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
			return store.ProfileFailed(p, errors.Message(err))
		})
		return nil, err
	}

	index := uc.gamesIndex()
	added := false
	uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
		next, ok := store.RecordAdded(p, record, index)
		added = ok
		return next
	})
	if !added {
		return nil, errors.Conflict("Game is already in your collection")
	}

	logger.Info("User %s added game %s to collection", userID, gameID)
	return &record, nil
}

// UpdateRecord merges the fields present in patch into the record.
func (uc *CollectionUseCase) UpdateRecord(ctx context.Context, recordID string, patch entity.RecordPatch) (*entity.UserGameRecord, error) {
	if err := validation.Check(patch); err != nil {
		return nil, err
	}
	current, ok := store.RecordByID(uc.State(), recordID)
	if !ok {
		return nil, errors.NotFound("Collection record", nil)
	}

	total := current.TotalAchievements
	known := total > 0
	if game, err := uc.catalog.Lookup(ctx, current.GameID); err == nil {
		if t, k := game.TotalAchievements(); k {
			total, known = t, true
		}
	}
	if patch.AchievementsCompleted != nil && known && *patch.AchievementsCompleted > total {
		return nil, errors.Validation(fmt.Sprintf("AchievementsCompleted must be at most %d", total), nil)
	}
	if patch.AchievementsCompleted != nil && patch.CompletionPercentage == nil && known {
		derived := completion(*patch.AchievementsCompleted, total)
		patch.CompletionPercentage = &derived
	}

	at := uc.now()
	merged := current.Apply(patch)
	merged.UpdatedAt = at

	err := uc.collectionRepo.Update(ctx, &merged)
	metrics.ObserveRemote("collection", "update", err)
	if err != nil {
		logger.LogRemoteFailure("collection", "update", err)
		uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
			return store.ProfileFailed(p, errors.Message(err))
		})
		return nil, err
	}

	index := uc.gamesIndex()
	uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
		next, _ := store.RecordUpdated(p, recordID, patch, at, index)
		return next
	})
	return &merged, nil
}

func (uc *CollectionUseCase) RemoveRecord(ctx context.Context, userID, recordID string) error {
	if _, ok := store.RecordByID(uc.State(), recordID); !ok {
		return errors.NotFound("Collection record", nil)
	}

	err := uc.collectionRepo.Delete(ctx, userID, recordID)
	metrics.ObserveRemote("collection", "delete", err)
	if err != nil {
		logger.LogRemoteFailure("collection", "remove", err)
		uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
			return store.ProfileFailed(p, errors.Message(err))
		})
		return err
	}

	index := uc.gamesIndex()
	uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
		next, _ := store.RecordRemoved(p, recordID, index)
		return next
	})
	return nil
}

// SetView changes the list's status filter and search, back to page one.
func (uc *CollectionUseCase) SetView(view store.RecordView) store.ProfileState {
	return uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
		return store.SetRecordView(p, view)
	})
}

func (uc *CollectionUseCase) SetPage(page int) store.ProfileState {
	return uc.store.UpdateProfile(func(p store.ProfileState) store.ProfileState {
		return store.SetRecordPage(p, page)
	})
}

func (uc *CollectionUseCase) PagedRecords() []entity.UserGameRecord {
	return store.PagedRecords(uc.State(), uc.gamesIndex())
}

func (uc *CollectionUseCase) VisibleCount() int {
	return len(store.VisibleRecords(uc.State(), uc.gamesIndex()))
}

func (uc *CollectionUseCase) RecentRecords(limit int) []entity.UserGameRecord {
	return store.RecentRecords(uc.State(), limit)
}

func (uc *CollectionUseCase) RecordsByStatus(status entity.GameStatus) []entity.UserGameRecord {
	return store.RecordsByStatus(uc.State(), status)
}

func (uc *CollectionUseCase) RecordByGameID(gameID string) (entity.UserGameRecord, bool) {
	return store.RecordByGameID(uc.State(), gameID)
}

func (uc *CollectionUseCase) Reset() {
	uc.store.UpdateProfile(store.ResetProfile)
}

func (uc *CollectionUseCase) ClearError() {
	uc.store.UpdateProfile(store.ClearProfileError)
}

func (uc *CollectionUseCase) gamesIndex() map[string]entity.Game {
	return store.GamesIndex(uc.store.State().Catalog)
}

func completion(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(done) / float64(total) * 100
	return math.Round(pct*100) / 100
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
