package usecase

import (
	"context"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/internal/infrastructure/metrics"
	"gamecatalog/internal/store"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
)

type FavoriteUseCase struct {
	store        *store.Store
	favoriteRepo repository.FavoriteRepository
	catalog      *CatalogUseCase
	local        LocalStore
}

func NewFavoriteUseCase(st *store.Store, favoriteRepo repository.FavoriteRepository, catalog *CatalogUseCase, local LocalStore) *FavoriteUseCase {
	return &FavoriteUseCase{
		store:        st,
		favoriteRepo: favoriteRepo,
		catalog:      catalog,
		local:        local,
	}
}

func (uc *FavoriteUseCase) State() store.FavoritesState {
	return uc.store.State().Favorites
}

func (uc *FavoriteUseCase) List() []entity.Game {
	return append([]entity.Game{}, uc.State().Items...)
}

func (uc *FavoriteUseCase) IsFavorite(gameID string) bool {
	return store.IsFavorite(uc.State(), gameID)
}

func (uc *FavoriteUseCase) Count() int {
	return store.FavoritesCount(uc.State())
}

func (uc *FavoriteUseCase) AverageRating() float64 {
	return store.AverageFavoriteRating(uc.State())
}

func (uc *FavoriteUseCase) ClearError() {
	uc.store.UpdateFavorites(store.ClearFavoritesError)
}

// ToggleSync flips membership locally in one step and saves the list on the
// device. It never talks to the data service.
func (uc *FavoriteUseCase) ToggleSync(ctx context.Context, gameID string) (bool, error) {
	game, err := uc.catalog.Lookup(ctx, gameID)
	if err != nil {
		return false, err
	}

	var added bool
	next := uc.store.UpdateFavorites(func(f store.FavoritesState) store.FavoritesState {
		var toggled store.FavoritesState
		toggled, added = store.ToggleFavorite(f, *game)
		return toggled
	})
	metrics.FavoriteToggles.WithLabelValues(toggleAction(added), "sync").Inc()

	uc.persist(ctx, next.Items)
	return added, nil
}

// Toggle flips membership optimistically, then confirms with the data
// service. A rejected confirmation undoes only this game's change, and only
// if no later toggle of the same game has happened since.
func (uc *FavoriteUseCase) Toggle(ctx context.Context, gameID string) (bool, error) {
	userID, err := uc.userID()
	if err != nil {
		return false, err
	}
	game, err := uc.catalog.Lookup(ctx, gameID)
	if err != nil {
		return false, err
	}

	var added bool
	var revision uint64
	uc.store.UpdateFavorites(func(f store.FavoritesState) store.FavoritesState {
		toggled, wasAdded := store.ToggleFavorite(f, *game)
		added = wasAdded
		revision = store.ToggleRevision(toggled, game.ID)
		return store.MarkPending(toggled, game.ID)
	})
	metrics.FavoriteToggles.WithLabelValues(toggleAction(added), "confirmed").Inc()

	if added {
		_, err = uc.favoriteRepo.Add(ctx, userID, game.ID)
	} else {
		err = uc.favoriteRepo.Remove(ctx, userID, game.ID)
	}
	metrics.ObserveRemote("favorites", toggleAction(added), err)

	if err != nil {
		logger.LogRemoteFailure("favorites", "toggle", err)
		metrics.FavoriteRollbacks.Inc()
		uc.store.UpdateFavorites(func(f store.FavoritesState) store.FavoritesState {
			rolled := store.RollbackToggle(f, *game, revision, added)
			return store.SettlePending(rolled, game.ID, errors.Message(err))
		})
		return added, err
	}

	next := uc.store.UpdateFavorites(func(f store.FavoritesState) store.FavoritesState {
		return store.SettlePending(f, game.ID, "")
	})
	uc.persist(ctx, next.Items)
	return added, nil
}

// Load replaces the list with the data service's copy joined against the
// catalog. If the service is unreachable the on-device copy is shown instead.
func (uc *FavoriteUseCase) Load(ctx context.Context) error {
	userID, err := uc.userID()
	if err != nil {
		return err
	}
	uc.store.UpdateFavorites(store.FavoritesLoading)

	ids, err := uc.favoriteRepo.ListGameIDs(ctx, userID)
	metrics.ObserveRemote("favorites", "list", err)
	if err != nil {
		logger.LogRemoteFailure("favorites", "load", err)
		var cached []entity.Game
		found, _ := uc.local.Get(ctx, keyFavorites, &cached)
		uc.store.UpdateFavorites(func(f store.FavoritesState) store.FavoritesState {
			if found {
				f = store.FavoritesLoaded(f, cached)
			}
			return store.FavoritesFailed(f, errors.Message(err))
		})
		return err
	}

	games := make([]entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := uc.catalog.Lookup(ctx, id)
		if err != nil {
			logger.Debug("Skipping favorite %s: %v", id, err)
			continue
		}
		games = append(games, *game)
	}

	next := uc.store.UpdateFavorites(func(f store.FavoritesState) store.FavoritesState {
		return store.FavoritesLoaded(f, games)
	})
	uc.persist(ctx, next.Items)
	return nil
}

// Clear removes every favorite remotely, then locally.
func (uc *FavoriteUseCase) Clear(ctx context.Context) error {
	userID, err := uc.userID()
	if err != nil {
		return err
	}

	err = uc.favoriteRepo.Clear(ctx, userID)
	metrics.ObserveRemote("favorites", "clear", err)
	if err != nil {
		logger.LogRemoteFailure("favorites", "clear", err)
		uc.store.UpdateFavorites(func(f store.FavoritesState) store.FavoritesState {
			return store.FavoritesFailed(f, errors.Message(err))
		})
		return err
	}

	uc.store.UpdateFavorites(store.ClearFavorites)
	if err := uc.local.Delete(ctx, keyFavorites); err != nil {
		logger.Warn("Failed to clear local favorites: %v", err)
	}
	return nil
}

func (uc *FavoriteUseCase) userID() (string, error) {
	a := uc.store.State().Auth
	if !a.IsAuthenticated() {
		return "", errors.Unauthorized("Sign in to manage favorites", nil)
	}
	return a.User.ID, nil
}

func (uc *FavoriteUseCase) persist(ctx context.Context, items []entity.Game) {
	if err := uc.local.Put(ctx, keyFavorites, items); err != nil {
		logger.Warn("Failed to persist favorites: %v", err)
	}
}

func toggleAction(added bool) string {
	if added {
		return "add"
	}
	return "remove"
}
