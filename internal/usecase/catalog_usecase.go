package usecase

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/internal/infrastructure/metrics"
	"gamecatalog/internal/store"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
)

const gameCacheSize = 256

type CatalogUseCase struct {
	store    *store.Store
	gameRepo repository.GameRepository
	views    *store.Views
	details  *expirable.LRU[string, entity.Game]
	now      func() time.Time
}

func NewCatalogUseCase(st *store.Store, gameRepo repository.GameRepository, cacheTTL time.Duration) *CatalogUseCase {
	return &CatalogUseCase{
		store:    st,
		gameRepo: gameRepo,
		views:    store.NewViews(),
		details:  expirable.NewLRU[string, entity.Game](gameCacheSize, nil, cacheTTL),
		now:      time.Now,
	}
}

func (uc *CatalogUseCase) State() store.CatalogState {
	return uc.store.State().Catalog
}

// LoadAll replaces the catalog with the data service's full list. On failure
// the previous list stays and the error is recorded.
func (uc *CatalogUseCase) LoadAll(ctx context.Context) error {
	uc.store.UpdateCatalog(store.CatalogLoading)

	games, err := uc.gameRepo.List(ctx)
	metrics.ObserveRemote("catalog", "list", err)
	if err != nil {
		logger.LogRemoteFailure("catalog", "load_all", err)
		uc.store.UpdateCatalog(func(c store.CatalogState) store.CatalogState {
			return store.CatalogLoadFailed(c, errors.Message(err))
		})
		return err
	}

	uc.store.UpdateCatalog(func(c store.CatalogState) store.CatalogState {
		return store.CatalogLoaded(c, games, uc.now())
	})
	uc.details.Purge()
	metrics.CatalogSize.Set(float64(len(games)))
	logger.Info("Catalog loaded with %d games", len(games))
	return nil
}

func (uc *CatalogUseCase) UpdateFilter(patch entity.FilterPatch) store.CatalogState {
	return uc.store.UpdateCatalog(func(c store.CatalogState) store.CatalogState {
		return store.UpdateFilter(c, patch)
	})
}

func (uc *CatalogUseCase) ResetFilter() store.CatalogState {
	return uc.store.UpdateCatalog(store.ResetFilter)
}

func (uc *CatalogUseCase) SetPage(page int) store.CatalogState {
	return uc.store.UpdateCatalog(func(c store.CatalogState) store.CatalogState {
		return store.SetPage(c, page)
	})
}

func (uc *CatalogUseCase) Page() store.CatalogPage {
	return uc.views.Page(uc.State())
}

func (uc *CatalogUseCase) Filtered() []entity.Game {
	return uc.views.Filtered(uc.State())
}

func (uc *CatalogUseCase) Featured(limit int) []entity.Game {
	return uc.views.Featured(uc.State(), limit)
}

func (uc *CatalogUseCase) NewReleases(limit int) []entity.Game {
	return uc.views.NewReleases(uc.State(), limit)
}

// Options lists the platform and genre choices for the filter controls.
func (uc *CatalogUseCase) Options() (platforms, genres []string) {
	c := uc.State()
	return append([]string{}, c.AllPlatforms...), append([]string{}, c.AllGenres...)
}

// Lookup finds a game without touching the current-game selection.
func (uc *CatalogUseCase) Lookup(ctx context.Context, id string) (*entity.Game, error) {
	if game, ok := store.GameByID(uc.State(), id); ok {
		metrics.GameCacheHits.WithLabelValues("catalog").Inc()
		return &game, nil
	}
	if game, ok := uc.details.Get(id); ok {
		metrics.GameCacheHits.WithLabelValues("cache").Inc()
		return &game, nil
	}

	game, err := uc.gameRepo.GetByID(ctx, id)
	metrics.ObserveRemote("catalog", "get", err)
	if err != nil {
		return nil, err
	}
	metrics.GameCacheHits.WithLabelValues("remote").Inc()
	uc.details.Add(id, *game)
	return game, nil
}

// GetGame loads a game's details and makes it the current game.
func (uc *CatalogUseCase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := uc.Lookup(ctx, id)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			logger.LogRemoteFailure("catalog", "get_game", err)
		}
		uc.store.UpdateCatalog(func(c store.CatalogState) store.CatalogState {
			return store.CatalogLoadFailed(c, errors.Message(err))
		})
		return nil, err
	}

	uc.store.UpdateCatalog(func(c store.CatalogState) store.CatalogState {
		return store.SetCurrentGame(c, *game)
	})
	return game, nil
}

func (uc *CatalogUseCase) ClearCurrentGame() {
	uc.store.UpdateCatalog(store.ClearCurrentGame)
}
