package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gamecatalog/pkg/logger"
)

// Bootstrap brings a fresh client up: apply the cached session hint, then
// load the catalog and verify the session in parallel, then load the user's
// favorites and collection. Failures are recorded in the state regions; the
// first one is also returned.
func Bootstrap(ctx context.Context, auth *AuthUseCase, catalog *CatalogUseCase, favorites *FavoriteUseCase, collection *CollectionUseCase) error {
	auth.Restore(ctx)

	// a plain group: one failed load must not cancel the other
	var g errgroup.Group
	g.Go(func() error { return catalog.LoadAll(ctx) })
	g.Go(func() error { return auth.CheckSession(ctx) })
	firstErr := g.Wait()

	if err := LoadUserData(ctx, auth, favorites, collection); err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		logger.Warn("Bootstrap finished with errors: %v", firstErr)
	}
	return firstErr
}

// LoadUserData fetches the signed-in user's favorites and collection in
// parallel. It does nothing when nobody is signed in.
func LoadUserData(ctx context.Context, auth *AuthUseCase, favorites *FavoriteUseCase, collection *CollectionUseCase) error {
	user, ok := auth.CurrentUser()
	if !ok {
		return nil
	}

	var g errgroup.Group
	g.Go(func() error { return favorites.Load(ctx) })
	g.Go(func() error { return collection.Load(ctx, user.ID) })
	return g.Wait()
}
