package repository

import (
	"context"

	"gamecatalog/internal/domain/entity"
)

// GameRepository reads the shared catalog. The catalog is read-only for clients.
type GameRepository interface {
	// List returns the complete catalog ordered by title
	List(ctx context.Context) ([]entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

// ImageResolver turns a stored image reference into a URL a client can load.
type ImageResolver interface {
	ResolveImageURL(ref string) string
}
