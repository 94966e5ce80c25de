package repository

import (
	"context"

	"gamecatalog/internal/domain/entity"
)

type FavoriteRepository interface {
	// Add is idempotent: adding an existing favorite returns the stored entry
	Add(ctx context.Context, userID, gameID string) (*entity.FavoriteEntry, error)

	// Remove is idempotent: removing a missing favorite is not an error
	Remove(ctx context.Context, userID, gameID string) error

	Exists(ctx context.Context, userID, gameID string) (bool, error)

	// ListGameIDs returns the user's favorite game ids, newest first
	ListGameIDs(ctx context.Context, userID string) ([]string, error)

	Clear(ctx context.Context, userID string) error
}
