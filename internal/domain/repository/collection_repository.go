package repository

import (
	"context"

	"gamecatalog/internal/domain/entity"
)

type CollectionRepository interface {
	// Create fails with a conflict when the user already tracks the game
	Create(ctx context.Context, record *entity.UserGameRecord) error
	GetByID(ctx context.Context, userID, id string) (*entity.UserGameRecord, error)
	Update(ctx context.Context, record *entity.UserGameRecord) error
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string) ([]entity.UserGameRecord, error)
}
