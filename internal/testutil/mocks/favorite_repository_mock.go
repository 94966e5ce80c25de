package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamecatalog/internal/domain/entity"
)

// MockFavoriteRepository is a mock implementation of repository.FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, gameID string) (*entity.FavoriteEntry, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FavoriteEntry), args.Error(1)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, gameID string) error {
	args := m.Called(ctx, userID, gameID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, gameID string) (bool, error) {
	args := m.Called(ctx, userID, gameID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListGameIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFavoriteRepository) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
