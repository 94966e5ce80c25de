package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamecatalog/internal/domain/entity"
)

// MockCollectionRepository is a mock implementation of repository.CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Create(ctx context.Context, record *entity.UserGameRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, userID, id string) (*entity.UserGameRecord, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserGameRecord), args.Error(1)
}

func (m *MockCollectionRepository) Update(ctx context.Context, record *entity.UserGameRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockCollectionRepository) ListByUser(ctx context.Context, userID string) ([]entity.UserGameRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserGameRecord), args.Error(1)
}
