package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamecatalog/internal/domain/entity"
)

// MockIdentityClient is a mock implementation of usecase.IdentityClient
type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) SignUp(ctx context.Context, email, password, displayName string) (*entity.Session, error) {
	args := m.Called(ctx, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockIdentityClient) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockIdentityClient) SignOut(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockIdentityClient) VerifySession(ctx context.Context, idToken string) (*entity.Session, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}
