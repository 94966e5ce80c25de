package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/store"
	"gamecatalog/internal/testutil/mocks"
	"gamecatalog/pkg/errors"
)

func TestBootstrap_SignedInUserGetsData(t *testing.T) {
	f := newFixture()
	identity := &mocks.MockIdentityClient{}
	users := &mocks.MockUserRepository{}
	auth := NewAuthUseCase(f.st, identity, users, f.local)
	token := signedToken(t, time.Now().Add(time.Hour))
	ctx := context.Background()
	require.NoError(t, f.local.Put(ctx, keySession, entity.Session{UserID: "u1", IDToken: token}))

	f.games.On("List", mock.Anything).Return(sampleGames(), nil)
	identity.On("VerifySession", mock.Anything, token).Return(&entity.Session{UserID: "u1", IDToken: token}, nil)
	users.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Username: "ana"}, nil)
	f.favRepo.On("ListGameIDs", mock.Anything, "u1").Return([]string{"g2"}, nil)
	f.colRepo.On("ListByUser", mock.Anything, "u1").Return([]entity.UserGameRecord{
		{ID: "r1", UserID: "u1", GameID: "g1", Status: entity.StatusPlaying},
	}, nil)

	require.NoError(t, Bootstrap(ctx, auth, f.catalog, f.favorites, f.collection))

	s := f.st.State()
	assert.Equal(t, store.AuthAuthenticated, s.Auth.Status)
	assert.Len(t, s.Catalog.Games, 3)
	assert.Equal(t, []string{"g2"}, gameIDs(s.Favorites.Items))
	assert.Len(t, s.Profile.Records, 1)
}

func TestBootstrap_CatalogFailureDoesNotCancelSessionCheck(t *testing.T) {
	f := newFixture()
	identity := &mocks.MockIdentityClient{}
	users := &mocks.MockUserRepository{}
	auth := NewAuthUseCase(f.st, identity, users, f.local)
	f.games.On("List", mock.Anything).Return(nil, errors.Unavailable("Failed to fetch games", nil))

	err := Bootstrap(context.Background(), auth, f.catalog, f.favorites, f.collection)

	require.Error(t, err)
	s := f.st.State()
	assert.Equal(t, store.AuthAnonymous, s.Auth.Status)
	assert.True(t, s.Auth.Initialized)
	assert.Equal(t, "Failed to fetch games", s.Catalog.Error)
	f.favRepo.AssertNotCalled(t, "ListGameIDs", mock.Anything, mock.Anything)
}
