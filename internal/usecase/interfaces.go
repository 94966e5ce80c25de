package usecase

import (
	"context"

	"gamecatalog/internal/domain/entity"
)

// IdentityClient is the hosted identity service.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password, displayName string) (*entity.Session, error)
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)
	SignOut(ctx context.Context, userID string) error
	// VerifySession returns nil, nil when idToken no longer names a live session.
	VerifySession(ctx context.Context, idToken string) (*entity.Session, error)
}

// LocalStore is the durable on-device key-value store.
type LocalStore interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Put(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

const (
	keySession         = "session"
	keySessionSnapshot = "session_snapshot"
	keyFavorites       = "favorites"
)
