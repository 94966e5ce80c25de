package usecase

import (
	"context"
	"strings"
	"time"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/internal/store"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
	"gamecatalog/pkg/validation"
)

// UserUseCase manages the signed-in user's profile.
type UserUseCase struct {
	store    *store.Store
	userRepo repository.UserRepository
	local    LocalStore
}

func NewUserUseCase(st *store.Store, userRepo repository.UserRepository, local LocalStore) *UserUseCase {
	return &UserUseCase{
		store:    st,
		userRepo: userRepo,
		local:    local,
	}
}

type UpdateProfileInput struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

func (uc *UserUseCase) GetUserProfile(ctx context.Context) (*entity.User, error) {
	a := uc.store.State().Auth
	if !a.IsAuthenticated() {
		return nil, errors.Unauthorized("Sign in to view your profile", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, a.User.ID)
	if err != nil {
		// the verified session copy is good enough to render
		logger.LogRemoteFailure("profile", "get", err)
		current := *a.User
		return &current, nil
	}
	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error) {
	a := uc.store.State().Auth
	if !a.IsAuthenticated() {
		return nil, errors.Unauthorized("Sign in to edit your profile", nil)
	}
	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		input.Username = &trimmed
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}

	user := *a.User
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, &user); err != nil {
		logger.LogRemoteFailure("profile", "update", err)
		return nil, err
	}

	uc.store.UpdateAuth(func(a store.AuthState) store.AuthState {
		return store.SetUser(a, user)
	})
	snapshot := entity.SessionSnapshot{User: user, Authenticated: true, SavedAt: user.UpdatedAt}
	if err := uc.local.Put(ctx, keySessionSnapshot, snapshot); err != nil {
		logger.Warn("Failed to persist session snapshot: %v", err)
	}

	logger.Info("Profile updated for user %s", user.ID)
	return &user, nil
}
