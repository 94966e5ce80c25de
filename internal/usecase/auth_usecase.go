package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/sync/singleflight"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/internal/infrastructure/metrics"
	"gamecatalog/internal/store"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
	"gamecatalog/pkg/validation"
)

type AuthUseCase struct {
	store    *store.Store
	identity IdentityClient
	userRepo repository.UserRepository
	local    LocalStore
	checks   singleflight.Group
	now      func() time.Time

	// sessionMu orders a completion's KV write against logout's KV clear.
	sessionMu sync.Mutex
}

func NewAuthUseCase(st *store.Store, identity IdentityClient, userRepo repository.UserRepository, local LocalStore) *AuthUseCase {
	return &AuthUseCase{
		store:    st,
		identity: identity,
		userRepo: userRepo,
		local:    local,
		now:      time.Now,
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (uc *AuthUseCase) State() store.AuthState {
	return uc.store.State().Auth
}

// CurrentUser returns the verified user, never the cached hint.
func (uc *AuthUseCase) CurrentUser() (*entity.User, bool) {
	a := uc.State()
	if !a.IsAuthenticated() {
		return nil, false
	}
	user := *a.User
	return &user, true
}

// Restore applies the on-device snapshot as a rendering hint. Snapshots whose
// token has already expired are discarded.
func (uc *AuthUseCase) Restore(ctx context.Context) {
	var snapshot entity.SessionSnapshot
	found, err := uc.local.Get(ctx, keySessionSnapshot, &snapshot)
	if err != nil {
		logger.Warn("Failed to read session snapshot: %v", err)
		return
	}
	if !found {
		return
	}

	var session entity.Session
	if ok, _ := uc.local.Get(ctx, keySession, &session); !ok || tokenExpired(session.IDToken, uc.now()) {
		logger.Debug("Discarding stale session snapshot")
		uc.forgetSession(ctx)
		return
	}

	uc.store.UpdateAuth(func(a store.AuthState) store.AuthState {
		return store.RestoreHint(a, &snapshot)
	})
}

// CheckSession re-verifies the stored session with the identity service.
// Concurrent callers share one remote call, and a check requested while
// another auth operation runs is a no-op. Having no session is not an error;
// any service failure leaves the client signed out.
func (uc *AuthUseCase) CheckSession(ctx context.Context) error {
	_, err, _ := uc.checks.Do("check", func() (interface{}, error) {
		return nil, uc.checkSession(ctx)
	})
	return err
}

func (uc *AuthUseCase) checkSession(ctx context.Context) error {
	started := false
	uc.store.UpdateAuth(func(a store.AuthState) store.AuthState {
		next, ok := store.BeginSessionCheck(a)
		started = ok
		return next
	})
	if !started {
		return nil
	}

	var stored entity.Session
	found, err := uc.local.Get(ctx, keySession, &stored)
	if err != nil || !found || stored.IDToken == "" {
		uc.endCheckWithoutSession(ctx, "")
		return nil
	}

	session, err := uc.identity.VerifySession(ctx, stored.IDToken)
	metrics.ObserveRemote("auth", "verify_session", err)
	if err != nil {
		logger.LogRemoteFailure("auth", "check_session", err)
		uc.endCheckWithoutSession(ctx, errors.Message(err))
		return err
	}
	if session == nil {
		uc.endCheckWithoutSession(ctx, "")
		return nil
	}
	session.RefreshToken = stored.RefreshToken

	user, err := uc.profileFor(ctx, session, "")
	if err != nil {
		logger.LogRemoteFailure("auth", "load_profile", err)
		uc.endCheckWithoutSession(ctx, errors.Message(err))
		return err
	}

	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()
	if !uc.transition(func(a store.AuthState) (store.AuthState, bool) {
		return store.SessionRestored(a, *user)
	}) {
		logger.Info("Discarding superseded session check for user %s", user.ID)
		return nil
	}
	uc.saveSession(ctx, session, user)
	logger.Info("Session restored for user %s", user.ID)
	return nil
}

func (uc *AuthUseCase) endCheckWithoutSession(ctx context.Context, errMsg string) {
	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()
	if uc.transition(func(a store.AuthState) (store.AuthState, bool) {
		return store.SessionAbsent(a, errMsg)
	}) {
		uc.forgetSession(ctx)
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*entity.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Check(input); err != nil {
		uc.store.UpdateAuth(func(a store.AuthState) store.AuthState {
			return store.SetAuthError(a, errors.Message(err))
		})
		return nil, err
	}

	if !uc.transition(store.BeginLogin) {
		return nil, errors.Conflict("Another sign-in operation is in progress")
	}

	session, err := uc.identity.SignIn(ctx, input.Email, input.Password)
	metrics.ObserveRemote("auth", "sign_in", err)
	if err != nil {
		logger.Info("Login failed for %s: %v", input.Email, err)
		return nil, uc.reject(err)
	}

	user, err := uc.profileFor(ctx, session, "")
	if err != nil {
		logger.LogRemoteFailure("auth", "load_profile", err)
		return nil, uc.reject(err)
	}

	return uc.accept(ctx, session, user)
}

// Register validates input locally first; rejected input never reaches the
// identity service.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	if err := validation.Check(input); err != nil {
		uc.store.UpdateAuth(func(a store.AuthState) store.AuthState {
			return store.SetAuthError(a, errors.Message(err))
		})
		return nil, err
	}

	if !uc.transition(store.BeginRegister) {
		return nil, errors.Conflict("Another sign-in operation is in progress")
	}

	session, err := uc.identity.SignUp(ctx, input.Email, input.Password, input.Username)
	metrics.ObserveRemote("auth", "sign_up", err)
	if err != nil {
		logger.Info("Registration failed for %s: %v", input.Email, err)
		return nil, uc.reject(err)
	}

	user, err := uc.profileFor(ctx, session, input.Username)
	if err != nil {
		logger.LogRemoteFailure("auth", "create_profile", err)
		return nil, uc.reject(err)
	}

	if _, err := uc.accept(ctx, session, user); err != nil {
		return nil, err
	}
	logger.Info("Registered user %s", user.ID)
	return user, nil
}

// Logout always ends signed out. A failed remote sign-out is only logged.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	var userID string
	started := false
	uc.store.UpdateAuth(func(a store.AuthState) store.AuthState {
		if a.User != nil {
			userID = a.User.ID
		}
		next, ok := store.BeginLogout(a)
		started = ok
		return next
	})
	if !started {
		return nil
	}

	if userID != "" {
		err := uc.identity.SignOut(ctx, userID)
		metrics.ObserveRemote("auth", "sign_out", err)
		if err != nil {
			logger.LogRemoteFailure("auth", "sign_out", err)
		}
	}

	uc.sessionMu.Lock()
	uc.forgetSession(ctx)
	uc.store.UpdateAuth(store.LoggedOut)
	uc.sessionMu.Unlock()
	uc.store.UpdateProfile(store.ResetProfile)
	logger.Info("User %s signed out", userID)
	return nil
}

func (uc *AuthUseCase) ClearError() {
	uc.store.UpdateAuth(store.ClearAuthError)
}

// transition applies a guarded reducer and reports whether it was accepted.
func (uc *AuthUseCase) transition(reducer func(store.AuthState) (store.AuthState, bool)) bool {
	accepted := false
	uc.store.UpdateAuth(func(a store.AuthState) store.AuthState {
		next, ok := reducer(a)
		accepted = ok
		return next
	})
	return accepted
}

func (uc *AuthUseCase) reject(err error) error {
	uc.transition(func(a store.AuthState) (store.AuthState, bool) {
		return store.CredentialsRejected(a, errors.Message(err))
	})
	return err
}

// accept signs the user in unless a logout overtook the attempt.
func (uc *AuthUseCase) accept(ctx context.Context, session *entity.Session, user *entity.User) (*entity.User, error) {
	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()
	if !uc.transition(func(a store.AuthState) (store.AuthState, bool) {
		return store.CredentialsAccepted(a, *user)
	}) {
		logger.Info("Discarding superseded sign-in for user %s", user.ID)
		return nil, errors.Conflict("Signed out before sign-in completed")
	}
	uc.saveSession(ctx, session, user)
	return user, nil
}

// profileFor loads the profile of the session's user, creating it on first
// sign-in.
func (uc *AuthUseCase) profileFor(ctx context.Context, session *entity.Session, username string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	if username == "" {
		username = session.DisplayName
	}
	if username == "" {
		username = strings.SplitN(session.Email, "@", 2)[0]
	}
	user = &entity.User{
		ID:       session.UserID,
		Username: username,
		Email:    session.Email,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) saveSession(ctx context.Context, session *entity.Session, user *entity.User) {
	if err := uc.local.Put(ctx, keySession, session); err != nil {
		logger.Warn("Failed to persist session: %v", err)
	}
	snapshot := entity.SessionSnapshot{User: *user, Authenticated: true, SavedAt: uc.now()}
	if err := uc.local.Put(ctx, keySessionSnapshot, snapshot); err != nil {
		logger.Warn("Failed to persist session snapshot: %v", err)
	}
}

func (uc *AuthUseCase) forgetSession(ctx context.Context) {
	for _, key := range []string{keySession, keySessionSnapshot} {
		if err := uc.local.Delete(ctx, key); err != nil {
			logger.Warn("Failed to clear %s: %v", key, err)
		}
	}
}

// tokenExpired reads the exp claim without verifying the signature; the
// identity service does the real verification.
func tokenExpired(raw string, now time.Time) bool {
	if raw == "" {
		return true
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
