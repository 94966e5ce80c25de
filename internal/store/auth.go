package store

import (
	"gamecatalog/internal/domain/entity"
)

type AuthStatus string

const (
	AuthUnchecked     AuthStatus = "anonymous-unchecked"
	AuthChecking      AuthStatus = "checking"
	AuthAuthenticated AuthStatus = "authenticated"
	AuthAnonymous     AuthStatus = "anonymous-checked"
	AuthLoggingIn     AuthStatus = "logging-in"
	AuthRegistering   AuthStatus = "registering"
	AuthLoggingOut    AuthStatus = "logging-out"
)

type AuthState struct {
	Status AuthStatus   `json:"status"`
	User   *entity.User `json:"user"`

	// CachedUser and LikelyAuthenticated come from the on-device snapshot and
	// are only a rendering hint until the session is re-verified.
	CachedUser          *entity.User `json:"cached_user,omitempty"`
	LikelyAuthenticated bool         `json:"likely_authenticated"`

	Initialized bool   `json:"initialized"`
	Loading     bool   `json:"loading"`
	Error       string `json:"error,omitempty"`

	// status to fall back to when a login or registration attempt fails
	returnTo AuthStatus
}

func InitialAuthState() AuthState {
	return AuthState{Status: AuthUnchecked}
}

func (a AuthState) IsAuthenticated() bool {
	return a.Status == AuthAuthenticated && a.User != nil
}

func (a AuthState) busy() bool {
	switch a.Status {
	case AuthChecking, AuthLoggingIn, AuthRegistering, AuthLoggingOut:
		return true
	}
	return false
}

// RestoreHint applies a cached snapshot without authenticating.
func RestoreHint(a AuthState, snapshot *entity.SessionSnapshot) AuthState {
	if snapshot == nil || !snapshot.Authenticated || a.Status != AuthUnchecked {
		return a
	}
	user := snapshot.User
	a.CachedUser = &user
	a.LikelyAuthenticated = true
	return a
}

// BeginSessionCheck moves to checking. ok is false when another auth operation
// is already running, in which case the state is returned unchanged.
func BeginSessionCheck(a AuthState) (next AuthState, ok bool) {
	if a.busy() {
		return a, false
	}
	a.Status = AuthChecking
	a.Loading = true
	a.Error = ""
	return a, true
}

// SessionRestored completes a session check. ok is false when the check is no
// longer current, for example because a logout started meanwhile.
func SessionRestored(a AuthState, user entity.User) (AuthState, bool) {
	if a.Status != AuthChecking {
		return a, false
	}
	return authenticated(a, user), true
}

// SessionAbsent ends a check without a session. errMsg is empty when there was
// simply no session to restore.
func SessionAbsent(a AuthState, errMsg string) (AuthState, bool) {
	if a.Status != AuthChecking {
		return a, false
	}
	a.Status = AuthAnonymous
	a.User = nil
	a.CachedUser = nil
	a.LikelyAuthenticated = false
	a.Initialized = true
	a.Loading = false
	a.Error = errMsg
	return a, true
}

func authenticated(a AuthState, user entity.User) AuthState {
	a.Status = AuthAuthenticated
	a.User = &user
	a.CachedUser = nil
	a.LikelyAuthenticated = false
	a.Initialized = true
	a.Loading = false
	a.Error = ""
	a.returnTo = ""
	return a
}

func BeginLogin(a AuthState) (AuthState, bool) {
	return beginCredentials(a, AuthLoggingIn)
}

func BeginRegister(a AuthState) (AuthState, bool) {
	return beginCredentials(a, AuthRegistering)
}

func beginCredentials(a AuthState, status AuthStatus) (AuthState, bool) {
	if a.busy() {
		return a, false
	}
	a.returnTo = a.Status
	a.Status = status
	a.Loading = true
	a.Error = ""
	return a, true
}

func (a AuthState) submittingCredentials() bool {
	return a.Status == AuthLoggingIn || a.Status == AuthRegistering
}

// CredentialsAccepted completes a login or registration. Like SessionRestored
// it refuses when the attempt was superseded.
func CredentialsAccepted(a AuthState, user entity.User) (AuthState, bool) {
	if !a.submittingCredentials() {
		return a, false
	}
	return authenticated(a, user), true
}

// CredentialsRejected restores the status held before the attempt and leaves
// any existing user untouched.
func CredentialsRejected(a AuthState, errMsg string) (AuthState, bool) {
	if !a.submittingCredentials() {
		return a, false
	}
	back := a.returnTo
	if back == "" {
		back = AuthAnonymous
	}
	a.Status = back
	a.returnTo = ""
	a.Loading = false
	a.Error = errMsg
	return a, true
}

func BeginLogout(a AuthState) (AuthState, bool) {
	if a.Status == AuthLoggingOut {
		return a, false
	}
	a.Status = AuthLoggingOut
	a.Loading = true
	return a, true
}

func LoggedOut(a AuthState) AuthState {
	a.Status = AuthAnonymous
	a.User = nil
	a.CachedUser = nil
	a.LikelyAuthenticated = false
	a.Initialized = true
	a.Loading = false
	a.Error = ""
	a.returnTo = ""
	return a
}

// SetUser replaces the profile fields of the signed-in user.
func SetUser(a AuthState, user entity.User) AuthState {
	if a.User == nil {
		return a
	}
	a.User = &user
	return a
}

// SetAuthError surfaces a message without changing status, used for input
// rejected before any call to the identity service.
func SetAuthError(a AuthState, errMsg string) AuthState {
	a.Error = errMsg
	return a
}

func ClearAuthError(a AuthState) AuthState {
	a.Error = ""
	return a
}
