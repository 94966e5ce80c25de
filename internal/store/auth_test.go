package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
)

func TestRestoreHint_NeverAuthenticates(t *testing.T) {
	snapshot := &entity.SessionSnapshot{User: entity.User{ID: "u1"}, Authenticated: true}

	a := RestoreHint(InitialAuthState(), snapshot)

	assert.True(t, a.LikelyAuthenticated)
	require.NotNil(t, a.CachedUser)
	assert.Equal(t, "u1", a.CachedUser.ID)
	assert.Nil(t, a.User)
	assert.False(t, a.IsAuthenticated())
}

func TestBeginSessionCheck_RejectsWhileBusy(t *testing.T) {
	a, ok := BeginSessionCheck(InitialAuthState())
	require.True(t, ok)
	assert.Equal(t, AuthChecking, a.Status)

	again, ok := BeginSessionCheck(a)
	assert.False(t, ok)
	assert.Equal(t, a, again)
}

func TestSessionAbsent_FailsClosed(t *testing.T) {
	a := RestoreHint(InitialAuthState(), &entity.SessionSnapshot{User: entity.User{ID: "u1"}, Authenticated: true})
	a, _ = BeginSessionCheck(a)

	a, ok := SessionAbsent(a, "service unavailable")
	require.True(t, ok)

	assert.Equal(t, AuthAnonymous, a.Status)
	assert.Nil(t, a.User)
	assert.Nil(t, a.CachedUser)
	assert.False(t, a.LikelyAuthenticated)
	assert.True(t, a.Initialized)
	assert.Equal(t, "service unavailable", a.Error)
}

func TestCredentialsRejected_RestoresPreviousStatus(t *testing.T) {
	a, _ := BeginSessionCheck(InitialAuthState())
	a, ok := SessionRestored(a, entity.User{ID: "u1"})
	require.True(t, ok)

	a, ok = BeginLogin(a)
	require.True(t, ok)
	a, ok = CredentialsRejected(a, "invalid password")
	require.True(t, ok)

	assert.Equal(t, AuthAuthenticated, a.Status)
	require.NotNil(t, a.User)
	assert.Equal(t, "u1", a.User.ID)
	assert.Equal(t, "invalid password", a.Error)
	assert.False(t, a.Loading)
}

func TestRegisterThenLogout(t *testing.T) {
	a, _ := BeginSessionCheck(InitialAuthState())
	a, ok := SessionAbsent(a, "")
	require.True(t, ok)
	a, ok = BeginRegister(a)
	require.True(t, ok)
	assert.Equal(t, AuthRegistering, a.Status)

	a, ok = CredentialsAccepted(a, entity.User{ID: "u2"})
	require.True(t, ok)
	assert.True(t, a.IsAuthenticated())

	a, ok = BeginLogout(a)
	require.True(t, ok)
	a = LoggedOut(a)
	assert.Equal(t, AuthAnonymous, a.Status)
	assert.Nil(t, a.User)
}

func TestCompletions_RefuseAfterLogout(t *testing.T) {
	user := entity.User{ID: "u1"}

	checking, _ := BeginSessionCheck(InitialAuthState())
	out, ok := BeginLogout(checking)
	require.True(t, ok)
	out = LoggedOut(out)

	next, ok := SessionRestored(out, user)
	assert.False(t, ok)
	assert.Equal(t, out, next)
	_, ok = SessionAbsent(out, "late failure")
	assert.False(t, ok)

	loggingIn, _ := BeginLogin(out)
	out, _ = BeginLogout(loggingIn)
	out = LoggedOut(out)

	next, ok = CredentialsAccepted(out, user)
	assert.False(t, ok)
	assert.Nil(t, next.User)
	_, ok = CredentialsRejected(out, "late rejection")
	assert.False(t, ok)
}
