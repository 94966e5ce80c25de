package firebase

import (
	"context"
	"errors"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"gamecatalog/internal/domain/entity"
	apperrors "gamecatalog/pkg/errors"
)

// FirebaseAuthClient is the identity service: the admin SDK verifies and
// revokes sessions, the identity toolkit exchanges a password for tokens.
type FirebaseAuthClient struct {
	client  *auth.Client
	toolkit *identitytoolkit.Service
}

func NewFirebaseAuthClient(ctx context.Context, client *auth.Client, apiKey string) (*FirebaseAuthClient, error) {
	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &FirebaseAuthClient{
		client:  client,
		toolkit: toolkit,
	}, nil
}

func (f *FirebaseAuthClient) SignUp(ctx context.Context, email, password, displayName string) (*entity.Session, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	if _, err := f.client.CreateUser(ctx, params); err != nil {
		return nil, signUpError(err)
	}

	return f.SignIn(ctx, email, password)
}

func (f *FirebaseAuthClient) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}

	resp, err := f.toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		return nil, signInError(err)
	}

	return &entity.Session{
		UserID:       resp.LocalId,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

func (f *FirebaseAuthClient) SignOut(ctx context.Context, userID string) error {
	return f.client.RevokeRefreshTokens(ctx, userID)
}

// VerifySession checks idToken against the identity service. A token that is
// expired, revoked or malformed means there is no session: nil, nil.
func (f *FirebaseAuthClient) VerifySession(ctx context.Context, idToken string) (*entity.Session, error) {
	token, err := f.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) || auth.IsIDTokenRevoked(err) || auth.IsIDTokenInvalid(err) || auth.IsUserNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.Unavailable("Failed to verify session", err)
	}

	record, err := f.client.GetUser(ctx, token.UID)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.Unavailable("Failed to load account", err)
	}

	return &entity.Session{
		UserID:      record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		IDToken:     idToken,
		ExpiresAt:   time.Unix(token.Expires, 0),
	}, nil
}

// signUpError keeps the identity service's own text for rejected input, such
// as a weak password or a malformed email. Only infrastructure failures are
// replaced by a generic message.
func signUpError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return apperrors.Conflict("An account with this email already exists")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled),
		errorutils.IsUnavailable(err), errorutils.IsInternal(err),
		errorutils.IsDeadlineExceeded(err), errorutils.IsUnknown(err),
		errorutils.IsResourceExhausted(err):
		return apperrors.Unavailable("Failed to create account", err)
	}
	return apperrors.BadRequest(err.Error(), err)
}

// signInError turns identity toolkit error codes into messages fit for the user.
func signInError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return apperrors.Unavailable("Sign-in service unavailable", err)
	}

	code := gerr.Message
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return apperrors.Unauthorized("Invalid email or password", err)
	case "USER_DISABLED":
		return apperrors.Forbidden("This account has been disabled", err)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return apperrors.Unavailable("Too many attempts, try again later", err)
	}
	if gerr.Code >= 500 {
		return apperrors.Unavailable("Sign-in service unavailable", err)
	}
	return apperrors.BadRequest(gerr.Message, err)
}
