package middleware

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/internal/usecase"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/response"
)

// AuthMiddleware guards routes that act on the signed-in user's data. The
// session lives in the client state, so a request is authenticated exactly
// when the auth region holds a verified user.
type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := m.authUseCase.CurrentUser()
		if !ok {
			return response.Error(c, errors.Unauthorized("Sign in required", nil))
		}

		c.Set("uid", user.ID)
		return next(c)
	}
}
