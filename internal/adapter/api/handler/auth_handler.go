package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/usecase"
	"gamecatalog/pkg/logger"
	"gamecatalog/pkg/response"
)

type AuthHandler struct {
	authUseCase       *usecase.AuthUseCase
	favoriteUseCase   *usecase.FavoriteUseCase
	collectionUseCase *usecase.CollectionUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, favoriteUseCase *usecase.FavoriteUseCase, collectionUseCase *usecase.CollectionUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase:       authUseCase,
		favoriteUseCase:   favoriteUseCase,
		collectionUseCase: collectionUseCase,
	}
}

func (h *AuthHandler) GetState(c echo.Context) error {
	return response.Success(c, h.authUseCase.State())
}

func (h *AuthHandler) CheckSession(c echo.Context) error {
	if err := h.authUseCase.CheckSession(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	h.loadUserData(c.Request().Context())
	return response.Success(c, h.authUseCase.State())
}

// Input is validated by the use case so that a rejected form still shows up
// as an error in the auth state.
func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if _, err := h.authUseCase.Login(c.Request().Context(), req); err != nil {
		return response.Error(c, err)
	}
	h.loadUserData(c.Request().Context())
	return response.Success(c, h.authUseCase.State())
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if _, err := h.authUseCase.Register(c.Request().Context(), req); err != nil {
		return response.Error(c, err)
	}
	h.loadUserData(c.Request().Context())
	return response.Created(c, h.authUseCase.State())
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUseCase.Logout(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.authUseCase.State())
}

func (h *AuthHandler) ClearError(c echo.Context) error {
	h.authUseCase.ClearError()
	return response.Success(c, h.authUseCase.State())
}

// loadUserData refreshes favorites and collection after a sign-in. Their
// failures are already recorded in the state, so the sign-in still succeeds.
func (h *AuthHandler) loadUserData(ctx context.Context) {
	if err := usecase.LoadUserData(ctx, h.authUseCase, h.favoriteUseCase, h.collectionUseCase); err != nil {
		logger.Warn("Failed to load user data after sign-in: %v", err)
	}
}
