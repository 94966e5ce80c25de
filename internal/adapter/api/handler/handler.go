package handler

import (
	"gamecatalog/internal/usecase"
)

var (
	authHandler       *AuthHandler
	userHandler       *UserHandler
	gameHandler       *GameHandler
	favoriteHandler   *FavoriteHandler
	collectionHandler *CollectionHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	collectionUseCase *usecase.CollectionUseCase,
	featuredLimit int,
) {
	authHandler = NewAuthHandler(authUseCase, favoriteUseCase, collectionUseCase)
	userHandler = NewUserHandler(userUseCase)
	gameHandler = NewGameHandler(catalogUseCase, featuredLimit)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	collectionHandler = NewCollectionHandler(collectionUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetGameHandler() *GameHandler {
	return gameHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetCollectionHandler() *CollectionHandler {
	return collectionHandler
}
