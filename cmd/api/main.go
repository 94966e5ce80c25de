package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"gamecatalog/internal/adapter/api"
	"gamecatalog/internal/adapter/api/handler"
	apimiddleware "gamecatalog/internal/adapter/api/middleware"
	"gamecatalog/internal/adapter/api/router"
	"gamecatalog/internal/adapter/repository"
	"gamecatalog/internal/infrastructure/firebase"
	"gamecatalog/internal/infrastructure/localstore"
	"gamecatalog/internal/infrastructure/metrics"
	"gamecatalog/internal/infrastructure/ratelimit"
	"gamecatalog/internal/infrastructure/storage"
	"gamecatalog/internal/infrastructure/websocket"
	"gamecatalog/internal/store"
	"gamecatalog/internal/usecase"
	"gamecatalog/pkg/config"
	"gamecatalog/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetDebug(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opt option.ClientOption
	if cfg.FirebaseServiceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	} else {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.FirebaseServiceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		opt = option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.StorageSignedURLs, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	identityClient, err := firebase.NewFirebaseAuthClient(ctx, authClient, cfg.FirebaseApiKey)
	if err != nil {
		log.Fatalf("Failed to initialize identity client: %v", err)
	}

	localStore, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer localStore.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	gameRepo := repository.NewFirestoreGameRepository(firestoreClient, storageClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	collectionRepo := repository.NewFirestoreCollectionRepository(firestoreClient)

	st := store.New(store.InitialState(store.Config{
		CatalogPageSize:    cfg.CatalogPageSize,
		CollectionPageSize: cfg.CollectionPageSize,
	}))

	authUseCase := usecase.NewAuthUseCase(st, identityClient, userRepo, localStore)
	userUseCase := usecase.NewUserUseCase(st, userRepo, localStore)
	catalogUseCase := usecase.NewCatalogUseCase(st, gameRepo, cfg.GameCacheTTL)
	favoriteUseCase := usecase.NewFavoriteUseCase(st, favoriteRepo, catalogUseCase, localStore)
	collectionUseCase := usecase.NewCollectionUseCase(st, collectionRepo, catalogUseCase)

	unwatch := collectionUseCase.WatchCatalog()
	defer unwatch()

	wsManager := websocket.NewManager(func() interface{} { return st.State() })
	wsManager.Start(ctx)

	unsubscribe := st.Subscribe(func(region store.Region, state store.State) {
		metrics.StateUpdates.WithLabelValues(string(region)).Inc()
		wsManager.Publish(websocket.StateEvent(string(region), regionOf(region, state)))
	})
	defer unsubscribe()

	handler.Setup(authUseCase, userUseCase, catalogUseCase, favoriteUseCase, collectionUseCase, cfg.FeaturedLimit)
	handler.SetupHealthHandler(st)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.Metrics())
	e.Use(apimiddleware.RateLimit(ratelimit.NewRateLimiter(cfg.RateLimitPerSecond, int(cfg.RateLimitPerSecond)*2)))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	go func() {
		if err := usecase.Bootstrap(ctx, authUseCase, catalogUseCase, favoriteUseCase, collectionUseCase); err != nil {
			logger.Warn("Startup finished with errors: %v", err)
		}
	}()

	go func() {
		log.Printf("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Info("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// regionOf picks the part of the state a region event carries.
func regionOf(region store.Region, state store.State) interface{} {
	switch region {
	case store.RegionAuth:
		return state.Auth
	case store.RegionCatalog:
		return state.Catalog
	case store.RegionFavorites:
		return state.Favorites
	default:
		return state.Profile
	}
}
