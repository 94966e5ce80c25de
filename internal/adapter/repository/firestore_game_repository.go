package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
)

const gamesCollection = "games"

type firestoreGameRepository struct {
	client *firestore.Client
	images repository.ImageResolver
}

// NewFirestoreGameRepository builds the catalog reader. images may be nil, in
// which case image references are returned as stored.
func NewFirestoreGameRepository(client *firestore.Client, images repository.ImageResolver) repository.GameRepository {
	return &firestoreGameRepository{
		client: client,
		images: images,
	}
}

func (r *firestoreGameRepository) List(ctx context.Context) ([]entity.Game, error) {
	iter := r.client.Collection(gamesCollection).OrderBy("title", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	games := make([]entity.Game, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to load games", err)
		}
		game, ok := TransformGame(doc.Ref.ID, doc.Data(), r.images)
		if !ok {
			logger.Warn("Skipping malformed game document %s", doc.Ref.ID)
			continue
		}
		games = append(games, game)
	}

	logger.Debug("Loaded %d games", len(games))
	return games, nil
}

func (r *firestoreGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	doc, err := r.client.Collection(gamesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Game", err)
		}
		return nil, errors.Unavailable("Failed to get game", err)
	}

	game, ok := TransformGame(doc.Ref.ID, doc.Data(), r.images)
	if !ok {
		return nil, errors.Internal("Failed to parse game data", nil)
	}
	return &game, nil
}
