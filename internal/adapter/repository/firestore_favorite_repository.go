package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
)

const favoritesCollection = "user_favorites"

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{client: client}
}

// Documents are keyed userID_gameID so one user can hold a game only once.
func favoriteID(userID, gameID string) string {
	return fmt.Sprintf("%s_%s", userID, gameID)
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, gameID string) (*entity.FavoriteEntry, error) {
	ref := r.client.Collection(favoritesCollection).Doc(favoriteID(userID, gameID))
	entry := entity.FavoriteEntry{
		ID:        ref.ID,
		UserID:    userID,
		GameID:    gameID,
		CreatedAt: time.Now(),
	}

	_, err := ref.Create(ctx, entry)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return &entry, nil
		}
		return nil, errors.Unavailable("Failed to add favorite", err)
	}

	logger.Info("Added game %s to favorites for user %s", gameID, userID)
	return &entry, nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, gameID string) error {
	_, err := r.client.Collection(favoritesCollection).Doc(favoriteID(userID, gameID)).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return errors.Unavailable("Failed to remove favorite", err)
	}

	logger.Info("Removed game %s from favorites for user %s", gameID, userID)
	return nil
}

func (r *firestoreFavoriteRepository) Exists(ctx context.Context, userID, gameID string) (bool, error) {
	doc, err := r.client.Collection(favoritesCollection).Doc(favoriteID(userID, gameID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Unavailable("Failed to check favorite", err)
	}
	return doc.Exists(), nil
}

func (r *firestoreFavoriteRepository) ListGameIDs(ctx context.Context, userID string) ([]string, error) {
	docs, err := r.client.Collection(favoritesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Unavailable("Failed to get favorites", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		var entry entity.FavoriteEntry
		if err := doc.DataTo(&entry); err != nil {
			logger.Warn("Error parsing favorite %s: %v", doc.Ref.ID, err)
			continue
		}
		ids = append(ids, entry.GameID)
	}
	return ids, nil
}

func (r *firestoreFavoriteRepository) Clear(ctx context.Context, userID string) error {
	docs, err := r.client.Collection(favoritesCollection).
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Unavailable("Failed to get favorites", err)
	}
	if len(docs) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, doc := range docs {
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return errors.Internal("Failed to queue favorite delete", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	failed := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil && status.Code(err) != codes.NotFound {
			failed++
		}
	}
	if failed > 0 {
		return errors.Unavailable(fmt.Sprintf("Failed to clear %d favorites", failed), nil)
	}

	logger.Info("Cleared %d favorites for user %s", len(docs), userID)
	return nil
}
