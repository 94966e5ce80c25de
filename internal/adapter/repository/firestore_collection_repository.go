package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
)

const userGamesCollection = "user_games"

// ErrAlreadyInCollection is returned when a user adds a game they already track.
var ErrAlreadyInCollection = errors.Conflict("Game is already in your collection")

type firestoreCollectionRepository struct {
	client *firestore.Client
}

func NewFirestoreCollectionRepository(client *firestore.Client) repository.CollectionRepository {
	return &firestoreCollectionRepository{client: client}
}

func (r *firestoreCollectionRepository) Create(ctx context.Context, record *entity.UserGameRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	col := r.client.Collection(userGamesCollection)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing := col.Where("userId", "==", record.UserID).Where("gameId", "==", record.GameID).Limit(1)
		iter := tx.Documents(existing)
		defer iter.Stop()

		_, err := iter.Next()
		if err == nil {
			return ErrAlreadyInCollection
		}
		if err != iterator.Done {
			return err
		}
		return tx.Create(col.Doc(record.ID), record)
	})
	if err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return err
		}
		return errors.Unavailable("Failed to add game to collection", err)
	}

	logger.Info("Added game %s to collection for user %s", record.GameID, record.UserID)
	return nil
}

func (r *firestoreCollectionRepository) GetByID(ctx context.Context, userID, id string) (*entity.UserGameRecord, error) {
	doc, err := r.client.Collection(userGamesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Collection record", err)
		}
		return nil, errors.Unavailable("Failed to get collection record", err)
	}

	var record entity.UserGameRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, errors.Internal("Failed to parse collection record", err)
	}
	// records of other users are reported as missing
	if record.UserID != userID {
		return nil, errors.NotFound("Collection record", nil)
	}
	return &record, nil
}

func (r *firestoreCollectionRepository) Update(ctx context.Context, record *entity.UserGameRecord) error {
	updates := []firestore.Update{
		{Path: "userRating", Value: record.UserRating},
		{Path: "hoursPlayed", Value: record.HoursPlayed},
		{Path: "achievementsCompleted", Value: record.AchievementsCompleted},
		{Path: "totalAchievements", Value: record.TotalAchievements},
		{Path: "completionPercentage", Value: record.CompletionPercentage},
		{Path: "status", Value: string(record.Status)},
		{Path: "notes", Value: record.Notes},
		{Path: "lastPlayed", Value: record.LastPlayed},
		{Path: "updatedAt", Value: record.UpdatedAt},
	}

	_, err := r.client.Collection(userGamesCollection).Doc(record.ID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Collection record", err)
		}
		return errors.Unavailable("Failed to update collection record", err)
	}
	return nil
}

func (r *firestoreCollectionRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.GetByID(ctx, userID, id); err != nil {
		return err
	}

	_, err := r.client.Collection(userGamesCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Unavailable("Failed to remove collection record", err)
	}

	logger.Info("Removed record %s from collection for user %s", id, userID)
	return nil
}

func (r *firestoreCollectionRepository) ListByUser(ctx context.Context, userID string) ([]entity.UserGameRecord, error) {
	iter := r.client.Collection(userGamesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	records := make([]entity.UserGameRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to get collection", err)
		}

		var record entity.UserGameRecord
		if err := doc.DataTo(&record); err != nil {
			logger.Warn("Error parsing collection record %s: %v", doc.Ref.ID, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
