package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
	"gamecatalog/pkg/errors"
	"gamecatalog/pkg/logger"
)

const profilesCollection = "user_profiles"

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.client.Collection(profilesCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Unavailable("Failed to create profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(profilesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Profile", err)
		}
		return nil, errors.Unavailable("Failed to get profile", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	logger.Debug("Updating profile in Firestore, ID: %s", user.ID)

	updateData := map[string]interface{}{
		"username":  user.Username,
		"avatarUrl": user.AvatarURL,
		"updatedAt": time.Now(),
	}

	// Only include non-empty fields so partial edits don't blank stored values
	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection(profilesCollection).Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		logger.Error("Firestore profile update error: %v", err)
		return errors.Unavailable("Failed to update profile", err)
	}
	return nil
}
