package entity

import (
	"time"
)

type FavoriteEntry struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	GameID    string    `json:"game_id" firestore:"gameId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
