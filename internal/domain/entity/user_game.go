package entity

import (
	"time"
)

type GameStatus string

const (
	StatusPlaying   GameStatus = "playing"
	StatusCompleted GameStatus = "completed"
	StatusOnHold    GameStatus = "on-hold"
	StatusDropped   GameStatus = "dropped"
	StatusPlanning  GameStatus = "planning"
)

// AllStatuses lists every status in display order.
var AllStatuses = []GameStatus{StatusPlaying, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanning}

func (s GameStatus) Valid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// UserGameRecord tracks one game in a user's personal collection.
type UserGameRecord struct {
	ID                    string     `json:"id" firestore:"id"`
	UserID                string     `json:"user_id" firestore:"userId"`
	GameID                string     `json:"game_id" firestore:"gameId"`
	UserRating            float64    `json:"user_rating" firestore:"userRating"`
	HoursPlayed           int        `json:"hours_played" firestore:"hoursPlayed"`
	AchievementsCompleted int        `json:"achievements_completed" firestore:"achievementsCompleted"`
	TotalAchievements     int        `json:"total_achievements" firestore:"totalAchievements"`
	CompletionPercentage  float64    `json:"completion_percentage" firestore:"completionPercentage"`
	Status                GameStatus `json:"status" firestore:"status"`
	Notes                 string     `json:"notes,omitempty" firestore:"notes,omitempty"`
	LastPlayed            time.Time  `json:"last_played" firestore:"lastPlayed"`
	CreatedAt             time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt             time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// RecordPatch carries the fields of an update; nil means unchanged.
type RecordPatch struct {
	UserRating            *float64    `json:"user_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	HoursPlayed           *int        `json:"hours_played,omitempty" validate:"omitempty,gte=0"`
	AchievementsCompleted *int        `json:"achievements_completed,omitempty" validate:"omitempty,gte=0"`
	CompletionPercentage  *float64    `json:"completion_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Status                *GameStatus `json:"status,omitempty" validate:"omitempty,oneof=playing completed on-hold dropped planning"`
	Notes                 *string     `json:"notes,omitempty" validate:"omitempty,max=2000"`
	LastPlayed            *time.Time  `json:"last_played,omitempty"`
}

// Apply returns a copy of r with every non-nil field of p written over it.
func (r UserGameRecord) Apply(p RecordPatch) UserGameRecord {
	out := r
	if p.UserRating != nil {
		out.UserRating = *p.UserRating
	}
	if p.HoursPlayed != nil {
		out.HoursPlayed = *p.HoursPlayed
	}
	if p.AchievementsCompleted != nil {
		out.AchievementsCompleted = *p.AchievementsCompleted
	}
	if p.CompletionPercentage != nil {
		out.CompletionPercentage = *p.CompletionPercentage
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.LastPlayed != nil {
		out.LastPlayed = *p.LastPlayed
	}
	return out
}

type CollectionStats struct {
	TotalGames            int                `json:"total_games"`
	TotalHours            int                `json:"total_hours"`
	AverageRating         float64            `json:"average_rating"`
	CompletionRate        float64            `json:"completion_rate"`
	FavoriteGenre         string             `json:"favorite_genre"`
	FavoritePlatform      string             `json:"favorite_platform"`
	AchievementsTotal     int                `json:"achievements_total"`
	AchievementsCompleted int                `json:"achievements_completed"`
	GamesByStatus         map[GameStatus]int `json:"games_by_status"`
}
