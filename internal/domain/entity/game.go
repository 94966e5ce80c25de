package entity

import (
	"strings"
	"time"
)

// Game is a read-only catalog entry cached from the data service.
type Game struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"image_url"`
	Rating       float64  `json:"rating"`
	Price        float64  `json:"price"`
	ReleaseDate  string   `json:"release_date"`
	Achievements *int     `json:"achievements,omitempty"`
	Platforms    []string `json:"platforms"`
	Genres       []string `json:"genres"`
}

var releaseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ReleaseTime parses ReleaseDate. ok is false for empty or unparseable dates.
func (g Game) ReleaseTime() (time.Time, bool) {
	raw := strings.TrimSpace(g.ReleaseDate)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TotalAchievements reports the achievement count when the catalog knows it.
func (g Game) TotalAchievements() (int, bool) {
	if g.Achievements == nil {
		return 0, false
	}
	return *g.Achievements, true
}
