package repository

import (
	"strings"
	"time"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/repository"
)

// TransformGame maps a raw games document onto entity.Game. Platform and genre
// tags are read either from flat string arrays or from the joined shape
// [{platform: {name}}] / [{genre: {name}}]; unnamed entries are dropped. ok is
// false when the document has no title.
func TransformGame(id string, data map[string]interface{}, images repository.ImageResolver) (entity.Game, bool) {
	title := asString(data["title"])
	if title == "" {
		return entity.Game{}, false
	}

	game := entity.Game{
		ID:          id,
		Title:       title,
		Description: asString(data["description"]),
		ImageURL:    firstString(data, "image_url", "imageUrl"),
		Rating:      asFloat(data["rating"]),
		Price:       asFloat(data["price"]),
		ReleaseDate: releaseDate(data),
		Platforms:   tagNames(data, "platforms", "game_platforms", "gamePlatforms", "platform"),
		Genres:      tagNames(data, "genres", "game_genres", "gameGenres", "genre"),
	}
	if v, ok := data["achievements"]; ok && v != nil {
		n := int(asFloat(v))
		game.Achievements = &n
	}
	if images != nil && game.ImageURL != "" {
		game.ImageURL = images.ResolveImageURL(game.ImageURL)
	}
	return game, true
}

func releaseDate(data map[string]interface{}) string {
	for _, key := range []string{"release_date", "releaseDate"} {
		switch v := data[key].(type) {
		case string:
			return v
		case time.Time:
			return v.Format("2006-01-02")
		}
	}
	return ""
}

func tagNames(data map[string]interface{}, flatKey, joinedKey, joinedAltKey, inner string) []string {
	names := make([]string, 0)
	if flat, ok := data[flatKey].([]interface{}); ok {
		for _, v := range flat {
			if s := strings.TrimSpace(asString(v)); s != "" {
				names = append(names, s)
			}
		}
		return names
	}

	joined, ok := data[joinedKey].([]interface{})
	if !ok {
		joined, _ = data[joinedAltKey].([]interface{})
	}
	for _, row := range joined {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		// both singular and plural relation names occur in exported data
		rel, ok := m[inner].(map[string]interface{})
		if !ok {
			rel, _ = m[inner+"s"].(map[string]interface{})
		}
		if s := strings.TrimSpace(asString(rel["name"])); s != "" {
			names = append(names, s)
		}
	}
	return names
}

func firstString(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := asString(data[key]); s != "" {
			return s
		}
	}
	return ""
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// Firestore hands numbers back as int64 or float64 depending on how they were written.
func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float32:
		return float64(n)
	}
	return 0
}
