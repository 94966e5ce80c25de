package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefixResolver string

func (p prefixResolver) ResolveImageURL(ref string) string {
	return string(p) + ref
}

func TestTransformGame_JoinedShape(t *testing.T) {
	data := map[string]interface{}{
		"title":        "Hades",
		"description":  "roguelike",
		"image_url":    "images/hades.png",
		"rating":       int64(5),
		"price":        24.99,
		"release_date": "2020-09-17",
		"achievements": int64(49),
		"game_platforms": []interface{}{
			map[string]interface{}{"platforms": map[string]interface{}{"name": "PC"}},
			map[string]interface{}{"platform": map[string]interface{}{"name": "Nintendo Switch"}},
			map[string]interface{}{"platforms": nil},
		},
		"game_genres": []interface{}{
			map[string]interface{}{"genres": map[string]interface{}{"name": "Action"}},
			"garbage",
		},
	}

	game, ok := TransformGame("g1", data, prefixResolver("https://cdn/"))

	require.True(t, ok)
	assert.Equal(t, "g1", game.ID)
	assert.Equal(t, "https://cdn/images/hades.png", game.ImageURL)
	assert.Equal(t, 5.0, game.Rating)
	assert.Equal(t, 24.99, game.Price)
	assert.Equal(t, []string{"PC", "Nintendo Switch"}, game.Platforms)
	assert.Equal(t, []string{"Action"}, game.Genres)
	total, known := game.TotalAchievements()
	assert.True(t, known)
	assert.Equal(t, 49, total)
}

func TestTransformGame_FlatShape(t *testing.T) {
	released := time.Date(2019, 3, 22, 0, 0, 0, 0, time.UTC)
	data := map[string]interface{}{
		"title":       "Sekiro",
		"imageUrl":    "https://example.com/sekiro.jpg",
		"releaseDate": released,
		"platforms":   []interface{}{"PC", "", "Xbox"},
		"genres":      []interface{}{"Action"},
	}

	game, ok := TransformGame("g2", data, nil)

	require.True(t, ok)
	assert.Equal(t, "https://example.com/sekiro.jpg", game.ImageURL)
	assert.Equal(t, "2019-03-22", game.ReleaseDate)
	assert.Equal(t, []string{"PC", "Xbox"}, game.Platforms)
	_, known := game.TotalAchievements()
	assert.False(t, known)
}

func TestTransformGame_MissingTitle(t *testing.T) {
	_, ok := TransformGame("g3", map[string]interface{}{"rating": 3.0}, nil)
	assert.False(t, ok)
}
