package service

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gamecatalog/internal/domain/entity"
)

// TitleCollation is the locale used when ordering games by title.
var TitleCollation = language.English

// ParseSortMode maps user input, including legacy aliases, onto a SortMode.
func ParseSortMode(raw string) (entity.SortMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "popular", "popularity":
		return entity.SortPopular, true
	case "rating":
		return entity.SortRating, true
	case "newest", "release", "release_date":
		return entity.SortNewest, true
	case "title":
		return entity.SortTitle, true
	default:
		return "", false
	}
}

// ApplyFilters returns a new slice holding the games that satisfy spec, ordered
// by spec.SortBy. The input slice is never modified.
func ApplyFilters(games []entity.Game, spec entity.FilterSpec) []entity.Game {
	query := strings.ToLower(strings.TrimSpace(spec.SearchQuery))
	platforms := tagSet(spec.Platforms)
	genres := tagSet(spec.Genres)

	out := make([]entity.Game, 0, len(games))
	for _, game := range games {
		if !matchesSearch(game, query) {
			continue
		}
		if !sharesTag(game.Platforms, platforms) || !sharesTag(game.Genres, genres) {
			continue
		}
		out = append(out, game)
	}

	SortGames(out, spec.SortBy)
	return out
}

// SortGames orders games in place. Ties keep their incoming order.
func SortGames(games []entity.Game, mode entity.SortMode) {
	switch mode {
	case entity.SortTitle:
		col := collate.New(TitleCollation)
		sort.SliceStable(games, func(i, j int) bool {
			return col.CompareString(games[i].Title, games[j].Title) < 0
		})
	case entity.SortNewest:
		sortByRelease(games)
	default:
		// popular has no metric of its own and orders like rating
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].Rating > games[j].Rating
		})
	}
}

func sortByRelease(games []entity.Game) {
	type keyed struct {
		game     entity.Game
		released time.Time
	}
	keys := make([]keyed, len(games))
	for i, game := range games {
		// unparseable dates keep the zero time and land last
		t, _ := game.ReleaseTime()
		keys[i] = keyed{game: game, released: t}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].released.After(keys[j].released)
	})
	for i := range keys {
		games[i] = keys[i].game
	}
}

func matchesSearch(game entity.Game, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(game.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(game.Description), query) {
		return true
	}
	for _, genre := range game.Genres {
		if strings.Contains(strings.ToLower(genre), query) {
			return true
		}
	}
	return false
}

func sharesTag(tags []string, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range tags {
		if _, ok := selected[tag]; ok {
			return true
		}
	}
	return false
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}
