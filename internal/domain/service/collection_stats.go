package service

import (
	"gamecatalog/internal/domain/entity"
)

// EmptyStats is the statistics value for a collection with no records.
func EmptyStats() entity.CollectionStats {
	return entity.CollectionStats{GamesByStatus: emptyStatusBuckets()}
}

// ComputeStats derives collection statistics from scratch. games supplies the
// catalog metadata joined by GameID; records whose game is unknown still count
// towards every figure except the genre/platform tallies.
func ComputeStats(records []entity.UserGameRecord, games map[string]entity.Game) entity.CollectionStats {
	stats := EmptyStats()
	if len(records) == 0 {
		return stats
	}

	var ratingSum, completionSum float64
	genres := newTally()
	platforms := newTally()

	for _, record := range records {
		stats.TotalGames++
		stats.TotalHours += record.HoursPlayed
		stats.AchievementsCompleted += record.AchievementsCompleted
		ratingSum += record.UserRating
		completionSum += record.CompletionPercentage

		if record.Status.Valid() {
			stats.GamesByStatus[record.Status]++
		}

		game, ok := games[record.GameID]
		if !ok {
			stats.AchievementsTotal += record.TotalAchievements
			continue
		}
		if total, known := game.TotalAchievements(); known {
			stats.AchievementsTotal += total
		} else {
			stats.AchievementsTotal += record.TotalAchievements
		}
		for _, genre := range game.Genres {
			genres.add(genre)
		}
		for _, platform := range game.Platforms {
			platforms.add(platform)
		}
	}

	stats.AverageRating = ratingSum / float64(stats.TotalGames)
	stats.CompletionRate = completionSum / float64(stats.TotalGames)
	stats.FavoriteGenre = genres.top()
	stats.FavoritePlatform = platforms.top()
	return stats
}

func emptyStatusBuckets() map[entity.GameStatus]int {
	buckets := make(map[entity.GameStatus]int, len(entity.AllStatuses))
	for _, status := range entity.AllStatuses {
		buckets[status] = 0
	}
	return buckets
}

// tally counts occurrences and remembers first-seen order for tie breaks.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if key == "" {
		return
	}
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

func (t *tally) top() string {
	best, bestCount := "", 0
	for _, key := range t.order {
		if t.counts[key] > bestCount {
			best, bestCount = key, t.counts[key]
		}
	}
	return best
}
