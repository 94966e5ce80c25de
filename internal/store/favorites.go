package store

import (
	"gamecatalog/internal/domain/entity"
)

type FavoritesState struct {
	Items   []entity.Game  `json:"items"`
	Pending map[string]int `json:"pending"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`

	// Revision counts toggles; each toggle is recorded even when two of them
	// cancel out.
	Revision uint64 `json:"revision"`

	// last toggle revision per game, used to decide whether a rollback is stale
	toggledAt map[string]uint64
}

func InitialFavoritesState() FavoritesState {
	return FavoritesState{
		Items:     []entity.Game{},
		Pending:   map[string]int{},
		toggledAt: map[string]uint64{},
	}
}

// ToggleFavorite flips membership of game and reports whether it was added.
func ToggleFavorite(f FavoritesState, game entity.Game) (next FavoritesState, added bool) {
	added = !IsFavorite(f, game.ID)
	next = setMembership(f, game, added)
	next.Revision = f.Revision + 1
	next.toggledAt = copyCounters(f.toggledAt)
	next.toggledAt[game.ID] = next.Revision
	return next, added
}

// ToggleRevision is the revision of the latest toggle of gameID, zero if none.
func ToggleRevision(f FavoritesState, gameID string) uint64 {
	return f.toggledAt[gameID]
}

// RollbackToggle undoes the toggle recorded at revision for game. If the game
// was toggled again since, the newer toggle wins and nothing changes.
func RollbackToggle(f FavoritesState, game entity.Game, revision uint64, wasAdded bool) FavoritesState {
	if f.toggledAt[game.ID] != revision {
		return f
	}
	return setMembership(f, game, !wasAdded)
}

func MarkPending(f FavoritesState, gameID string) FavoritesState {
	f.Pending = copyPending(f.Pending)
	f.Pending[gameID]++
	f.Loading = true
	f.Error = ""
	return f
}

func SettlePending(f FavoritesState, gameID string, errMsg string) FavoritesState {
	f.Pending = copyPending(f.Pending)
	if f.Pending[gameID] > 1 {
		f.Pending[gameID]--
	} else {
		delete(f.Pending, gameID)
	}
	f.Loading = len(f.Pending) > 0
	if errMsg != "" {
		f.Error = errMsg
	}
	return f
}

func FavoritesLoading(f FavoritesState) FavoritesState {
	f.Loading = true
	f.Error = ""
	return f
}

// FavoritesLoaded replaces the list, dropping duplicate ids.
func FavoritesLoaded(f FavoritesState, games []entity.Game) FavoritesState {
	items := make([]entity.Game, 0, len(games))
	seen := make(map[string]struct{}, len(games))
	for _, g := range games {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		items = append(items, g)
	}
	f.Items = items
	f.Loading = len(f.Pending) > 0
	f.Error = ""
	return f
}

func FavoritesFailed(f FavoritesState, errMsg string) FavoritesState {
	f.Loading = len(f.Pending) > 0
	f.Error = errMsg
	return f
}

func ClearFavorites(f FavoritesState) FavoritesState {
	f.Items = []entity.Game{}
	f.Revision++
	f.toggledAt = map[string]uint64{}
	return f
}

func ClearFavoritesError(f FavoritesState) FavoritesState {
	f.Error = ""
	return f
}

func IsFavorite(f FavoritesState, gameID string) bool {
	for _, g := range f.Items {
		if g.ID == gameID {
			return true
		}
	}
	return false
}

func FavoriteIDs(f FavoritesState) []string {
	ids := make([]string, len(f.Items))
	for i, g := range f.Items {
		ids[i] = g.ID
	}
	return ids
}

func FavoritesCount(f FavoritesState) int {
	return len(f.Items)
}

func AverageFavoriteRating(f FavoritesState) float64 {
	if len(f.Items) == 0 {
		return 0
	}
	var sum float64
	for _, g := range f.Items {
		sum += g.Rating
	}
	return sum / float64(len(f.Items))
}

func setMembership(f FavoritesState, game entity.Game, member bool) FavoritesState {
	present := IsFavorite(f, game.ID)
	switch {
	case member && !present:
		items := make([]entity.Game, 0, len(f.Items)+1)
		items = append(items, f.Items...)
		f.Items = append(items, game)
	case !member && present:
		items := make([]entity.Game, 0, len(f.Items))
		for _, g := range f.Items {
			if g.ID != game.ID {
				items = append(items, g)
			}
		}
		f.Items = items
	}
	return f
}

func copyPending(in map[string]int) map[string]int {
	out := make(map[string]int, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyCounters(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
