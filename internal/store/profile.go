package store

import (
	"sort"
	"strings"
	"time"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/domain/service"
	"gamecatalog/pkg/utils"
)

// RecordView narrows the collection list. An empty Status shows every record.
type RecordView struct {
	Status entity.GameStatus `json:"status,omitempty"`
	Search string            `json:"search,omitempty"`
}

type ProfileState struct {
	Records  []entity.UserGameRecord `json:"records"`
	Stats    entity.CollectionStats  `json:"stats"`
	View     RecordView              `json:"view"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Loading  bool                    `json:"loading"`
	Error    string                  `json:"error,omitempty"`
}

func InitialProfileState(pageSize int) ProfileState {
	if pageSize <= 0 {
		pageSize = 10
	}
	return ProfileState{
		Records:  []entity.UserGameRecord{},
		Stats:    service.EmptyStats(),
		Page:     1,
		PageSize: pageSize,
	}
}

func ProfileLoading(p ProfileState) ProfileState {
	p.Loading = true
	p.Error = ""
	return p
}

func ProfileFailed(p ProfileState, errMsg string) ProfileState {
	p.Loading = false
	p.Error = errMsg
	return p
}

func ClearProfileError(p ProfileState) ProfileState {
	p.Error = ""
	return p
}

func RecordsLoaded(p ProfileState, records []entity.UserGameRecord, games map[string]entity.Game) ProfileState {
	p.Records = append([]entity.UserGameRecord{}, records...)
	p.Loading = false
	p.Error = ""
	return RefreshStats(p, games)
}

// RecordAdded prepends record. ok is false when the user already tracks the
// game, and the state is returned unchanged.
func RecordAdded(p ProfileState, record entity.UserGameRecord, games map[string]entity.Game) (next ProfileState, ok bool) {
	if HasRecordFor(p, record.UserID, record.GameID) {
		return p, false
	}
	records := make([]entity.UserGameRecord, 0, len(p.Records)+1)
	records = append(records, record)
	p.Records = append(records, p.Records...)
	p.Loading = false
	p.Error = ""
	return RefreshStats(p, games), true
}

// RecordUpdated merges patch into the record with id and stamps UpdatedAt.
func RecordUpdated(p ProfileState, id string, patch entity.RecordPatch, at time.Time, games map[string]entity.Game) (next ProfileState, ok bool) {
	idx := recordIndex(p, id)
	if idx < 0 {
		return p, false
	}
	records := append([]entity.UserGameRecord{}, p.Records...)
	updated := records[idx].Apply(patch)
	updated.UpdatedAt = at
	records[idx] = updated
	p.Records = records
	p.Loading = false
	p.Error = ""
	return RefreshStats(p, games), true
}

func RecordRemoved(p ProfileState, id string, games map[string]entity.Game) (next ProfileState, ok bool) {
	idx := recordIndex(p, id)
	if idx < 0 {
		return p, false
	}
	records := make([]entity.UserGameRecord, 0, len(p.Records)-1)
	records = append(records, p.Records[:idx]...)
	records = append(records, p.Records[idx+1:]...)
	p.Records = records
	p.Loading = false
	p.Error = ""
	if last := utils.TotalPages(len(VisibleRecords(p, games)), p.PageSize); p.Page > last {
		p.Page = last
	}
	return RefreshStats(p, games), true
}

// RefreshStats recomputes statistics from scratch.
func RefreshStats(p ProfileState, games map[string]entity.Game) ProfileState {
	p.Stats = service.ComputeStats(p.Records, games)
	return p
}

// SetRecordView changes the list filter and rewinds to the first page.
func SetRecordView(p ProfileState, view RecordView) ProfileState {
	p.View = view
	p.Page = 1
	return p
}

func SetRecordPage(p ProfileState, page int) ProfileState {
	if page < 1 {
		page = 1
	}
	p.Page = page
	return p
}

func ResetProfile(p ProfileState) ProfileState {
	return InitialProfileState(p.PageSize)
}

// VisibleRecords applies the record view. Search matches the notes and the
// game title when games is given.
func VisibleRecords(p ProfileState, games ...map[string]entity.Game) []entity.UserGameRecord {
	query := strings.ToLower(strings.TrimSpace(p.View.Search))
	var index map[string]entity.Game
	if len(games) > 0 {
		index = games[0]
	}
	out := make([]entity.UserGameRecord, 0, len(p.Records))
	for _, r := range p.Records {
		if p.View.Status != "" && r.Status != p.View.Status {
			continue
		}
		if query != "" && !recordMatches(r, index, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func PagedRecords(p ProfileState, games ...map[string]entity.Game) []entity.UserGameRecord {
	return utils.Paginate(VisibleRecords(p, games...), p.Page, p.PageSize)
}

func RecordByID(p ProfileState, id string) (entity.UserGameRecord, bool) {
	if idx := recordIndex(p, id); idx >= 0 {
		return p.Records[idx], true
	}
	return entity.UserGameRecord{}, false
}

func RecordByGameID(p ProfileState, gameID string) (entity.UserGameRecord, bool) {
	for _, r := range p.Records {
		if r.GameID == gameID {
			return r, true
		}
	}
	return entity.UserGameRecord{}, false
}

func HasRecordFor(p ProfileState, userID, gameID string) bool {
	for _, r := range p.Records {
		if r.UserID == userID && r.GameID == gameID {
			return true
		}
	}
	return false
}

func RecordsByStatus(p ProfileState, status entity.GameStatus) []entity.UserGameRecord {
	out := make([]entity.UserGameRecord, 0)
	for _, r := range p.Records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// RecentRecords returns up to limit records, most recently played first.
func RecentRecords(p ProfileState, limit int) []entity.UserGameRecord {
	out := append([]entity.UserGameRecord{}, p.Records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastPlayed.After(out[j].LastPlayed)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func recordIndex(p ProfileState, id string) int {
	for i, r := range p.Records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func recordMatches(r entity.UserGameRecord, games map[string]entity.Game, query string) bool {
	if strings.Contains(strings.ToLower(r.Notes), query) {
		return true
	}
	if g, ok := games[r.GameID]; ok && strings.Contains(strings.ToLower(g.Title), query) {
		return true
	}
	return false
}
