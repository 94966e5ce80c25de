package entity

type SortMode string

const (
	SortPopular SortMode = "popular"
	SortRating  SortMode = "rating"
	SortNewest  SortMode = "newest"
	SortTitle   SortMode = "title"
)

// FilterSpec is the client-only view specification over the catalog.
type FilterSpec struct {
	Platforms   []string `json:"platforms"`
	Genres      []string `json:"genres"`
	SortBy      SortMode `json:"sort_by"`
	SearchQuery string   `json:"search_query"`
}

// FilterPatch is a partial FilterSpec; nil fields are left untouched on merge.
type FilterPatch struct {
	Platforms   *[]string `json:"platforms,omitempty"`
	Genres      *[]string `json:"genres,omitempty"`
	SortBy      *SortMode `json:"sort_by,omitempty"`
	SearchQuery *string   `json:"search_query,omitempty"`
}

func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Platforms:   []string{},
		Genres:      []string{},
		SortBy:      SortPopular,
		SearchQuery: "",
	}
}

// Merge shallow-merges p into a copy of f.
func (f FilterSpec) Merge(p FilterPatch) FilterSpec {
	out := f
	if p.Platforms != nil {
		out.Platforms = append([]string{}, (*p.Platforms)...)
	}
	if p.Genres != nil {
		out.Genres = append([]string{}, (*p.Genres)...)
	}
	if p.SortBy != nil {
		out.SortBy = *p.SortBy
	}
	if p.SearchQuery != nil {
		out.SearchQuery = *p.SearchQuery
	}
	return out
}
