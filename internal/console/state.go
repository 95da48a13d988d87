package console

import "leadconsole/internal/domain"

// Mode tells which retrieval produced the displayed records.
type Mode string

const (
	ModePage   Mode = "page"
	ModeSearch Mode = "search"
	ModeFilter Mode = "filter"
)

const DefaultPageSize = 20

// PageSizes are the only page sizes the list accepts.
var PageSizes = []int{20, 50, 100}

func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Snapshot is an immutable copy of the list view state.
type Snapshot struct {
	Leads      []domain.Lead `json:"leads"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Loading    bool          `json:"loading"`
	SearchText string        `json:"searchText"`
	ShowFooter bool          `json:"showFooter"`
	Mode       Mode          `json:"mode"`
	CanPrev    bool          `json:"canPrev"`
	CanNext    bool          `json:"canNext"`

	// Version increases with every published change.
	Version uint64 `json:"version"`
}

type state struct {
	leads      []domain.Lead
	page       int
	pageSize   int
	total      int
	totalPages int
	searchText string
	showFooter bool
	mode       Mode
}

func (s state) snapshot(loading bool) Snapshot {
	leads := make([]domain.Lead, len(s.leads))
	copy(leads, s.leads)
	return Snapshot{
		Leads:      leads,
		Page:       s.page,
		PageSize:   s.pageSize,
		Total:      s.total,
		TotalPages: s.totalPages,
		Loading:    loading,
		SearchText: s.searchText,
		ShowFooter: s.showFooter,
		Mode:       s.mode,
		CanPrev:    s.showFooter && s.page > 1,
		CanNext:    s.showFooter && s.page < s.totalPages,
	}
}
