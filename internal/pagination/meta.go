package pagination

import "github.com/rshade/charscope/internal/catalog"

// Meta contains metadata about the page currently on screen.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
	WindowStart int  `json:"window_start" yaml:"window_start"`
	WindowEnd   int  `json:"window_end"   yaml:"window_end"`
}

// NewMeta builds metadata for the current page. Next/previous availability
// comes from the API's links rather than from arithmetic on the page count.
func NewMeta(current int, info catalog.PageInfo) Meta {
	start, end := Window(current, info.Pages)
	return Meta{
		CurrentPage: current,
		TotalPages:  info.Pages,
		TotalItems:  info.Count,
		HasPrevious: info.HasPrev(),
		HasNext:     info.HasNext(),
		WindowStart: start,
		WindowEnd:   end,
	}
}

// PrevPage returns the page before current and whether it can be visited.
func (m Meta) PrevPage() (int, bool) {
	if !m.HasPrevious || m.CurrentPage <= MinPage {
		return m.CurrentPage, false
	}
	return m.CurrentPage - 1, true
}

// NextPage returns the page after current and whether it can be visited.
func (m Meta) NextPage() (int, bool) {
	if !m.HasNext {
		return m.CurrentPage, false
	}
	return m.CurrentPage + 1, true
}
