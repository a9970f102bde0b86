package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// FirstPage is the 1-based index of the first results page.
const FirstPage = 1

// ErrInvalidFilterKind is returned when a filter name is not status, gender or species.
var ErrInvalidFilterKind = errors.New("filter kind must be one of: status, gender, species")

// FilterKind identifies one of the selectable (non-text) filters.
type FilterKind int

const (
	// FilterStatus selects by life status.
	FilterStatus FilterKind = iota
	// FilterGender selects by gender.
	FilterGender
	// FilterSpecies selects by species.
	FilterSpecies
)

// String returns the query parameter name of the filter.
func (k FilterKind) String() string {
	switch k {
	case FilterStatus:
		return "status"
	case FilterGender:
		return "gender"
	case FilterSpecies:
		return "species"
	default:
		return "unknown"
	}
}

// ParseFilterKind parses a filter name such as "status".
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "status":
		return FilterStatus, nil
	case "gender":
		return FilterGender, nil
	case "species":
		return FilterSpecies, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrInvalidFilterKind, s)
	}
}

// FilterState is the tuple of selections driving the next query.
type FilterState struct {
	Page    int    `json:"page"              yaml:"page"`
	Name    string `json:"name,omitempty"    yaml:"name,omitempty"`
	Status  string `json:"status,omitempty"  yaml:"status,omitempty"`
	Gender  string `json:"gender,omitempty"  yaml:"gender,omitempty"`
	Species string `json:"species,omitempty" yaml:"species,omitempty"`
}

// NewFilterState returns the initial state: first page, no filters.
func NewFilterState() FilterState {
	return FilterState{Page: FirstPage}
}

// FilterPatch is a partial update to a FilterState. Nil fields are left unchanged.
type FilterPatch struct {
	Page    *int
	Name    *string
	Status  *string
	Gender  *string
	Species *string
}

// PageTo returns a patch that only moves to page.
func PageTo(page int) FilterPatch {
	return FilterPatch{Page: &page}
}

// SetName returns a patch that changes the free-text name search.
func SetName(name string) FilterPatch {
	return FilterPatch{Name: &name}
}

// SetFilter returns a patch that changes one selectable filter.
func SetFilter(kind FilterKind, value string) FilterPatch {
	var p FilterPatch
	switch kind {
	case FilterStatus:
		p.Status = &value
	case FilterGender:
		p.Gender = &value
	case FilterSpecies:
		p.Species = &value
	}
	return p
}

// changesFilters reports whether the patch touches anything other than page.
func (p FilterPatch) changesFilters() bool {
	return p.Name != nil || p.Status != nil || p.Gender != nil || p.Species != nil
}

// IsEmpty reports whether the patch carries no change at all.
func (p FilterPatch) IsEmpty() bool {
	return p.Page == nil && !p.changesFilters()
}

// Apply merges p into s. Any change other than page sends the state back to
// the first page; an explicit page is honoured only when it is the sole change.
func (s FilterState) Apply(p FilterPatch) FilterState {
	next := s
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.Gender != nil {
		next.Gender = *p.Gender
	}
	if p.Species != nil {
		next.Species = *p.Species
	}

	switch {
	case p.changesFilters():
		next.Page = FirstPage
	case p.Page != nil:
		next.Page = *p.Page
	}
	if next.Page < FirstPage {
		next.Page = FirstPage
	}
	return next
}

// Get returns the value of one selectable filter.
func (s FilterState) Get(kind FilterKind) string {
	switch kind {
	case FilterStatus:
		return s.Status
	case FilterGender:
		return s.Gender
	case FilterSpecies:
		return s.Species
	default:
		return ""
	}
}

// Without clears one selectable filter.
func (s FilterState) Without(kind FilterKind) FilterState {
	return s.Apply(SetFilter(kind, ""))
}

// Cleared resets status, gender and species, keeping the name search.
func (s FilterState) Cleared() FilterState {
	empty := ""
	return s.Apply(FilterPatch{Status: &empty, Gender: &empty, Species: &empty})
}

// ActiveFilter is one non-empty selectable filter.
type ActiveFilter struct {
	Kind  FilterKind
	Value string
}

// String renders the filter as "kind: value".
func (a ActiveFilter) String() string {
	return a.Kind.String() + ": " + a.Value
}

// Active returns the non-empty selectable filters in status, gender, species order.
func (s FilterState) Active() []ActiveFilter {
	var active []ActiveFilter
	for _, kind := range []FilterKind{FilterStatus, FilterGender, FilterSpecies} {
		if v := s.Get(kind); v != "" {
			active = append(active, ActiveFilter{Kind: kind, Value: v})
		}
	}
	return active
}

// Descriptor resolves the state into the query for one request.
func (s FilterState) Descriptor() Descriptor {
	return BuildDescriptor(s.Page, s.Name, s.Status, s.Gender, s.Species)
}
