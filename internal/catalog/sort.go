package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrInvalidSortDirection is returned for sort directions other than none, asc, desc.
var ErrInvalidSortDirection = errors.New("sort direction must be 'none', 'asc' or 'desc'")

// SortDirection is the client-side ordering applied to a loaded page.
type SortDirection int

const (
	// SortNone keeps the order returned by the API.
	SortNone SortDirection = iota
	// SortAsc orders by name ascending.
	SortAsc
	// SortDesc orders by name descending.
	SortDesc
)

// numSortDirections is the length of the toggle cycle.
const numSortDirections = 3

// String returns none, asc or desc.
func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// Next returns the direction after one toggle: none → asc → desc → none.
func (d SortDirection) Next() SortDirection {
	return (d + 1) % numSortDirections
}

// ParseSortDirection parses none/asc/desc; the empty string means none.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return SortNone, fmt.Errorf("%w: got %q", ErrInvalidSortDirection, s)
	}
}

// newCollator returns a collator for name comparison. Collators keep internal
// buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// SortCharacters returns a new slice ordered by locale-aware name comparison.
// SortNone returns a copy in input order. Equal names keep their relative order.
func SortCharacters(chars []Character, dir SortDirection) []Character {
	sorted := slices.Clone(chars)
	if dir == SortNone || len(sorted) < 2 {
		return sorted
	}

	c := newCollator()
	slices.SortStableFunc(sorted, func(a, b Character) int {
		if dir == SortDesc {
			return c.CompareString(b.Name, a.Name)
		}
		return c.CompareString(a.Name, b.Name)
	})
	return sorted
}

// SortStrings sorts values in place with the same collation used for names.
func SortStrings(values []string) {
	newCollator().SortStrings(values)
}
