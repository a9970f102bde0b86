// Package catalog holds the character domain model and the pure logic that
// turns user selections into API queries: filter state merging, query
// descriptors, and client-side name sorting.
package catalog

import "time"

// Known option values offered by pickers. They are suggestions only; any
// value is passed through to the API verbatim.
//
//nolint:gochecknoglobals // Read-only option lists.
var (
	Statuses = []string{"Alive", "Dead", "unknown"}
	Genders  = []string{"Female", "Male", "Genderless", "unknown"}
)

// NamedRef is a reference to another API resource by name and URL.
type NamedRef struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url"  yaml:"url"`
}

// Character is a single record from the character-listing endpoint.
type Character struct {
	ID       int       `json:"id"       yaml:"id"`
	Name     string    `json:"name"     yaml:"name"`
	Status   string    `json:"status"   yaml:"status"`
	Species  string    `json:"species"  yaml:"species"`
	Type     string    `json:"type"     yaml:"type,omitempty"`
	Gender   string    `json:"gender"   yaml:"gender"`
	Origin   NamedRef  `json:"origin"   yaml:"origin"`
	Location NamedRef  `json:"location" yaml:"location"`
	Image    string    `json:"image"    yaml:"image"`
	Episode  []string  `json:"episode"  yaml:"episode,omitempty"`
	URL      string    `json:"url"      yaml:"url"`
	Created  time.Time `json:"created"  yaml:"created"`
}

// PageInfo is the pagination metadata returned with every page.
type PageInfo struct {
	Count int    `json:"count" yaml:"count"`
	Pages int    `json:"pages" yaml:"pages"`
	Next  string `json:"next"  yaml:"next,omitempty"`
	Prev  string `json:"prev"  yaml:"prev,omitempty"`
}

// HasNext reports whether the API advertised a following page.
func (i PageInfo) HasNext() bool {
	return i.Next != ""
}

// HasPrev reports whether the API advertised a preceding page.
func (i PageInfo) HasPrev() bool {
	return i.Prev != ""
}

// Page is one page of results plus its metadata.
type Page struct {
	Info    PageInfo    `json:"info"    yaml:"info"`
	Results []Character `json:"results" yaml:"results"`
}
