package catalog

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query parameter names understood by the character-listing endpoint.
const (
	ParamPage    = "page"
	ParamName    = "name"
	ParamStatus  = "status"
	ParamGender  = "gender"
	ParamSpecies = "species"
)

// Descriptor is the resolved set of query parameters for one request.
type Descriptor struct {
	Page    int    `json:"page"              yaml:"page"`
	Name    string `json:"name,omitempty"    yaml:"name,omitempty"`
	Status  string `json:"status,omitempty"  yaml:"status,omitempty"`
	Gender  string `json:"gender,omitempty"  yaml:"gender,omitempty"`
	Species string `json:"species,omitempty" yaml:"species,omitempty"`
}

// BuildDescriptor builds a descriptor; a page below 1 becomes 1.
func BuildDescriptor(page int, name, status, gender, species string) Descriptor {
	if page < FirstPage {
		page = FirstPage
	}
	return Descriptor{
		Page:    page,
		Name:    name,
		Status:  status,
		Gender:  gender,
		Species: species,
	}
}

// Values returns the query parameters: page always, the rest only when non-empty.
func (d Descriptor) Values() url.Values {
	page := d.Page
	if page < FirstPage {
		page = FirstPage
	}

	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(page))
	if d.Name != "" {
		v.Set(ParamName, d.Name)
	}
	if d.Status != "" {
		v.Set(ParamStatus, d.Status)
	}
	if d.Gender != "" {
		v.Set(ParamGender, d.Gender)
	}
	if d.Species != "" {
		v.Set(ParamSpecies, d.Species)
	}
	return v
}

// URL appends the encoded query to base, replacing any query base already has.
func (d Descriptor) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}
	u.RawQuery = d.Values().Encode()
	return u.String(), nil
}
