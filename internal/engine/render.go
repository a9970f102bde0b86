package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/pagination"
)

// OutputFormat selects how non-interactive results are written.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
	OutputYAML   OutputFormat = "yaml"
)

// ErrUnsupportedFormat is returned for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// EmptyMessage is shown when a query matches no characters.
const EmptyMessage = "No results found. Try adjusting your search or filter criteria."

// Table layout.
const (
	tabwriterPadding = 2
	colWidthName     = 32
	colWidthPlace    = 28
	truncateMinLen   = 4
	createdLayout    = "2006-01-02"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case OutputTable, OutputJSON, OutputNDJSON, OutputYAML:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("%w: %q (use table, json, ndjson or yaml)", ErrUnsupportedFormat, s)
	}
}

// pageDocument is the structured (json/yaml) representation of a snapshot.
type pageDocument struct {
	Page    pagination.Meta     `json:"page"    yaml:"page"`
	Query   catalog.Descriptor  `json:"query"   yaml:"query"`
	Sort    string              `json:"sort"    yaml:"sort"`
	Results []catalog.Character `json:"results" yaml:"results"`
}

func newPageDocument(snap Snapshot) pageDocument {
	results := snap.Results
	if results == nil {
		results = []catalog.Character{}
	}
	return pageDocument{
		Page:    snap.Meta(),
		Query:   snap.LastDescriptor,
		Sort:    snap.Sort.String(),
		Results: results,
	}
}

// RenderPage writes the loaded page of snap to w in the given format.
func RenderPage(w io.Writer, format OutputFormat, snap Snapshot) error {
	switch format {
	case OutputTable:
		return renderTable(w, snap)
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newPageDocument(snap))
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, ch := range snap.Results {
			if err := enc.Encode(ch); err != nil {
				return fmt.Errorf("encoding character %d: %w", ch.ID, err)
			}
		}
		return nil
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:mnd // Conventional YAML indent.
		if err := enc.Encode(newPageDocument(snap)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func renderTable(w io.Writer, snap Snapshot) error {
	if len(snap.Results) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s\tSTATUS\tSPECIES\tGENDER\tORIGIN\tLOCATION\tCREATED\n", nameHeader(snap.Sort)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t------\t-------\t------\t------\t--------\t-------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, ch := range snap.Results {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(ch.Name, colWidthName),
			ch.Status,
			ch.Species,
			ch.Gender,
			truncate(ch.Origin.Name, colWidthPlace),
			truncate(ch.Location.Name, colWidthPlace),
			formatCreated(ch),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%s\n", PageFooter(snap.Meta()))
	return err
}

// nameHeader marks the sorted column with the current direction.
func nameHeader(d catalog.SortDirection) string {
	switch d {
	case catalog.SortAsc:
		return "NAME ▲"
	case catalog.SortDesc:
		return "NAME ▼"
	default:
		return "NAME"
	}
}

// PageFooter renders "Showing page C of T  ‹ 1 2 [3] 4 5 ›" for plain output.
func PageFooter(meta pagination.Meta) string {
	if meta.TotalPages == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Showing page %d of %d  ", meta.CurrentPage, meta.TotalPages))
	if meta.HasPrevious {
		sb.WriteString("‹ ")
	}
	for p := meta.WindowStart; p <= meta.WindowEnd; p++ {
		if p > meta.WindowStart {
			sb.WriteString(" ")
		}
		if p == meta.CurrentPage {
			sb.WriteString("[" + strconv.Itoa(p) + "]")
		} else {
			sb.WriteString(strconv.Itoa(p))
		}
	}
	if meta.HasNext {
		sb.WriteString(" ›")
	}
	return sb.String()
}

func formatCreated(ch catalog.Character) string {
	if ch.Created.IsZero() {
		return "-"
	}
	return ch.Created.Format(createdLayout)
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= truncateMinLen {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// RenderSpecies writes the species list as plain lines, a JSON array, one JSON
// string per line, or YAML.
func RenderSpecies(w io.Writer, format OutputFormat, species []string) error {
	if species == nil {
		species = []string{}
	}
	switch format {
	case OutputTable:
		for _, s := range species {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, s := range species {
			if err := enc.Encode(s); err != nil {
				return fmt.Errorf("encoding species %q: %w", s, err)
			}
		}
		return nil
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(species)
	case OutputYAML:
		return yaml.NewEncoder(w).Encode(species)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
