// Package engine owns the browsing state: it reconciles filter and sort
// changes into fetch requests, applies responses, and renders the result.
package engine

import (
	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/pagination"
)

// Status is the lifecycle state of the current query.
type Status int

const (
	// StatusIdle means no request has been issued yet.
	StatusIdle Status = iota
	// StatusLoading means the latest request has not resolved.
	StatusLoading
	// StatusSuccess means the latest request returned a page.
	StatusSuccess
	// StatusError means the latest request failed.
	StatusError
)

// String returns the lower-case state name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Request is one fetch to perform. Generation identifies it among all
// requests issued by the same Orchestrator; only the latest one is applied.
type Request struct {
	Generation uint64
	Descriptor catalog.Descriptor
	Sort       catalog.SortDirection
}

// Snapshot is an immutable copy of the orchestrator state.
type Snapshot struct {
	Status         Status
	Filters        catalog.FilterState
	Sort           catalog.SortDirection
	Results        []catalog.Character
	Info           catalog.PageInfo
	Err            error
	Generation     uint64
	LastDescriptor catalog.Descriptor
}

// Meta returns pagination metadata for the loaded page.
func (s Snapshot) Meta() pagination.Meta {
	return pagination.NewMeta(s.LastDescriptor.Page, s.Info)
}

// IsEmpty reports a successful query that matched nothing.
func (s Snapshot) IsEmpty() bool {
	return s.Status == StatusSuccess && len(s.Results) == 0
}
