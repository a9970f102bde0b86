package engine

import (
	"context"
	"slices"
	"sync"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/logging"
)

// Fetcher retrieves one page for a descriptor.
type Fetcher interface {
	FetchPage(ctx context.Context, d catalog.Descriptor) (*catalog.Page, error)
}

// Orchestrator owns the loading/error/result state for one browsing session.
// Every mutation goes through reconcile, and every filter or sort change
// issues exactly one new Request. Responses for superseded requests are
// dropped by generation, so a slow early response can never overwrite a
// newer one. Safe for concurrent use.
type Orchestrator struct {
	mu         sync.Mutex
	status     Status
	filters    catalog.FilterState
	sort       catalog.SortDirection
	results    []catalog.Character
	info       catalog.PageInfo
	err        error
	generation uint64
	last       catalog.Descriptor
}

// NewOrchestrator creates an idle orchestrator starting from initial.
func NewOrchestrator(initial catalog.FilterState, sort catalog.SortDirection) *Orchestrator {
	if initial.Page < catalog.FirstPage {
		initial.Page = catalog.FirstPage
	}
	return &Orchestrator{
		status:  StatusIdle,
		filters: initial,
		sort:    sort,
		last:    initial.Descriptor(),
	}
}

// change is one input to reconcile.
type change struct {
	patch catalog.FilterPatch
	sort  *catalog.SortDirection
	// retry re-issues the last descriptor verbatim.
	retry bool
}

// reconcile applies c and issues the next request. Caller holds mu.
func (o *Orchestrator) reconcile(c change) Request {
	if c.sort != nil {
		o.sort = *c.sort
	}
	if !c.retry {
		o.filters = o.filters.Apply(c.patch)
		o.last = o.filters.Descriptor()
	}

	o.generation++
	o.status = StatusLoading
	o.err = nil

	return Request{Generation: o.generation, Descriptor: o.last, Sort: o.sort}
}

// Start issues the request for the initial state.
func (o *Orchestrator) Start() Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reconcile(change{})
}

// UpdateFilters merges p into the filter state and issues a new request.
func (o *Orchestrator) UpdateFilters(p catalog.FilterPatch) Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reconcile(change{patch: p})
}

// ReplaceFilters swaps in a whole filter state, e.g. after clearing a chip.
func (o *Orchestrator) ReplaceFilters(s catalog.FilterState) Request {
	return o.UpdateFilters(catalog.FilterPatch{
		Page:    &s.Page,
		Name:    &s.Name,
		Status:  &s.Status,
		Gender:  &s.Gender,
		Species: &s.Species,
	})
}

// SetSort changes the sort direction and issues a new request.
func (o *Orchestrator) SetSort(d catalog.SortDirection) Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reconcile(change{sort: &d})
}

// ToggleSort advances none → asc → desc → none and issues a new request.
func (o *Orchestrator) ToggleSort() Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	next := o.sort.Next()
	return o.reconcile(change{sort: &next})
}

// Retry re-issues the last descriptor under a new generation.
func (o *Orchestrator) Retry() Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reconcile(change{retry: true})
}

// Resolve applies the outcome of the request with generation gen. It returns
// false, leaving state untouched, when gen is not the latest generation.
func (o *Orchestrator) Resolve(gen uint64, page *catalog.Page, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		return false
	}

	if err != nil {
		o.status = StatusError
		o.err = err
		o.results = nil
		o.info = catalog.PageInfo{}
		return true
	}

	o.status = StatusSuccess
	o.err = nil
	if page == nil {
		o.results = nil
		o.info = catalog.PageInfo{}
		return true
	}
	o.results = catalog.SortCharacters(page.Results, o.sort)
	o.info = page.Info
	return true
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		Status:         o.status,
		Filters:        o.filters,
		Sort:           o.sort,
		Results:        slices.Clone(o.results),
		Info:           o.info,
		Err:            o.err,
		Generation:     o.generation,
		LastDescriptor: o.last,
	}
}

// Fetch performs req with f and resolves it. The returned error is the fetch
// error, if any; a superseded request is not an error.
func (o *Orchestrator) Fetch(ctx context.Context, f Fetcher, req Request) error {
	log := logging.FromContext(ctx)

	page, err := f.FetchPage(ctx, req.Descriptor)
	applied := o.Resolve(req.Generation, page, err)

	evt := log.Debug()
	if err != nil {
		evt = log.Warn().Err(err)
	}
	evt.Ctx(ctx).
		Str("component", "engine").
		Uint64("generation", req.Generation).
		Int("page", req.Descriptor.Page).
		Str("sort", req.Sort.String()).
		Bool("applied", applied).
		Msg("fetch resolved")

	return err
}
