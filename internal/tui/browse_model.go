package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/engine"
	"github.com/rshade/charscope/internal/logging"
)

// SpeciesLister returns every species known to the API.
type SpeciesLister interface {
	Species(ctx context.Context, concurrency int) ([]string, error)
}

// BrowseOptions configures a BrowseModel.
type BrowseOptions struct {
	Fetcher            engine.Fetcher
	Species            SpeciesLister
	SpeciesConcurrency int
	Initial            catalog.FilterState
	Sort               catalog.SortDirection
}

// fetchResultMsg carries the outcome of one request back to Update.
type fetchResultMsg struct {
	req  engine.Request
	page *catalog.Page
	err  error
}

// speciesLoadedMsg carries the species crawl result.
type speciesLoadedMsg struct {
	species []string
	err     error
}

// BrowseModel is the Bubble Tea model for the interactive character browser.
// Filter, search, sort and page changes go through the orchestrator, which
// tags each request with a generation; the model cancels the context of the
// request it supersedes.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowseModel struct {
	ctx     context.Context
	orch    *engine.Orchestrator
	fetcher engine.Fetcher
	state   ViewState

	// cancel aborts the in-flight request, if any.
	cancel   context.CancelFunc
	startCmd tea.Cmd

	// Results
	table  table.Model
	snap   engine.Snapshot
	detail catalog.Character

	// Search
	search    textinput.Model
	searching bool
	searchSeq int

	// Filter picker
	filters *filterPanel

	// Page jump: a highlighted page in the pagination window.
	jumping    bool
	jumpTarget int

	width        int
	height       int
	loadingState *LoadingState
}

// NewBrowseModel creates the browser and prepares the first request.
// The request itself is sent by Init.
func NewBrowseModel(ctx context.Context, opts BrowseOptions) BrowseModel {
	m := BrowseModel{
		ctx:          ctx,
		orch:         engine.NewOrchestrator(opts.Initial, opts.Sort),
		fetcher:      opts.Fetcher,
		state:        ViewStateLoading,
		width:        defaultWidth,
		height:       defaultHeight,
		search:       newSearchInput(),
		filters:      newFilterPanel(ctx, opts.Species, opts.SpeciesConcurrency),
		loadingState: NewLoadingState(),
	}
	m.search.SetValue(opts.Initial.Name)
	m.snap = m.orch.Snapshot()
	m.table = m.buildTable()
	m.startCmd = m.issue(m.orch.Start())
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search characters..."
	ti.Prompt = "/ "
	ti.CharLimit = 100 //nolint:mnd // Generous bound for a character name.
	return ti
}

// Init starts the spinner and the first request (Bubble Tea interface).
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.loadingState.Init(), m.startCmd)
}

// Snapshot returns the orchestrator state the view is rendered from.
func (m BrowseModel) Snapshot() engine.Snapshot {
	return m.snap
}

// State returns the current view state.
func (m BrowseModel) State() ViewState {
	return m.state
}

// issue cancels the superseded request and returns the command for req.
func (m *BrowseModel) issue(req engine.Request) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.snap = m.orch.Snapshot()
	m.state = ViewStateLoading
	m.loadingState.SetMessage(fmt.Sprintf("Loading page %d...", req.Descriptor.Page))

	logging.FromContext(m.ctx).Debug().Ctx(m.ctx).
		Str("component", "tui").
		Uint64("generation", req.Generation).
		Int("page", req.Descriptor.Page).
		Str("name", req.Descriptor.Name).
		Msg("issuing request")

	fetcher := m.fetcher
	return func() tea.Msg {
		page, err := fetcher.FetchPage(ctx, req.Descriptor)
		return fetchResultMsg{req: req, page: page, err: err}
	}
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(0, msg.Width-borderPadding*4) //nolint:mnd // Prompt and padding.
		m.filters.setHeight(m.tableHeight())
		m.table = m.buildTable()
		return m, nil
	case fetchResultMsg:
		return m.handleFetchResult(msg)
	case searchTickMsg:
		return m.handleSearchTick(msg)
	case speciesLoadedMsg:
		m.filters.speciesLoaded(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	cmd := m.loadingState.Update(msg)
	if m.searching {
		var inputCmd tea.Cmd
		m.search, inputCmd = m.search.Update(msg)
		cmd = tea.Batch(cmd, inputCmd)
	}
	return m, cmd
}

func (m BrowseModel) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	if !m.orch.Resolve(msg.req.Generation, msg.page, msg.err) {
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.snap = m.orch.Snapshot()
	if msg.err != nil {
		logging.FromContext(m.ctx).Warn().Ctx(m.ctx).
			Str("component", "tui").
			Uint64("generation", msg.req.Generation).
			Err(msg.err).
			Msg("request failed")
	}
	if m.state != ViewStateFilter && m.state != ViewStateDetail {
		m.state = m.resultState()
	}
	m.table = m.buildTable()
	return m, nil
}

// resultState maps the orchestrator status onto a view state.
func (m BrowseModel) resultState() ViewState {
	switch {
	case m.snap.Status == engine.StatusLoading:
		return ViewStateLoading
	case m.snap.Status == engine.StatusError:
		return ViewStateError
	case m.snap.IsEmpty():
		return ViewStateEmpty
	default:
		return ViewStateList
	}
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m.quit()
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.jumping {
		return m.handleJumpKey(msg)
	}

	switch m.state {
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateFilter:
		return m.handleFilterKey(msg)
	case ViewStateQuitting:
		return m, nil
	case ViewStateLoading, ViewStateList, ViewStateEmpty, ViewStateError:
		return m.handleBrowseKey(msg)
	default:
		return m, nil
	}
}

func (m BrowseModel) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = ViewStateQuitting
	return m, tea.Quit
}

func (m BrowseModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	meta := m.snap.Meta()

	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keyEnter:
		idx := m.table.Cursor()
		if m.state == ViewStateList && idx >= 0 && idx < len(m.snap.Results) {
			m.detail = m.snap.Results[idx]
			m.state = ViewStateDetail
		}
		return m, nil
	case keySlash:
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case keyEsc:
		if m.snap.Filters.Name == "" && m.search.Value() == "" {
			return m, nil
		}
		m.search.SetValue("")
		m.searchSeq++
		cmd := m.issue(m.orch.UpdateFilters(catalog.SetName("")))
		return m, cmd
	case keyS:
		cmd := m.issue(m.orch.ToggleSort())
		return m, cmd
	case keyF:
		m.state = ViewStateFilter
		m.filters.open(m.snap.Filters)
		return m, nil
	case keyX:
		if len(m.snap.Filters.Active()) == 0 {
			return m, nil
		}
		cmd := m.issue(m.orch.ReplaceFilters(m.snap.Filters.Cleared()))
		return m, cmd
	case keyChip1:
		return m.removeChip(catalog.FilterStatus)
	case keyChip2:
		return m.removeChip(catalog.FilterGender)
	case keyChip3:
		return m.removeChip(catalog.FilterSpecies)
	case keyG:
		if m.state != ViewStateList || meta.TotalPages <= 1 {
			return m, nil
		}
		m.jumping = true
		m.jumpTarget = meta.CurrentPage
		return m, nil
	case keyR:
		if m.state != ViewStateError {
			return m, nil
		}
		cmd := m.issue(m.orch.Retry())
		return m, cmd
	case keyLeft, keyH:
		if m.state == ViewStateLoading {
			return m, nil
		}
		if page, ok := meta.PrevPage(); ok {
			cmd := m.issue(m.orch.UpdateFilters(catalog.PageTo(page)))
			return m, cmd
		}
		return m, nil
	case keyRight, keyL:
		if m.state == ViewStateLoading {
			return m, nil
		}
		if page, ok := meta.NextPage(); ok {
			cmd := m.issue(m.orch.UpdateFilters(catalog.PageTo(page)))
			return m, cmd
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

// handleJumpKey moves the highlight across the pagination window and jumps
// to the highlighted page on Enter.
func (m BrowseModel) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	meta := m.snap.Meta()

	switch msg.String() {
	case keyLeft, keyH:
		m.jumpTarget = max(meta.WindowStart, m.jumpTarget-1)
	case keyRight, keyL:
		m.jumpTarget = min(meta.WindowEnd, m.jumpTarget+1)
	case keyEsc, keyG:
		m.jumping = false
	case keyEnter:
		m.jumping = false
		if m.jumpTarget == meta.CurrentPage {
			return m, nil
		}
		cmd := m.issue(m.orch.UpdateFilters(catalog.PageTo(m.jumpTarget)))
		return m, cmd
	case keyQuit:
		return m.quit()
	}
	return m, nil
}

func (m BrowseModel) removeChip(kind catalog.FilterKind) (tea.Model, tea.Cmd) {
	if m.snap.Filters.Get(kind) == "" {
		return m, nil
	}
	cmd := m.issue(m.orch.ReplaceFilters(m.snap.Filters.Without(kind)))
	return m, cmd
}

// handleSearchKey edits the search box. Each edit schedules a debounced
// search; Enter applies at once and Esc clears the search.
func (m BrowseModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.searching = false
		m.search.Blur()
		m.searchSeq++
		cmd := m.applySearch(m.search.Value())
		return m, cmd
	case keyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.searchSeq++
		cmd := m.applySearch("")
		return m, cmd
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, debounceSearch(m.searchSeq))
}

func (m BrowseModel) handleSearchTick(msg searchTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.searchSeq {
		return m, nil
	}
	cmd := m.applySearch(m.search.Value())
	return m, cmd
}

// applySearch issues a request only when the name actually changes.
func (m *BrowseModel) applySearch(name string) tea.Cmd {
	if name == m.snap.Filters.Name {
		return nil
	}
	return m.issue(m.orch.UpdateFilters(catalog.SetName(name)))
}

func (m BrowseModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keyEsc, keyBackspace, keyEnter:
		m.state = m.resultState()
		m.table.Focus()
	}
	return m, nil
}

func (m BrowseModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res := m.filters.handleKey(msg)
	switch {
	case res.apply != nil:
		m.state = m.resultState()
		cmd := m.issue(m.orch.UpdateFilters(*res.apply))
		return m, cmd
	case res.closed:
		m.state = m.resultState()
		return m, nil
	default:
		return m, res.cmd
	}
}

// buildTable creates the results table for the current snapshot.
func (m BrowseModel) buildTable() table.Model {
	nameWidth := 28
	placeWidth := 22
	if m.width > defaultWidth {
		extra := (m.width - defaultWidth) / 3 //nolint:mnd // Spread over name, origin and location.
		nameWidth += extra
		placeWidth += extra
	}

	columns := []table.Column{
		{Title: nameColumnTitle(m.snap.Sort), Width: nameWidth},
		{Title: "Status", Width: 8},   //nolint:mnd // Column width.
		{Title: "Species", Width: 14}, //nolint:mnd // Column width.
		{Title: "Gender", Width: 10},  //nolint:mnd // Column width.
		{Title: "Origin", Width: placeWidth},
		{Title: "Location", Width: placeWidth},
		{Title: "Created", Width: 10}, //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.snap.Results))
	for i, ch := range m.snap.Results {
		created := "-"
		if !ch.Created.IsZero() {
			created = ch.Created.Format("2006-01-02")
		}
		rows[i] = table.Row{
			ch.Name,
			ch.Status,
			ch.Species,
			ch.Gender,
			ch.Origin.Name,
			ch.Location.Name,
			created,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func (m BrowseModel) tableHeight() int {
	return max(minHeight, m.height-chromeHeight)
}

// nameColumnTitle shows the sort direction on the name column.
func nameColumnTitle(d catalog.SortDirection) string {
	switch d {
	case catalog.SortAsc:
		return "Character ▲"
	case catalog.SortDesc:
		return "Character ▼"
	default:
		return "Character"
	}
}
