package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/engine"
)

// fakeFetcher serves three pages of two characters and records every query.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []catalog.Descriptor
	respond func(ctx context.Context, d catalog.Descriptor) (*catalog.Page, error)
}

func (f *fakeFetcher) FetchPage(ctx context.Context, d catalog.Descriptor) (*catalog.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, d)
	respond := f.respond
	f.mu.Unlock()
	if respond != nil {
		return respond(ctx, d)
	}
	return threePages(d), nil
}

func (f *fakeFetcher) last() catalog.Descriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func threePages(d catalog.Descriptor) *catalog.Page {
	p := &catalog.Page{Info: catalog.PageInfo{Count: 6, Pages: 3}}
	if d.Page < 3 {
		p.Info.Next = "next"
	}
	if d.Page > 1 {
		p.Info.Prev = "prev"
	}
	p.Results = []catalog.Character{
		{ID: d.Page*2 - 1, Name: fmt.Sprintf("Rick %d", d.Page), Status: "Alive", Species: "Human"},
		{ID: d.Page * 2, Name: fmt.Sprintf("Beth %d", d.Page), Status: "Dead", Species: "Human"},
	}
	return p
}

type fakeSpecies struct {
	species []string
	err     error
}

func (f fakeSpecies) Species(context.Context, int) ([]string, error) {
	return f.species, f.err
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m BrowseModel, msg tea.Msg) (BrowseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(BrowseModel)
	require.True(t, ok)
	return bm, cmd
}

// resolve runs a fetch command and feeds its result back into the model.
func resolve(t *testing.T, m BrowseModel, cmd tea.Cmd) BrowseModel {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	res, ok := msg.(fetchResultMsg)
	require.True(t, ok, "expected fetchResultMsg, got %T", msg)
	m, _ = update(t, m, res)
	return m
}

func newLoadedModel(t *testing.T, f *fakeFetcher, opts BrowseOptions) BrowseModel {
	t.Helper()
	opts.Fetcher = f
	m := NewBrowseModel(context.Background(), opts)
	return resolve(t, m, m.startCmd)
}

func TestNewBrowseModel(t *testing.T) {
	f := &fakeFetcher{}
	m := NewBrowseModel(context.Background(), BrowseOptions{
		Fetcher: f,
		Initial: catalog.FilterState{Page: 2, Name: "rick"},
	})

	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, m.Init())
	assert.Equal(t, "rick", m.search.Value())
	assert.Contains(t, m.View(), "Loading page 2...")

	m = resolve(t, m, m.startCmd)
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, catalog.BuildDescriptor(2, "rick", "", "", ""), f.last())
	assert.Len(t, m.Snapshot().Results, 2)
	assert.Contains(t, m.View(), "Rick 2")
	assert.Contains(t, m.View(), "Showing page 2 of 3")
}

func TestBrowseModel_SearchDebounce(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{Initial: catalog.FilterState{Page: 3}})

	m, cmd := update(t, m, keyRunes("/"))
	assert.True(t, m.searching)
	assert.NotNil(t, cmd)

	m, cmd = update(t, m, keyRunes("r"))
	assert.NotNil(t, cmd)
	firstSeq := m.searchSeq
	m, _ = update(t, m, keyRunes("i"))
	assert.Equal(t, "ri", m.search.Value())
	assert.Greater(t, m.searchSeq, firstSeq)

	// The tick for the first keystroke is stale.
	m, cmd = update(t, m, searchTickMsg{seq: firstSeq})
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateList, m.State())

	m, cmd = update(t, m, searchTickMsg{seq: m.searchSeq})
	assert.Equal(t, ViewStateLoading, m.State())
	m = resolve(t, m, cmd)

	assert.Equal(t, catalog.BuildDescriptor(1, "ri", "", "", ""), f.last())
	assert.Equal(t, "ri", m.Snapshot().Filters.Name)
}

func TestBrowseModel_SearchEnterAndEsc(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{})

	m, _ = update(t, m, keyRunes("/"))
	m, _ = update(t, m, keyRunes("morty"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	m = resolve(t, m, cmd)
	assert.Equal(t, "morty", f.last().Name)

	// A tick from before Enter must not fire a second request.
	m, cmd = update(t, m, searchTickMsg{seq: m.searchSeq - 1})
	assert.Nil(t, cmd)

	m, _ = update(t, m, keyRunes("/"))
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	_ = resolve(t, m, cmd)
	assert.Empty(t, f.last().Name)
}

func TestBrowseModel_SortToggle(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{})
	assert.Equal(t, []string{"Rick 1", "Beth 1"}, resultNames(m))

	m, cmd := update(t, m, keyRunes("s"))
	m = resolve(t, m, cmd)
	assert.Equal(t, catalog.SortAsc, m.Snapshot().Sort)
	assert.Equal(t, []string{"Beth 1", "Rick 1"}, resultNames(m))
	assert.Contains(t, m.View(), "Character ▲")

	m, cmd = update(t, m, keyRunes("s"))
	m = resolve(t, m, cmd)
	assert.Equal(t, []string{"Rick 1", "Beth 1"}, resultNames(m))

	m, cmd = update(t, m, keyRunes("s"))
	m = resolve(t, m, cmd)
	assert.Equal(t, catalog.SortNone, m.Snapshot().Sort)
	assert.Len(t, f.calls, 4)
}

func resultNames(m BrowseModel) []string {
	var out []string
	for _, ch := range m.Snapshot().Results {
		out = append(out, ch.Name)
	}
	return out
}

func TestBrowseModel_Pagination(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd, "no previous page on page 1")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = resolve(t, m, cmd)
	assert.Equal(t, 2, f.last().Page)

	m, cmd = update(t, m, keyRunes("l"))
	m = resolve(t, m, cmd)
	assert.Equal(t, 3, f.last().Page)

	m, cmd = update(t, m, keyRunes("l"))
	assert.Nil(t, cmd, "no next page on the last page")

	m, cmd = update(t, m, keyRunes("h"))
	_ = resolve(t, m, cmd)
	assert.Equal(t, 2, f.last().Page)
}

func TestBrowseModel_StaleResultIgnored(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{})

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, second := update(t, m, keyRunes("s"))

	firstMsg := first()
	secondMsg := second()

	m, _ = update(t, m, secondMsg)
	assert.Equal(t, ViewStateList, m.State())
	gen := m.Snapshot().Generation

	m, _ = update(t, m, firstMsg)
	assert.Equal(t, gen, m.Snapshot().Generation)
	assert.Equal(t, 2, m.Snapshot().LastDescriptor.Page)
	assert.Equal(t, catalog.SortAsc, m.Snapshot().Sort)
}

func TestBrowseModel_SupersededRequestCanceled(t *testing.T) {
	block := make(chan struct{})
	f := &fakeFetcher{respond: func(ctx context.Context, d catalog.Descriptor) (*catalog.Page, error) {
		if d.Page == 1 {
			return threePages(d), nil
		}
		select {
		case <-block:
			return threePages(d), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	m := newLoadedModel(t, f, BrowseOptions{})

	m, slow := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	done := make(chan tea.Msg, 1)
	go func() { done <- slow() }()

	_, _ = update(t, m, keyRunes("s"))

	select {
	case msg := <-done:
		res, ok := msg.(fetchResultMsg)
		require.True(t, ok)
		assert.ErrorIs(t, res.err, context.Canceled)
	case <-time.After(2 * time.Second):
		close(block)
		t.Fatal("superseded request was not canceled")
	}
}

func TestBrowseModel_ErrorAndRetry(t *testing.T) {
	fail := true
	f := &fakeFetcher{respond: func(_ context.Context, d catalog.Descriptor) (*catalog.Page, error) {
		if fail {
			return nil, errors.New("network response was not ok")
		}
		return threePages(d), nil
	}}
	m := newLoadedModel(t, f, BrowseOptions{Initial: catalog.FilterState{Page: 2, Status: "Dead"}})

	assert.Equal(t, ViewStateError, m.State())
	view := m.View()
	assert.Contains(t, view, "network response was not ok")
	assert.Contains(t, view, "[r] Try again")

	fail = false
	m, cmd := update(t, m, keyRunes("r"))
	assert.Equal(t, ViewStateLoading, m.State())
	m = resolve(t, m, cmd)

	assert.Equal(t, ViewStateList, m.State())
	assert.NoError(t, m.Snapshot().Err)
	assert.Equal(t, catalog.BuildDescriptor(2, "", "Dead", "", ""), f.last())
	assert.Len(t, f.calls, 2)
}

func TestBrowseModel_RetryOnlyAfterError(t *testing.T) {
	m := newLoadedModel(t, &fakeFetcher{}, BrowseOptions{})
	_, cmd := update(t, m, keyRunes("r"))
	assert.Nil(t, cmd)
}

func TestBrowseModel_EmptyResults(t *testing.T) {
	f := &fakeFetcher{respond: func(context.Context, catalog.Descriptor) (*catalog.Page, error) {
		return &catalog.Page{}, nil
	}}
	m := newLoadedModel(t, f, BrowseOptions{Initial: catalog.FilterState{Name: "zzz"}})

	assert.Equal(t, ViewStateEmpty, m.State())
	assert.Contains(t, m.View(), engine.EmptyMessage)
}

func TestBrowseModel_Chips(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{
		Initial: catalog.FilterState{Page: 3, Status: "Alive", Gender: "Male", Species: "Human"},
	})
	view := m.View()
	assert.Contains(t, view, "[1] status: Alive")
	assert.Contains(t, view, "[2] gender: Male")
	assert.Contains(t, view, "[3] species: Human")

	m, cmd := update(t, m, keyRunes("2"))
	m = resolve(t, m, cmd)
	assert.Equal(t, catalog.BuildDescriptor(1, "", "Alive", "", "Human"), f.last())

	m, cmd = update(t, m, keyRunes("2"))
	assert.Nil(t, cmd, "removing an absent chip is a no-op")

	m, cmd = update(t, m, keyRunes("x"))
	m = resolve(t, m, cmd)
	assert.Equal(t, catalog.BuildDescriptor(1, "", "", "", ""), f.last())

	_, cmd = update(t, m, keyRunes("x"))
	assert.Nil(t, cmd)
}

func TestBrowseModel_FilterPicker(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{Initial: catalog.FilterState{Page: 2}})

	m, _ = update(t, m, keyRunes("f"))
	assert.Equal(t, ViewStateFilter, m.State())
	assert.Contains(t, m.View(), "Filter by")

	// Status is first; its options start with Any.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Alive")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = resolve(t, m, cmd)

	assert.Equal(t, catalog.BuildDescriptor(1, "", "Dead", "", ""), f.last())
	assert.Equal(t, ViewStateList, m.State())

	// Esc backs out of the value list, then closes the picker.
	m, _ = update(t, m, keyRunes("f"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewStateFilter, m.State())
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateList, m.State())
}

func TestBrowseModel_SpeciesPicker(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{Species: fakeSpecies{species: []string{"Alien", "Human"}}})

	m, _ = update(t, m, keyRunes("f"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, load := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, load)
	assert.Contains(t, m.View(), "Loading species...")

	m, _ = update(t, m, load())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_ = resolve(t, m, cmd)

	assert.Equal(t, "Alien", f.last().Species)
}

func TestBrowseModel_SpeciesFallbackToText(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{Species: fakeSpecies{err: errors.New("crawl failed")}})

	m, _ = update(t, m, keyRunes("f"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, load := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, load)
	m, _ = update(t, m, load())

	assert.Contains(t, m.View(), "Species list unavailable")
	m, _ = update(t, m, keyRunes("Cronenberg"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_ = resolve(t, m, cmd)

	assert.Equal(t, "Cronenberg", f.last().Species)
}

func TestBrowseModel_DetailView(t *testing.T) {
	m := newLoadedModel(t, &fakeFetcher{}, BrowseOptions{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDetail, m.State())
	view := m.View()
	assert.Contains(t, view, "RICK 1")
	assert.Contains(t, view, "Press ESC to return")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewStateList, m.State())
}

func TestBrowseModel_Quit(t *testing.T) {
	m := newLoadedModel(t, &fakeFetcher{}, BrowseOptions{})

	m, cmd := update(t, m, keyRunes("q"))
	assert.Equal(t, ViewStateQuitting, m.State())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestBrowseModel_WindowResize(t *testing.T) {
	m := newLoadedModel(t, &fakeFetcher{}, BrowseOptions{})

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 180, Height: 50})
	assert.Nil(t, cmd)
	assert.Equal(t, 180, m.width)
	assert.Equal(t, 50, m.height)
	assert.Equal(t, 50-chromeHeight, m.tableHeight())
}

func sevenPages(_ context.Context, d catalog.Descriptor) (*catalog.Page, error) {
	p := &catalog.Page{Info: catalog.PageInfo{Count: 14, Pages: 7}}
	if d.Page < 7 {
		p.Info.Next = "next"
	}
	if d.Page > 1 {
		p.Info.Prev = "prev"
	}
	p.Results = []catalog.Character{{ID: d.Page, Name: fmt.Sprintf("Morty %d", d.Page)}}
	return p, nil
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestBrowseModel_JumpToWindowPage(t *testing.T) {
	f := &fakeFetcher{respond: sevenPages}
	m := newLoadedModel(t, f, BrowseOptions{Initial: catalog.FilterState{Page: 3}})
	require.Equal(t, 3, m.Snapshot().Meta().CurrentPage)
	before := f.count()

	m, cmd := update(t, m, keyRunes("g"))
	assert.Nil(t, cmd)
	assert.True(t, m.jumping)
	assert.Contains(t, m.View(), "enter: go")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, keyRunes("l"))
	m, _ = update(t, m, keyRunes("l"))
	assert.Equal(t, 5, m.jumpTarget, "highlight stays inside the window")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.jumping)
	assert.Equal(t, ViewStateLoading, m.State())
	m = resolve(t, m, cmd)

	assert.Equal(t, before+1, f.count(), "one request for the jump")
	assert.Equal(t, 5, f.last().Page)
	assert.Equal(t, 5, m.Snapshot().Meta().CurrentPage)
	assert.Equal(t, ViewStateList, m.State())
}

func TestBrowseModel_JumpCancelAndClamp(t *testing.T) {
	f := &fakeFetcher{respond: sevenPages}
	m := newLoadedModel(t, f, BrowseOptions{Initial: catalog.FilterState{Page: 2}})
	before := f.count()

	m, _ = update(t, m, keyRunes("g"))
	for range 4 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, 1, m.jumpTarget)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, m.jumping)

	// Enter on the current page issues nothing.
	m, _ = update(t, m, keyRunes("g"))
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, before, f.count())
}

func TestBrowseModel_JumpUnavailableOnSinglePage(t *testing.T) {
	f := &fakeFetcher{respond: func(context.Context, catalog.Descriptor) (*catalog.Page, error) {
		return &catalog.Page{Info: catalog.PageInfo{Count: 1, Pages: 1}, Results: []catalog.Character{{Name: "Jerry"}}}, nil
	}}
	m := newLoadedModel(t, f, BrowseOptions{})

	m, _ = update(t, m, keyRunes("g"))
	assert.False(t, m.jumping)
}

// The model returned alongside a request command must already reflect that
// request: loading state and a cancel func for the new context.
func TestBrowseModel_ReturnedModelReflectsIssuedRequest(t *testing.T) {
	f := &fakeFetcher{}
	m := newLoadedModel(t, f, BrowseOptions{})
	require.Nil(t, m.cancel)

	for _, key := range []tea.KeyMsg{keyRunes("s"), {Type: tea.KeyRight}} {
		next, cmd := update(t, m, key)
		require.NotNil(t, cmd)
		assert.Equal(t, ViewStateLoading, next.State())
		assert.NotNil(t, next.cancel)
		assert.Equal(t, engine.StatusLoading, next.Snapshot().Status)
		m = resolve(t, next, cmd)
	}
}
