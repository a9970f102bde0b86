package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/charscope/internal/api"
	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/logging"
	listview "github.com/rshade/charscope/internal/tui/list"
)

// filterStage is the step of the filter picker currently shown.
type filterStage int

const (
	stageKinds filterStage = iota
	stageValues
	stageSpeciesLoading
	stageSpeciesText
)

// anyLabel is the option that clears a filter.
const anyLabel = "Any"

// filterResult tells the browser what a key press in the picker did.
type filterResult struct {
	apply  *catalog.FilterPatch
	closed bool
	cmd    tea.Cmd
}

// filterPanel picks a filter kind, then a value for it. Species options come
// from a lazy crawl; if it fails the panel falls back to free text.
type filterPanel struct {
	ctx         context.Context
	lister      SpeciesLister
	concurrency int

	stage   filterStage
	current catalog.FilterState
	kind    catalog.FilterKind
	kinds   *listview.Picker[catalog.FilterKind]
	values  *listview.Picker[string]
	text    textinput.Model
	height  int

	species        []string
	speciesErr     error
	speciesLoading bool
}

func newFilterPanel(ctx context.Context, lister SpeciesLister, concurrency int) *filterPanel {
	if concurrency < 1 {
		concurrency = api.DefaultSpeciesConcurrency
	}
	ti := textinput.New()
	ti.Placeholder = "e.g. Human"
	ti.Prompt = "species: "
	ti.CharLimit = 60 //nolint:mnd // Longest species name is well below this.

	return &filterPanel{
		ctx:         ctx,
		lister:      lister,
		concurrency: concurrency,
		text:        ti,
		height:      defaultHeight - chromeHeight,
	}
}

func (p *filterPanel) setHeight(h int) {
	p.height = h
	if p.kinds != nil {
		p.kinds.SetHeight(h)
	}
	if p.values != nil {
		p.values.SetHeight(h)
	}
}

// open resets the panel to the kind list for the given filters.
func (p *filterPanel) open(current catalog.FilterState) {
	p.current = current
	p.stage = stageKinds
	p.kinds = listview.NewPicker(
		"Filter by",
		[]catalog.FilterKind{catalog.FilterStatus, catalog.FilterGender, catalog.FilterSpecies},
		func(k catalog.FilterKind) string {
			v := current.Get(k)
			if v == "" {
				v = anyLabel
			}
			return fmt.Sprintf("%-8s %s", kindTitle(k), v)
		},
	)
	p.kinds.SetHeight(p.height)
}

func (p *filterPanel) handleKey(msg tea.KeyMsg) filterResult {
	switch p.stage {
	case stageKinds:
		switch p.kinds.HandleKey(msg) {
		case listview.ActionSelect:
			kind, _ := p.kinds.Selected()
			return p.chooseKind(kind)
		case listview.ActionCancel:
			return filterResult{closed: true}
		default:
			return filterResult{}
		}
	case stageValues:
		switch p.values.HandleKey(msg) {
		case listview.ActionSelect:
			value, _ := p.values.Selected()
			patch := catalog.SetFilter(p.kind, value)
			return filterResult{apply: &patch}
		case listview.ActionCancel:
			p.stage = stageKinds
			return filterResult{}
		default:
			return filterResult{}
		}
	case stageSpeciesLoading:
		if msg.String() == keyEsc {
			p.stage = stageKinds
		}
		return filterResult{}
	case stageSpeciesText:
		return p.handleTextKey(msg)
	default:
		return filterResult{closed: true}
	}
}

func (p *filterPanel) chooseKind(kind catalog.FilterKind) filterResult {
	p.kind = kind
	switch kind {
	case catalog.FilterStatus:
		p.showValues(catalog.Statuses)
	case catalog.FilterGender:
		p.showValues(catalog.Genders)
	case catalog.FilterSpecies:
		return p.chooseSpecies()
	}
	return filterResult{}
}

func (p *filterPanel) chooseSpecies() filterResult {
	switch {
	case p.species != nil:
		p.showValues(p.species)
		return filterResult{}
	case p.speciesErr != nil || p.lister == nil:
		p.showText()
		return filterResult{cmd: p.text.Focus()}
	case p.speciesLoading:
		p.stage = stageSpeciesLoading
		return filterResult{}
	default:
		p.stage = stageSpeciesLoading
		p.speciesLoading = true
		return filterResult{cmd: p.loadSpecies()}
	}
}

// loadSpecies runs the species crawl in the background.
func (p *filterPanel) loadSpecies() tea.Cmd {
	ctx, lister, concurrency := p.ctx, p.lister, p.concurrency
	return func() tea.Msg {
		species, err := lister.Species(ctx, concurrency)
		return speciesLoadedMsg{species: species, err: err}
	}
}

// speciesLoaded stores the crawl outcome and advances a waiting picker.
func (p *filterPanel) speciesLoaded(msg speciesLoadedMsg) {
	p.speciesLoading = false
	if msg.err != nil {
		p.speciesErr = msg.err
		logging.FromContext(p.ctx).Warn().Ctx(p.ctx).
			Str("component", "tui").
			Err(msg.err).
			Msg("species list unavailable, falling back to text entry")
		if p.stage == stageSpeciesLoading {
			p.showText()
			p.text.Focus()
		}
		return
	}

	p.species = msg.species
	if p.species == nil {
		p.species = []string{}
	}
	if p.stage == stageSpeciesLoading {
		p.showValues(p.species)
	}
}

// showValues lists options for p.kind, led by "Any", with the current value highlighted.
func (p *filterPanel) showValues(options []string) {
	values := append([]string{""}, options...)
	p.values = listview.NewPicker(kindTitle(p.kind), values, func(v string) string {
		if v == "" {
			return anyLabel
		}
		return v
	})
	p.values.SetHeight(p.height)

	current := p.current.Get(p.kind)
	for i, v := range values {
		if v == current {
			p.values.SetCursor(i)
			break
		}
	}
	p.stage = stageValues
}

func (p *filterPanel) showText() {
	p.text.SetValue(p.current.Species)
	p.stage = stageSpeciesText
}

func (p *filterPanel) handleTextKey(msg tea.KeyMsg) filterResult {
	switch msg.String() {
	case keyEnter:
		p.text.Blur()
		patch := catalog.SetFilter(catalog.FilterSpecies, strings.TrimSpace(p.text.Value()))
		return filterResult{apply: &patch}
	case keyEsc:
		p.text.Blur()
		p.stage = stageKinds
		return filterResult{}
	}
	var cmd tea.Cmd
	p.text, cmd = p.text.Update(msg)
	return filterResult{cmd: cmd}
}

// view renders the current stage of the picker.
func (p *filterPanel) view() string {
	highlight := func(s string) string { return TableSelectedStyle.Render(s) }

	var sb strings.Builder
	switch p.stage {
	case stageKinds:
		sb.WriteString(HeaderStyle.Render(p.kinds.Title()))
		sb.WriteString("\n\n")
		sb.WriteString(p.kinds.View(highlight))
		sb.WriteString("\n\n")
		sb.WriteString(SubtleStyle.Render("enter: choose • esc: close"))
	case stageValues:
		sb.WriteString(HeaderStyle.Render(p.values.Title()))
		sb.WriteString("\n\n")
		sb.WriteString(p.values.View(highlight))
		sb.WriteString("\n\n")
		sb.WriteString(SubtleStyle.Render("enter: apply • esc: back"))
	case stageSpeciesLoading:
		sb.WriteString(HeaderStyle.Render("Species"))
		sb.WriteString("\n\n")
		sb.WriteString(SubtleStyle.Render("Loading species..."))
	case stageSpeciesText:
		sb.WriteString(HeaderStyle.Render("Species"))
		sb.WriteString("\n\n")
		if p.speciesErr != nil {
			sb.WriteString(WarningStyle.Render("Species list unavailable; type a species instead."))
			sb.WriteString("\n")
		}
		sb.WriteString(p.text.View())
		sb.WriteString("\n\n")
		sb.WriteString(SubtleStyle.Render("enter: apply • esc: back"))
	}
	return BoxStyle.Render(sb.String())
}

// kindTitle is the display name of a filter kind.
func kindTitle(k catalog.FilterKind) string {
	switch k {
	case catalog.FilterStatus:
		return "Status"
	case catalog.FilterGender:
		return "Gender"
	case catalog.FilterSpecies:
		return "Species"
	default:
		return k.String()
	}
}
