package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultHeight is the number of options shown when no height is set.
const defaultHeight = 10

// halfViewportDivisor centres the cursor in the visible range.
const halfViewportDivisor = 2

// Action is what a key press asked the picker to do.
type Action int

const (
	// ActionNone means the key moved the cursor or was ignored.
	ActionNone Action = iota
	// ActionSelect means the highlighted option was chosen.
	ActionSelect
	// ActionCancel means the picker should close without a choice.
	ActionCancel
)

// LabelFunc renders one option.
type LabelFunc[T any] func(item T) string

// Picker is a scrollable single-choice list. Only the options inside the
// viewport are rendered, so long lists (e.g. every species) stay cheap.
type Picker[T any] struct {
	title  string
	items  []T
	label  LabelFunc[T]
	cursor int

	// visibleFrom is inclusive, visibleTo exclusive.
	visibleFrom int
	visibleTo   int
	height      int
}

// NewPicker creates a picker over items.
func NewPicker[T any](title string, items []T, label LabelFunc[T]) *Picker[T] {
	p := &Picker[T]{
		title:  title,
		items:  items,
		label:  label,
		height: defaultHeight,
	}
	p.updateVisibleRange()
	return p
}

// Title returns the heading shown above the options.
func (p *Picker[T]) Title() string {
	return p.title
}

// HandleKey moves the cursor or reports a selection or cancel.
//
//nolint:exhaustive // Only navigation keys matter.
func (p *Picker[T]) HandleKey(msg tea.KeyMsg) Action {
	switch msg.Type {
	case tea.KeyEnter:
		if len(p.items) == 0 {
			return ActionNone
		}
		return ActionSelect
	case tea.KeyEsc:
		return ActionCancel
	case tea.KeyUp:
		p.move(-1)
	case tea.KeyDown, tea.KeyTab:
		p.move(1)
	case tea.KeyPgUp:
		p.move(-p.height)
	case tea.KeyPgDown:
		p.move(p.height)
	case tea.KeyHome:
		p.SetCursor(0)
	case tea.KeyEnd:
		p.SetCursor(len(p.items) - 1)
	case tea.KeyRunes:
		switch msg.String() {
		case "j":
			p.move(1)
		case "k":
			p.move(-1)
		case "q":
			return ActionCancel
		}
	default:
	}
	return ActionNone
}

func (p *Picker[T]) move(delta int) {
	p.SetCursor(p.cursor + delta)
}

// SetCursor moves the highlight to index, clamped to the option range.
func (p *Picker[T]) SetCursor(index int) {
	if len(p.items) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(index, len(p.items)-1))
	p.updateVisibleRange()
}

// SetHeight changes the number of visible options.
func (p *Picker[T]) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	p.height = height
	p.updateVisibleRange()
}

// updateVisibleRange keeps the cursor inside [visibleFrom, visibleTo).
func (p *Picker[T]) updateVisibleRange() {
	if len(p.items) == 0 {
		p.visibleFrom, p.visibleTo = 0, 0
		return
	}

	from := p.cursor - p.height/halfViewportDivisor
	if from < 0 {
		from = 0
	}
	to := from + p.height
	if to > len(p.items) {
		to = len(p.items)
		from = max(0, to-p.height)
	}
	p.visibleFrom, p.visibleTo = from, to
}

// Selected returns the highlighted option.
func (p *Picker[T]) Selected() (T, bool) {
	var zero T
	if len(p.items) == 0 {
		return zero, false
	}
	return p.items[p.cursor], true
}

// Cursor returns the highlighted index.
func (p *Picker[T]) Cursor() int {
	return p.cursor
}

// Len returns the number of options.
func (p *Picker[T]) Len() int {
	return len(p.items)
}

// VisibleRange returns the rendered window as [from, to).
func (p *Picker[T]) VisibleRange() (int, int) {
	return p.visibleFrom, p.visibleTo
}

// View renders the visible options, marking the cursor with "> ".
// selected styles the highlighted line; nil leaves it unstyled.
func (p *Picker[T]) View(selected func(string) string) string {
	if len(p.items) == 0 {
		return "  (no options)"
	}

	lines := make([]string, 0, p.visibleTo-p.visibleFrom+2) //nolint:mnd // Room for scroll markers.
	if p.visibleFrom > 0 {
		lines = append(lines, "  ↑")
	}
	for i := p.visibleFrom; i < p.visibleTo; i++ {
		text := p.label(p.items[i])
		if i == p.cursor {
			line := "> " + text
			if selected != nil {
				line = selected(line)
			}
			lines = append(lines, line)
			continue
		}
		lines = append(lines, "  "+text)
	}
	if p.visibleTo < len(p.items) {
		lines = append(lines, "  ↓")
	}
	return strings.Join(lines, "\n")
}
