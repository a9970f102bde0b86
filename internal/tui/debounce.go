package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SearchDebounce is how long typing must pause before the name search is sent.
const SearchDebounce = 500 * time.Millisecond

// searchTickMsg fires SearchDebounce after a keystroke. Only the tick whose
// seq matches the model's latest keystroke is acted on.
type searchTickMsg struct {
	seq int
}

// debounceSearch schedules the tick for keystroke seq.
func debounceSearch(seq int) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}
