package tui

// ViewState is the screen currently shown by the browser.
type ViewState int

const (
	// ViewStateLoading shows the spinner while a request is in flight.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the results table.
	ViewStateList
	// ViewStateEmpty shows the no-results message.
	ViewStateEmpty
	// ViewStateError shows the failure and the retry hint.
	ViewStateError
	// ViewStateDetail shows one character.
	ViewStateDetail
	// ViewStateFilter shows the filter picker.
	ViewStateFilter
	// ViewStateQuitting is set just before the program exits.
	ViewStateQuitting
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateEmpty:
		return "empty"
	case ViewStateError:
		return "error"
	case ViewStateDetail:
		return "detail"
	case ViewStateFilter:
		return "filter"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}
