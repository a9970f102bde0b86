package pagination

import (
	"errors"
	"fmt"
)

// WindowSize is the number of page numbers shown at once.
const WindowSize = 5

// MinPage is the first valid page number.
const MinPage = 1

// ErrInvalidPage is returned for page numbers below MinPage.
var ErrInvalidPage = errors.New("page must be >= 1")

// ValidatePage checks a user-supplied page number.
func ValidatePage(page int) error {
	if page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}
	return nil
}

// Window returns the inclusive [start, end] range of page numbers to display
// for the current page out of total. The window contains current, stays within
// [1, total], and is min(WindowSize, total) wide. When total is zero or less
// the range is empty (end < start).
//
//nolint:nonamedreturns // Named returns document the range bounds.
func Window(current, total int) (start, end int) {
	if total < MinPage {
		return MinPage, 0
	}
	current = max(MinPage, min(current, total))

	half := WindowSize / 2 //nolint:mnd // Centre the window on the current page.
	start = max(MinPage, current-half)
	end = min(total, start+WindowSize-1)
	if end-start+1 < WindowSize {
		start = max(MinPage, end-WindowSize+1)
	}
	return start, end
}

// Pages returns the page numbers inside Window(current, total).
func Pages(current, total int) []int {
	start, end := Window(current, total)
	if end < start {
		return nil
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
