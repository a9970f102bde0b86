package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/engine"
	"github.com/rshade/charscope/internal/pagination"
)

const appTitle = "Rick and Morty Characters"

// View renders the current view (Bubble Tea interface).
func (m BrowseModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	sections := []string{TitleStyle.Render(appTitle), m.renderSearchBar()}
	if chips := renderChips(m.snap.Filters); chips != "" {
		sections = append(sections, chips)
	}

	switch m.state {
	case ViewStateLoading:
		sections = append(sections, RenderLoading(m.loadingState))
	case ViewStateError:
		sections = append(sections, renderErrorView(m.snap.Err))
	case ViewStateEmpty:
		sections = append(sections, "\n"+SubtleStyle.Render(engine.EmptyMessage)+"\n")
	case ViewStateDetail:
		sections = append(sections, RenderCharacterDetail(m.detail, m.width))
	case ViewStateFilter:
		sections = append(sections, m.filters.view())
	case ViewStateList:
		sections = append(sections, m.table.View())
		target := 0
		if m.jumping {
			target = m.jumpTarget
		}
		if footer := renderPagination(m.snap.Meta(), target); footer != "" {
			sections = append(sections, footer)
		}
	case ViewStateQuitting:
	}

	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m BrowseModel) renderSearchBar() string {
	if m.searching || m.search.Value() != "" {
		return m.search.View()
	}
	return SubtleStyle.Render("/ Search characters...")
}

// renderChips shows active filters as removable chips numbered 1 to 3.
func renderChips(filters catalog.FilterState) string {
	active := filters.Active()
	if len(active) == 0 {
		return ""
	}

	chips := make([]string, 0, len(active)+1)
	for _, f := range active {
		key := strconv.Itoa(int(f.Kind) + 1)
		chips = append(chips, ChipStyle.Render(fmt.Sprintf("[%s] %s ×", key, f)))
	}
	chips = append(chips, SubtleStyle.Render("x: reset filters"))
	return lipgloss.JoinHorizontal(lipgloss.Center, chips...)
}

func renderErrorView(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	var sb strings.Builder
	sb.WriteString(CriticalStyle.Render("Error: " + msg))
	sb.WriteString("\n\n")
	sb.WriteString(LabelStyle.Render("[r] Try again"))
	return BoxStyle.Render(sb.String())
}

// RenderPagination renders the page window with the current page highlighted
// and the "Showing page C of T" summary.
func RenderPagination(meta pagination.Meta) string {
	return renderPagination(meta, 0)
}

// renderPagination additionally marks target, the page a jump would go to;
// zero marks nothing.
func renderPagination(meta pagination.Meta, target int) string {
	if meta.TotalPages == 0 {
		return ""
	}

	parts := make([]string, 0, pagination.WindowSize+2) //nolint:mnd // Prev and next controls.
	if meta.HasPrevious {
		parts = append(parts, PageStyle.Render("‹ Prev"))
	} else {
		parts = append(parts, DisabledStyle.Render("‹ Prev"))
	}
	for _, p := range pagination.Pages(meta.CurrentPage, meta.TotalPages) {
		switch {
		case p == target && p != meta.CurrentPage:
			parts = append(parts, JumpTargetStyle.Render(strconv.Itoa(p)))
		case p == meta.CurrentPage:
			parts = append(parts, CurrentPageStyle.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, PageStyle.Render(strconv.Itoa(p)))
		}
	}
	if meta.HasNext {
		parts = append(parts, PageStyle.Render("Next ›"))
	} else {
		parts = append(parts, DisabledStyle.Render("Next ›"))
	}

	pager := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	summary := SubtleStyle.Render(fmt.Sprintf("Showing page %d of %d", meta.CurrentPage, meta.TotalPages))
	return lipgloss.JoinVertical(lipgloss.Left, pager, summary)
}

func (m BrowseModel) renderHelp() string {
	var help string
	switch {
	case m.searching:
		help = "enter: search now • esc: clear"
	case m.jumping:
		help = "←/→: choose page • enter: go • esc: cancel"
	case m.state == ViewStateDetail:
		help = "esc: back • q: quit"
	case m.state == ViewStateFilter:
		help = ""
	case m.state == ViewStateError:
		help = "r: retry • /: search • f: filter • q: quit"
	default:
		help = "/: search • f: filter • 1-3: remove filter • s: sort • ←/→: page • g: go to page • q: quit"
	}
	if help == "" {
		return ""
	}
	return SubtleStyle.Render(help)
}

// RenderCharacterDetail renders one character as a labelled card.
func RenderCharacterDetail(ch catalog.Character, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(strings.ToUpper(ch.Name)))
	content.WriteString("\n\n")
	writeField(&content, "Status:   ", StatusStyle(ch.Status).Render(orDash(ch.Status)))
	writeField(&content, "Species:  ", ValueStyle.Render(orDash(ch.Species)))
	if ch.Type != "" {
		writeField(&content, "Type:     ", ValueStyle.Render(ch.Type))
	}
	writeField(&content, "Gender:   ", ValueStyle.Render(orDash(ch.Gender)))
	writeField(&content, "Origin:   ", ValueStyle.Render(orDash(ch.Origin.Name)))
	writeField(&content, "Location: ", ValueStyle.Render(orDash(ch.Location.Name)))
	writeField(&content, "Episodes: ", ValueStyle.Render(strconv.Itoa(len(ch.Episode))))
	if !ch.Created.IsZero() {
		writeField(&content, "Created:  ", ValueStyle.Render(ch.Created.Format("2006-01-02")))
	}
	if ch.Image != "" {
		writeField(&content, "Image:    ", SubtleStyle.Render(ch.Image))
	}

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	return BoxStyle.Width(max(0, width-borderPadding)).Render(content.String())
}

func writeField(sb *strings.Builder, label, value string) {
	sb.WriteString(LabelStyle.Render(label))
	sb.WriteString(value)
	sb.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderStyledPage renders a snapshot as coloured, non-interactive output for
// terminals that should not be taken over (CI, TERM=dumb).
func RenderStyledPage(snap engine.Snapshot, width int) string {
	if len(snap.Results) == 0 {
		return SubtleStyle.Render(engine.EmptyMessage) + "\n"
	}

	headers := []string{nameColumnTitle(snap.Sort), "Status", "Species", "Gender", "Origin", "Location"}
	rows := make([][]string, len(snap.Results))
	for i, ch := range snap.Results {
		rows[i] = []string{ch.Name, ch.Status, ch.Species, ch.Gender, ch.Origin.Name, ch.Location.Name}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder
	sb.WriteString(renderStyledRow(headers, widths, func(int, string) lipgloss.Style { return HeaderStyle }))
	for _, r := range rows {
		sb.WriteString(renderStyledRow(r, widths, func(col int, cell string) lipgloss.Style {
			if col == 1 {
				return StatusStyle(cell)
			}
			return ValueStyle
		}))
	}

	sb.WriteString("\n")
	sb.WriteString(RenderPagination(snap.Meta()))
	sb.WriteString("\n")

	return lipgloss.NewStyle().MaxWidth(max(1, width)).Render(sb.String())
}

func renderStyledRow(cells []string, widths []int, style func(col int, cell string) lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = style(i, cell).Width(widths[i] + borderPadding).Render(cell)
	}
	return strings.Join(parts, "") + "\n"
}
