package tui

import "github.com/charmbracelet/lipgloss"

// Palette (ANSI 256).
//
//nolint:gochecknoglobals // Shared read-only palette.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorMuted     = lipgloss.Color("241")
	ColorSpinner   = lipgloss.Color("205")
	ColorHighlight = lipgloss.Color("57")
	ColorBorder    = lipgloss.Color("240")
	ColorChip      = lipgloss.Color("24")
)

// Shared styles.
//
//nolint:gochecknoglobals // Shared read-only styles.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader).MarginBottom(1)

	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(ColorHighlight).
				Bold(false)

	ChipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(ColorChip).
			Padding(0, 1).
			MarginRight(1)

	PageStyle        = lipgloss.NewStyle().Foreground(ColorLabel).Padding(0, 1)
	CurrentPageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(ColorHighlight).Padding(0, 1)
	JumpTargetStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ColorHeader).Padding(0, 1)
	DisabledStyle    = lipgloss.NewStyle().Foreground(ColorBorder).Padding(0, 1)
)

// StatusStyle colours a character status: Alive green, Dead red, anything else grey.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "Alive":
		return OKStyle
	case "Dead":
		return lipgloss.NewStyle().Foreground(ColorCritical)
	default:
		return SubtleStyle
	}
}
