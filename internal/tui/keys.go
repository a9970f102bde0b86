package tui

// Key bindings.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keyBackspace = "backspace"
	keySlash     = "/"
	keyS         = "s"
	keyF         = "f"
	keyX         = "x"
	keyR         = "r"
	keyG         = "g"
	keyLeft      = "left"
	keyH         = "h"
	keyRight     = "right"
	keyL         = "l"
	keyChip1     = "1"
	keyChip2     = "2"
	keyChip3     = "3"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 30
	minHeight     = 5
	chromeHeight  = 10
	borderPadding = 2
)
