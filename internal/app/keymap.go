package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeyTab       = "tab"
	KeyJournal   = "1"
	KeyEntries   = "2"
	KeyStreak    = "3"
	KeyDown      = "j"
	KeyUp        = "k"
	KeyEnter     = "enter"
	KeyExport    = "e"
	KeyReload    = "r"
)
