package app

import (
	"github.com/ahall/unposted/internal/db"
	"github.com/ahall/unposted/internal/journal"
)

// EntriesLoadedMsg carries the recent entries read from the store.
type EntriesLoadedMsg struct {
	Entries []journal.Entry
}

// StreakLoadedMsg carries the streak numbers and per-day history.
type StreakLoadedMsg struct {
	Streak    int
	TotalDays int
	History   []db.DayCount
}

// LoadErrorMsg is sent when a store read fails.
type LoadErrorMsg struct {
	Err error
}

// ReflectionExportedMsg reports the outcome of exporting a reflection.
type ReflectionExportedMsg struct {
	Path string
	Err  error
}

// ClearStatusMsg clears a transient status line after a timeout.
type ClearStatusMsg struct{}
