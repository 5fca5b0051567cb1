// Package db provides SQLite persistence for journal entries and the
// streak bookkeeping derived from them.
package db

// DayCount is the number of entries recorded on one calendar day.
type DayCount struct {
	Day   string
	Count int
}
