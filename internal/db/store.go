package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ahall/unposted/internal/journal"
)

// Store owns the on-disk representation of journal entries. All other
// components work with in-memory Entry values.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "unposted", "journal.db")
}

const schema = `
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		createdAt REAL NOT NULL,
		day TEXT NOT NULL,
		transcription TEXT NOT NULL,
		emotion TEXT NOT NULL,
		summary TEXT NOT NULL,
		reflection TEXT NOT NULL,
		durationSeconds REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_day ON entries(day);
`

// Open opens the database read-write with WAL, creating the file, its
// parent directory and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEntry inserts one entry and returns its assigned id. The insert is a
// single statement: either the whole entry is stored or nothing is.
func (s *Store) SaveEntry(e journal.Entry) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO entries (createdAt, day, transcription, emotion, summary, reflection, durationSeconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, unixFromTime(e.CreatedAt), journal.Day(e.CreatedAt),
		e.Transcription, e.Emotion, e.Summary, e.Reflection, e.DurationSeconds)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("entry id: %w", err)
	}
	return id, nil
}

// RecentEntries returns up to limit entries, newest first.
func (s *Store) RecentEntries(limit int) ([]journal.Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, createdAt, transcription, emotion, summary, reflection, durationSeconds
		FROM entries
		ORDER BY createdAt DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// EntriesOnDay returns the entries recorded on one calendar day, oldest
// first.
func (s *Store) EntriesOnDay(day string) ([]journal.Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, createdAt, transcription, emotion, summary, reflection, durationSeconds
		FROM entries
		WHERE day = ?
		ORDER BY createdAt ASC, id ASC
	`, day)
	if err != nil {
		return nil, fmt.Errorf("query entries for day: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Streak returns the count of consecutive journaled days ending at today or
// yesterday. A gap before both means the streak is over and the count is 0.
// Recomputed from entry dates on every call; nothing is cached.
func (s *Store) Streak(today string) (int, error) {
	rows, err := s.db.Query(`SELECT DISTINCT day FROM entries ORDER BY day DESC`)
	if err != nil {
		return 0, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return 0, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return streakFrom(days, today)
}

// streakFrom computes the run length given distinct days in descending
// order.
func streakFrom(days []string, today string) (int, error) {
	if len(days) == 0 {
		return 0, nil
	}

	t, err := time.Parse(journal.DayFormat, today)
	if err != nil {
		return 0, fmt.Errorf("parse today: %w", err)
	}
	head, err := time.Parse(journal.DayFormat, days[0])
	if err != nil {
		return 0, fmt.Errorf("parse day: %w", err)
	}

	// The streak only counts while its latest day is today or yesterday.
	if head.Before(t.AddDate(0, 0, -1)) || head.After(t) {
		return 0, nil
	}

	count := 1
	prev := head
	for _, d := range days[1:] {
		cur, err := time.Parse(journal.DayFormat, d)
		if err != nil {
			return 0, fmt.Errorf("parse day: %w", err)
		}
		if !cur.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		count++
		prev = cur
	}
	return count, nil
}

// DayCounts returns per-day entry counts, newest day first.
func (s *Store) DayCounts(limit int) ([]DayCount, error) {
	rows, err := s.db.Query(`
		SELECT day, COUNT(*)
		FROM entries
		GROUP BY day
		ORDER BY day DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query day counts: %w", err)
	}
	defer rows.Close()

	var counts []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

// TotalDays returns the number of distinct days with at least one entry.
func (s *Store) TotalDays() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT day) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count days: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]journal.Entry, error) {
	var entries []journal.Entry
	for rows.Next() {
		var e journal.Entry
		var createdAt float64
		if err := rows.Scan(&e.ID, &createdAt, &e.Transcription,
			&e.Emotion, &e.Summary, &e.Reflection, &e.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CreatedAt = timeFromUnix(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
