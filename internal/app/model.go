package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ahall/unposted/internal/db"
	"github.com/ahall/unposted/internal/journal"
	"github.com/ahall/unposted/internal/pipeline"
	"github.com/ahall/unposted/internal/ui"
)

// recentLimit is how many past entries the entries page shows.
const recentLimit = 10

// historyLimit is how many days the streak page lists.
const historyLimit = 30

// Page identifies one of the three TUI pages.
type Page int

const (
	PageJournal Page = iota
	PageEntries
	PageStreak
)

var pageTitles = [...]string{"Journal", "Past Entries", "Streak Tracker"}

// entryItem is a past entry plus its expanded/collapsed display state.
type entryItem struct {
	journal.Entry
	Expanded bool
}

// Model is the root bubbletea model for the unposted TUI.
type Model struct {
	svc *pipeline.Journal

	page Page

	// Past entries
	entries  []entryItem
	selected int

	// Streak
	streak    int
	totalDays int
	history   []db.DayCount

	// Transient status and errors
	statusText   string
	errorMessage string

	width  int
	height int
}

// New creates a Model backed by the given journal service.
func New(svc *pipeline.Journal) Model {
	return Model{svc: svc, statusText: "Loading journal..."}
}

// Init loads entries and streak data from the store.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadEntriesCmd(m.svc), loadStreakCmd(m.svc))
}

// loadEntriesCmd reads the recent entries.
func loadEntriesCmd(svc *pipeline.Journal) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.RecentEntries(recentLimit)
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		return EntriesLoadedMsg{Entries: entries}
	}
}

// loadStreakCmd reads the streak, total days and per-day history.
func loadStreakCmd(svc *pipeline.Journal) tea.Cmd {
	return func() tea.Msg {
		streak, err := svc.Streak()
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		total, err := svc.TotalDays()
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		history, err := svc.History(historyLimit)
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		return StreakLoadedMsg{Streak: streak, TotalDays: total, History: history}
	}
}

// exportCmd writes the entry's reflection to a file in the current working
// directory.
func exportCmd(svc *pipeline.Journal, e journal.Entry) tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("reflection-%s.txt", journal.Day(e.CreatedAt))
		err := svc.ExportReflection(e, path)
		return ReflectionExportedMsg{Path: path, Err: err}
	}
}

// clearStatusCmd fires after a delay to clear transient status text.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case EntriesLoadedMsg:
		m.entries = m.entries[:0]
		for _, e := range msg.Entries {
			m.entries = append(m.entries, entryItem{Entry: e})
		}
		if m.selected >= len(m.entries) {
			m.selected = max(0, len(m.entries)-1)
		}
		m.statusText = ""
		return m, nil

	case StreakLoadedMsg:
		m.streak = msg.Streak
		m.totalDays = msg.TotalDays
		m.history = msg.History
		return m, nil

	case LoadErrorMsg:
		m.errorMessage = msg.Err.Error()
		return m, nil

	case ReflectionExportedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			return m, nil
		}
		m.statusText = "Exported " + msg.Path
		return m, clearStatusCmd()

	case ClearStatusMsg:
		m.statusText = ""
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit

	case KeyTab:
		m.page = (m.page + 1) % 3
		return m, nil

	case KeyJournal:
		m.page = PageJournal
		return m, nil

	case KeyEntries:
		m.page = PageEntries
		return m, nil

	case KeyStreak:
		m.page = PageStreak
		return m, nil

	case KeyDown:
		if m.page == PageEntries && m.selected < len(m.entries)-1 {
			m.selected++
		}
		return m, nil

	case KeyUp:
		if m.page == PageEntries && m.selected > 0 {
			m.selected--
		}
		return m, nil

	case KeyEnter:
		if m.page == PageEntries && m.selected < len(m.entries) {
			m.entries[m.selected].Expanded = !m.entries[m.selected].Expanded
		}
		return m, nil

	case KeyExport:
		if m.page == PageEntries && m.selected < len(m.entries) {
			return m, exportCmd(m.svc, m.entries[m.selected].Entry)
		}
		if m.page == PageJournal && len(m.entries) > 0 {
			return m, exportCmd(m.svc, m.entries[0].Entry)
		}
		return m, nil

	case KeyReload:
		m.statusText = "Reloading..."
		return m, tea.Batch(loadEntriesCmd(m.svc), loadStreakCmd(m.svc))
	}

	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.page {
	case PageJournal:
		sections = append(sections, m.renderJournalPage())
	case PageEntries:
		sections = append(sections, m.renderEntriesPage())
	case PageStreak:
		sections = append(sections, m.renderStreakPage())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	} else if m.statusText != "" {
		sections = append(sections, ui.StatusStyle.Render(m.statusText))
	}

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("UNPOSTED")

	var tabs []string
	for i, name := range pageTitles {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Page(i) == m.page {
			tabs = append(tabs, ui.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, ui.TabStyle.Render(label))
		}
	}

	return title + "  " + strings.Join(tabs, ui.DimStyle.Render("  ·  "))
}

// contentHeight is the number of rows available to a page body.
func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + dividers(2) + status(1) + footer(1)
	return max(5, m.height-5)
}

func (m Model) renderJournalPage() string {
	var lines []string

	if len(m.entries) == 0 {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  No entries yet."))
		lines = append(lines, ui.DimStyle.Render("  Record one with: unposted -record note.wav -duration 60"))
		return m.padPage(lines)
	}

	e := m.entries[0].Entry
	width := max(20, m.width-4)

	lines = append(lines, ui.PanelTitleStyle.Render("LATEST ENTRY")+
		ui.TimestampStyle.Render("  "+e.CreatedAt.Format("2006-01-02 15:04")))
	lines = append(lines, "")
	lines = append(lines, "  "+ui.DimStyle.Render("Emotion   ")+ui.EmotionStyle.Render(e.Emotion))
	if e.DurationSeconds > 0 {
		lines = append(lines, "  "+ui.DimStyle.Render("Duration  ")+fmt.Sprintf("%.0fs", e.DurationSeconds))
	}
	lines = append(lines, "")
	lines = append(lines, "  "+ui.PanelTitleStyle.Render("Summary"))
	for _, wl := range wrapText(e.Summary, width) {
		lines = append(lines, "  "+wl)
	}
	lines = append(lines, "")
	lines = append(lines, "  "+ui.PanelTitleStyle.Render("Reflection"))
	for _, wl := range wrapText(e.Reflection, width) {
		lines = append(lines, "  "+ui.DimStyle.Render(wl))
	}
	if e.Transcription != "" {
		lines = append(lines, "")
		lines = append(lines, "  "+ui.PanelTitleStyle.Render("Transcript"))
		for _, wl := range wrapText(e.Transcription, width) {
			lines = append(lines, "  "+wl)
		}
	}

	return m.padPage(lines)
}

func (m Model) renderEntriesPage() string {
	var lines []string

	lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("PAST ENTRIES (%d)", len(m.entries))))

	if len(m.entries) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No entries yet."))
		return m.padPage(lines)
	}

	width := max(20, m.width-6)
	for i, item := range m.entries {
		marker := "▸"
		if item.Expanded {
			marker = "▾"
		}
		head := fmt.Sprintf("%s %s — %s", marker,
			item.CreatedAt.Format("2006-01-02"), item.Emotion)
		if i == m.selected {
			lines = append(lines, ui.SelectedStyle.Render("> "+head))
		} else {
			lines = append(lines, "  "+head)
		}

		for _, wl := range wrapText(item.Summary, width) {
			lines = append(lines, ui.DimStyle.Render("    "+wl))
		}
		if item.Expanded {
			for _, wl := range wrapText(item.Reflection, width) {
				lines = append(lines, ui.DimStyle.Render("      "+wl))
			}
			if item.Transcription != "" {
				for _, wl := range wrapText(item.Transcription, width) {
					lines = append(lines, "      "+wl)
				}
			}
		}
	}

	return m.padPage(lines)
}

func (m Model) renderStreakPage() string {
	var lines []string

	lines = append(lines, ui.PanelTitleStyle.Render("STREAK TRACKER"))
	lines = append(lines, "")

	flame := ""
	if m.streak > 0 {
		flame = " 🔥"
	}
	lines = append(lines, fmt.Sprintf("  Current streak: %s%s",
		ui.StreakStyle.Render(fmt.Sprintf("%d day(s)", m.streak)), flame))
	lines = append(lines, fmt.Sprintf("  Total journal days: %d", m.totalDays))
	lines = append(lines, "")

	if len(m.history) > 0 {
		lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("LAST %d DAYS", len(m.history))))
		for _, dc := range m.history {
			noun := "entries"
			if dc.Count == 1 {
				noun = "entry"
			}
			lines = append(lines, fmt.Sprintf("  %s  %s",
				ui.TimestampStyle.Render(dc.Day),
				ui.DimStyle.Render(fmt.Sprintf("%d %s", dc.Count, noun))))
		}
	}

	return m.padPage(lines)
}

// padPage trims or pads page lines to the content height.
func (m Model) padPage(lines []string) string {
	height := m.contentHeight()
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var parts []string

	parts = append(parts, ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Page"))
	if m.page == PageEntries {
		parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Nav"))
		parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Expand"))
	}
	parts = append(parts, ui.FooterKeyStyle.Render("e")+ui.FooterDescStyle.Render(" Export"))
	parts = append(parts, ui.FooterKeyStyle.Render("r")+ui.FooterDescStyle.Render(" Reload"))
	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
