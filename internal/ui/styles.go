package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorInk     = lipgloss.Color("#E6E1D7")
	ColorAccent  = lipgloss.Color("#7AA2F7")
	ColorWarm    = lipgloss.Color("#E0AF68")
	ColorFlame   = lipgloss.Color("#F7768E")
	ColorLeaf    = lipgloss.Color("#9ECE6A")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInk)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInk)

	EmotionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarm)

	StreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFlame)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorFlame).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorFlame)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorLeaf)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorWarm).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
