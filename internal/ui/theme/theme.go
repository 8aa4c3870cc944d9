// Package theme holds the terminal styles used by the CLI reports.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, matched to the web dashboard's risk colors.
var (
	Primary = lipgloss.Color("#6366F1") // Indigo
	Low     = lipgloss.Color("#22C55E") // Green
	Mild    = lipgloss.Color("#EAB308") // Yellow
	Warn    = lipgloss.Color("#F97316") // Orange
	Danger  = lipgloss.Color("#EF4444") // Red
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(20)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	On = lipgloss.NewStyle().
		Foreground(Low).
		Bold(true)

	Off = lipgloss.NewStyle().
		Foreground(TextDim)
)

// RiskColor picks the band color for a 0-100 risk value.
func RiskColor(pct float64) lipgloss.Style {
	c := Low
	switch {
	case pct >= 75:
		c = Danger
	case pct >= 55:
		c = Warn
	case pct >= 35:
		c = Mild
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// Flag renders a progression flag as a check or a dot.
func Flag(set bool) string {
	if set {
		return On.Render("✓")
	}
	return Off.Render("·")
}
