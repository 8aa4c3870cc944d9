// Package components renders reusable pieces of CLI output.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/cogniwise/cogniwise/internal/ui/theme"
)

// RiskBar is a horizontal bar filled to a risk percentage.
type RiskBar struct {
	Label   string
	Percent float64 // 0-100
	Width   int
}

// NewRiskBar creates a bar of the given total width.
func NewRiskBar(label string, percent float64, width int) RiskBar {
	return RiskBar{Label: label, Percent: percent, Width: width}
}

// View renders the bar colored by risk band.
func (b RiskBar) View() string {
	var result string
	if b.Label != "" {
		result = theme.Label.Render(b.Label)
	}

	const percentWidth = 8 // "  100.0%"
	barWidth := b.Width - lipgloss.Width(result) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * b.Percent / 100)
	filled = max(0, min(filled, barWidth))

	style := theme.RiskColor(b.Percent)
	result += style.Render(strings.Repeat("█", filled))
	result += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	result += style.Render(fmt.Sprintf("  %5.1f%%", b.Percent))
	return result
}
