package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestRiskBarWidth(t *testing.T) {
	for _, pct := range []float64{0, 14.5, 55, 100, 130} {
		view := NewRiskBar("memory_recall", pct, 60).View()
		assert.Equal(t, 60, lipgloss.Width(view), "pct %v", pct)
	}
}

func TestRiskBarFill(t *testing.T) {
	view := NewRiskBar("", 50, 28).View()
	assert.Equal(t, 10, strings.Count(view, "█"))
	assert.Equal(t, 10, strings.Count(view, "░"))
	assert.Contains(t, view, "50.0%")
}
