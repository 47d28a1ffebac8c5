// Package components renders the reusable pieces of practice output.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a 0-100 percentage.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// View renders the bar followed by the rounded percentage. Percentages
// outside 0-100 are clamped.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = theme.Body.Render(p.Label) + "  "
	}

	pct := min(max(p.Percent, 0), 100)
	barWidth := max(p.Width-lipgloss.Width(result)-6, 4)
	filled := int(float64(barWidth) * pct / 100)

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	result += theme.Subtitle.Render(fmt.Sprintf("  %3d%%", int(pct+0.5)))
	return result
}

// Hearts renders remaining lives out of total.
func Hearts(remaining, total int) string {
	remaining = min(max(remaining, 0), total)
	return theme.Heart.Render(strings.Repeat("♥", remaining)) +
		theme.HeartLost.Render(strings.Repeat("♡", total-remaining))
}
