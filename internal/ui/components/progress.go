package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studydesk/studydesk/internal/progress"
	"github.com/studydesk/studydesk/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar for done out of total.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Done:  done,
		Total: total,
		Width: width,
	}
}

// View renders the progress bar followed by the percentage.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += p.Label + "  "
	}

	pct := progress.Percent(p.Done, p.Total)
	labelWidth := lipgloss.Width(result)
	percentWidth := len(pct) + 2

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if p.Total > 0 {
		filled = barWidth * p.Done / p.Total
	}
	filled = min(max(filled, 0), barWidth)
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
	result += theme.Subtitle.Render("  " + pct)

	return result
}
