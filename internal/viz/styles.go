package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel       lipgloss.Style
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	StatusPass  lipgloss.Style
	StatusFail  lipgloss.Style
	StatusSkip  lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	KeyHint     lipgloss.Style

	barHigh lipgloss.Style
	barMid  lipgloss.Style
	barLow  lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	t := CurrentTheme

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)

	StatusPass = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	StatusFail = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	StatusSkip = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)

	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted).Width(14)
	MetricValue = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	KeyHint = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)

	barHigh = lipgloss.NewStyle().Foreground(t.Success)
	barMid = lipgloss.NewStyle().Foreground(t.Warning)
	barLow = lipgloss.NewStyle().Foreground(t.Secondary)
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent >= 1 {
		return barHigh.Render(bar)
	} else if percent > 0.4 {
		return barMid.Render(bar)
	}
	return barLow.Render(bar)
}

// Sparkline renders values as a row of block characters scaled between
// their minimum and maximum.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Separator draws a muted horizontal rule.
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
