// Package style renders strings with lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer with foreground c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

// Tag renders s as a padded block with the given colors.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(fg).Background(bg).Padding(0, 1).Render(s) }
}

// Truncate cuts every line of s to width.
func Truncate(width int) func(string) string {
	return func(s string) string { return New().MaxWidth(width).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }

	Title      = Tag(Base, AccentColor)
	ErrorTitle = Tag(Base, ErrorColor)
)

// Progress renders the played fraction of a video as a bar of width cells.
func Progress(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '━'
		} else {
			bar[i] = '─'
		}
	}
	return Fg(AccentColor)(string(bar[:filled])) + Fg(FaintColor)(string(bar[filled:]))
}
