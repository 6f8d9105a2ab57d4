// Package color names the ANSI colors of plain CLI output. They follow the terminal theme,
// unlike the fixed palette of the style package.
package color

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/tvremote/tvremote/message"
)

// ANSI returns terminal color n.
func ANSI(n int) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(n))
}

var (
	Red    = ANSI(1)
	Green  = ANSI(2)
	Yellow = ANSI(3)
	Blue   = ANSI(4)
	Purple = ANSI(5)
	Cyan   = ANSI(6)

	HiRed    = ANSI(9)
	HiPurple = ANSI(13)

	Orange = lipgloss.Color("#ffb703")
)

// ForKind colors remote messages by direction: commands sent to a surface are purple, reports
// coming back from it are cyan and errors red.
func ForKind(kind message.Kind) lipgloss.Color {
	switch kind {
	case message.KindState:
		return Cyan
	case message.KindError:
		return Red
	default:
		return Purple
	}
}
