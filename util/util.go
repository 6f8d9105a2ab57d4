// Package util holds formatting helpers shared by the commands and the TUI.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
	"golang.org/x/term"
)

// Quantify prefixes the singular or plural label with count.
func Quantify(count int, singular, plural string) string {
	label := plural
	if count == 1 {
		label = singular
	}
	return fmt.Sprint(count, " ", label)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TerminalSize reports the size of the terminal attached to stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FileStem returns the file name of path without its extension.
func FileStem(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}

// Ignore calls f and drops its error, for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

func Max[T constraints.Ordered](items ...T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return slices.Max(items)
}

func Min[T constraints.Ordered](items ...T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return slices.Min(items)
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}

var timeUnits = []struct {
	name    string
	seconds int
}{
	{"day", 86400},
	{"hour", 3600},
	{"min", 60},
	{"sec", 1},
}

// SecondsToTimeString formats a duration such as 3611 as "1 hour 11 secs".
// Zero and negative values are "unknown".
func SecondsToTimeString(secs int) string {
	if secs <= 0 {
		return "unknown"
	}

	parts := make([]string, 0, len(timeUnits))
	for _, unit := range timeUnits {
		if n := secs / unit.seconds; n > 0 {
			parts = append(parts, Quantify(n, unit.name, unit.name+"s"))
		}
		secs %= unit.seconds
	}
	return strings.Join(parts, " ")
}

// Clock formats seconds as m:ss or h:mm:ss.
func Clock(secs float64) string {
	total := Max(int(secs), 0)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
