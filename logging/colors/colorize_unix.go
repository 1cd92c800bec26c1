//go:build !windows
// +build !windows

package colors

import "fmt"

// enabled describes whether ANSI escape codes are emitted by Colorize.
var enabled = true

// EnableColor turns on ANSI coloring. Unix terminals support ANSI escape codes, so no probing is needed.
func EnableColor() {
	enabled = true
}

// DisableColor turns off ANSI coloring, which is used when output is redirected or --no-color is provided.
func DisableColor() {
	enabled = false
}

// Colorize returns the string s wrapped in ANSI code c, or s unchanged if coloring is disabled.
func Colorize(s any, c Color) string {
	if !enabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
