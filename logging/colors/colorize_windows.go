//go:build windows
// +build windows

package colors

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// enabled describes whether ANSI escape codes are emitted by Colorize.
var enabled bool

// EnableColor asks the Windows console to process virtual terminal sequences on stdout. Coloring stays disabled if
// the console mode cannot be read or updated (e.g. stdout is redirected to a file).
func EnableColor() {
	handle := windows.Handle(os.Stdout.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		enabled = false
		return
	}

	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 {
		if err := windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			enabled = false
			return
		}
	}
	enabled = true
}

// DisableColor turns off ANSI coloring.
func DisableColor() {
	enabled = false
}

// Colorize returns the string s wrapped in ANSI code c if the console supports it, or s unchanged otherwise.
func Colorize(s any, c Color) string {
	if !enabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
