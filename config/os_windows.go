//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

const reservedNameChars = `<>":/\|?*`

// EnableColorOutput checks if colorized output is possible. On Windows 10
// and later it switches console into VT100 mode.
func EnableColorOutput(stream *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	if v := windows.RtlGetVersion(); v == nil || v.MajorVersion < 10 {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
