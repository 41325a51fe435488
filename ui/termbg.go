package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// SetTerminalBackground emits OSC 11 to set the terminal's default background
// color. Returns a function that restores the original default via OSC 111.
// This makes every ANSI reset (\033[0m) fall back to the specified color
// instead of the terminal's configured default (usually black). No-op on
// terminals without color support.
func SetTerminalBackground(hexColor string) func() {
	if termenv.ColorProfile() == termenv.Ascii {
		return func() {}
	}
	return setTermBg(os.Stdout, hexColor)
}

// setTermBg is the testable core: writes to the given writer instead of stdout.
func setTermBg(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	// OSC 11 ; <color> ST sets the default background color.
	fmt.Fprintf(w, "\033]11;%s\033\\", hexColor)

	return func() {
		// OSC 111 ST resets it to the terminal's configured value.
		fmt.Fprint(w, "\033]111\033\\")
	}
}
