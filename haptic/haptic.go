// Package haptic is the terminal stand-in for mobile haptic feedback: a
// single short bell pulse confirming a committed panel transition.
package haptic

import (
	"io"
	"os"
)

// Pulser emits one feedback pulse per committed navigation.
type Pulser struct {
	enabled bool
	w       io.Writer
}

// New returns a Pulser. It is a no-op unless enabled in config and the
// terminal is capable of ringing a bell.
func New(enabled bool) *Pulser {
	return &Pulser{
		enabled: enabled && terminalCapable(),
		w:       os.Stdout,
	}
}

// Enabled reports whether pulses will actually be emitted.
func (p *Pulser) Enabled() bool { return p.enabled }

// Pulse rings the terminal bell once. Safe to call when disabled.
func (p *Pulser) Pulse() {
	if !p.enabled {
		return
	}
	_, _ = p.w.Write([]byte{0x07})
}

// terminalCapable detects whether the host terminal can ring a bell.
// Dumb terminals and missing TERM mean no.
func terminalCapable() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
