package haptic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPulse_WritesBellWhenEnabled(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer
	p := New(true)
	p.w = &buf

	p.Pulse()
	p.Pulse()
	assert.Equal(t, []byte{0x07, 0x07}, buf.Bytes())
}

func TestPulse_NoopWhenDisabled(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer
	p := New(false)
	p.w = &buf

	p.Pulse()
	assert.Empty(t, buf.Bytes())
}

func TestNew_DumbTerminalDisables(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.False(t, New(true).Enabled())

	t.Setenv("TERM", "")
	assert.False(t, New(true).Enabled())
}
