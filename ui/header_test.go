package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHeader() *Header {
	s := spinner.New()
	h := NewHeader(&s)
	h.SetWidth(80)
	return h
}

func TestStartRefreshSingleFlight(t *testing.T) {
	h := newTestHeader()

	cmd := h.StartRefresh(func() error { return nil })
	require.NotNil(t, cmd)
	assert.True(t, h.Refreshing())

	// A second refresh while one is in flight is dropped.
	assert.Nil(t, h.StartRefresh(func() error { return nil }))
}

func TestStartRefreshNilFunc(t *testing.T) {
	h := newTestHeader()
	assert.Nil(t, h.StartRefresh(nil))
	assert.False(t, h.Refreshing())
}

func TestRefreshDeliversErrorAndClears(t *testing.T) {
	h := newTestHeader()
	boom := errors.New("upstream down")

	cmd := h.StartRefresh(func() error { return boom })
	require.NotNil(t, cmd)

	msg, ok := cmd().(RefreshDoneMsg)
	require.True(t, ok)
	assert.Equal(t, boom, msg.Err)

	// The spinner clears on failure exactly as on success.
	h.FinishRefresh()
	assert.False(t, h.Refreshing())

	// And a new refresh is accepted afterwards.
	assert.NotNil(t, h.StartRefresh(func() error { return nil }))
}

func TestHeaderViewShowsNavigationState(t *testing.T) {
	zone.NewGlobal()
	h := newTestHeader()

	h.SetData(HeaderData{Title: "Chat", Unread: 3, CanBack: true})
	view := h.View()
	assert.Contains(t, view, "Chat")
	assert.Contains(t, view, "3")
	assert.Contains(t, view, "back")

	h.SetData(HeaderData{Title: "Conversations", FilterLabel: "open"})
	assert.Contains(t, h.View(), "filter:open")
}

func TestTruncateToWidthIsStyleSafe(t *testing.T) {
	styled := "\x1b[38;5;210m" + strings.Repeat("a", 40) + "\x1b[0m"

	out := truncateToWidth(styled, 10)

	// The cut lands on a cell boundary, never inside an escape sequence:
	// the rendered width is exact and the ellipsis survives as plain text.
	assert.Equal(t, 10, lipgloss.Width(out))
	assert.True(t, strings.HasSuffix(ansi.Strip(out), "…"))

	// Content that fits passes through untouched.
	assert.Equal(t, styled, truncateToWidth(styled, 60))
}

func TestHeaderViewOverflowStaysOnOneRow(t *testing.T) {
	zone.NewGlobal()
	h := newTestHeader()
	h.SetWidth(24)

	h.SetData(HeaderData{Title: "Conversations", Unread: 120, CanBack: true, FilterLabel: "snoozed"})

	assert.NotContains(t, h.View(), "\n")
}
