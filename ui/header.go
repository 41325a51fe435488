package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(ColorSurface).
			Foreground(ColorText).
			Padding(0, 1)

	headerTitleStyle = lipgloss.NewStyle().
				Foreground(ColorIris).
				Background(ColorSurface).
				Bold(true)

	headerBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorLove).
				Padding(0, 1).
				Bold(true)

	headerActionStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle).
				Background(ColorSurface)

	headerActionDisabledStyle = lipgloss.NewStyle().
					Foreground(ColorMuted).
					Background(ColorSurface)
)

// HeaderData is the navigation snapshot the header renders from. The header
// only reads navigation state; its back affordance calls the same
// NavigateBack entry point gestures use.
type HeaderData struct {
	Title       string
	Unread      int
	CanBack     bool
	FilterLabel string // current status filter, empty = all
}

// RefreshDoneMsg reports the outcome of an external refresh call started by
// the header. The app must route it back via FinishRefresh.
type RefreshDoneMsg struct {
	Err error
}

// Header is the single-pane mode top bar: back affordance, panel title,
// unread badge, and the search/filter/refresh actions.
type Header struct {
	width      int
	data       HeaderData
	refreshing bool
	spinner    *spinner.Model
}

// NewHeader creates a Header sharing the app-wide spinner.
func NewHeader(s *spinner.Model) *Header {
	return &Header{spinner: s}
}

// SetWidth sets the render width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetData updates the navigation snapshot the header renders.
func (h *Header) SetData(data HeaderData) {
	h.data = data
}

// Refreshing reports whether an external refresh is in flight.
func (h *Header) Refreshing() bool { return h.refreshing }

// StartRefresh kicks off the external refresh call and enters the spinner
// state. Returns nil when a refresh is already in flight, so a held-down key
// cannot stack refreshes. The returned command always yields a
// RefreshDoneMsg, success or failure, which is what guarantees the spinner
// can never get stuck.
func (h *Header) StartRefresh(refresh func() error) tea.Cmd {
	if h.refreshing || refresh == nil {
		return nil
	}
	h.refreshing = true
	return func() tea.Msg {
		return RefreshDoneMsg{Err: refresh()}
	}
}

// FinishRefresh clears the in-flight state. Call on every RefreshDoneMsg
// before looking at the error: clearing must happen unconditionally.
func (h *Header) FinishRefresh() {
	h.refreshing = false
}

// View renders the header bar at the configured width.
func (h *Header) View() string {
	if h.width <= 0 {
		return ""
	}

	var back string
	if h.data.CanBack {
		back = zone.Mark(ZoneHeaderBack, headerActionStyle.Render("‹ back"))
	} else {
		back = headerActionDisabledStyle.Render("‹ back")
	}

	title := headerTitleStyle.Render(h.data.Title)
	left := back + "  " + title
	if h.data.Unread > 0 {
		left += " " + headerBadgeStyle.Render(fmt.Sprintf("%d", h.data.Unread))
	}

	filter := "filter"
	if h.data.FilterLabel != "" {
		filter = "filter:" + h.data.FilterLabel
	}
	refresh := "refresh"
	if h.refreshing {
		refresh = h.spinner.View()
	}
	right := strings.Join([]string{
		zone.Mark(ZoneHeaderSearch, headerActionStyle.Render("search")),
		zone.Mark(ZoneHeaderFilter, headerActionStyle.Render(filter)),
		zone.Mark(ZoneHeaderRefresh, headerActionStyle.Render(refresh)),
	}, "  ")

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return headerStyle.Width(h.width).Render(truncateToWidth(bar, h.width-2))
}

// truncateToWidth hard-truncates styled content that overflows the bar.
// ANSI-aware: the cut must never land inside an escape sequence.
func truncateToWidth(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
