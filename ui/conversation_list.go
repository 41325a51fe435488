package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/helpdeck/helpdeck/store"
)

var (
	listRowStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	listRowSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorOverlay).
				Padding(0, 1).
				Bold(true)

	listSubjectStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	listUnreadStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorLove).
			Padding(0, 1).
			Bold(true)

	listTimeStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	listEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 2)
)

// statusDot maps a conversation status to its colored marker.
func statusDot(status string) string {
	switch status {
	case store.StatusOpen:
		return lipgloss.NewStyle().Foreground(ColorFoam).Render("●")
	case store.StatusSnoozed:
		return lipgloss.NewStyle().Foreground(ColorGold).Render("◐")
	case store.StatusClosed:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("○")
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("●")
	}
}

// ConversationList renders the inbox list panel. Selection lives here;
// which conversation is open (and therefore the panel order) is the app's
// concern.
type ConversationList struct {
	width, height int
	items         []store.Conversation
	selectedIdx   int
	scrollOffset  int
}

// NewConversationList creates an empty list panel.
func NewConversationList() *ConversationList {
	return &ConversationList{}
}

// SetSize sets the panel dimensions.
func (l *ConversationList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clampScroll()
}

// SetItems replaces the list contents, preserving the selection by ID when
// the previously selected conversation is still present.
func (l *ConversationList) SetItems(items []store.Conversation) {
	var keep string
	if c := l.Selected(); c != nil {
		keep = c.ID
	}
	l.items = items
	l.selectedIdx = 0
	for i, c := range items {
		if c.ID == keep {
			l.selectedIdx = i
			break
		}
	}
	l.clampScroll()
}

// Items returns the current list contents.
func (l *ConversationList) Items() []store.Conversation { return l.items }

// Selected returns the highlighted conversation, or nil when empty.
func (l *ConversationList) Selected() *store.Conversation {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.items) {
		return nil
	}
	return &l.items[l.selectedIdx]
}

// SelectIndex highlights the given row if it exists.
func (l *ConversationList) SelectIndex(idx int) {
	if idx >= 0 && idx < len(l.items) {
		l.selectedIdx = idx
		l.clampScroll()
	}
}

// Up moves the highlight up one row.
func (l *ConversationList) Up() {
	if l.selectedIdx > 0 {
		l.selectedIdx--
		l.clampScroll()
	}
}

// Down moves the highlight down one row.
func (l *ConversationList) Down() {
	if l.selectedIdx < len(l.items)-1 {
		l.selectedIdx++
		l.clampScroll()
	}
}

// rowsPerItem is the rendered height of one conversation row.
const rowsPerItem = 2

func (l *ConversationList) visibleRows() int {
	n := l.height / rowsPerItem
	if n < 1 {
		n = 1
	}
	return n
}

func (l *ConversationList) clampScroll() {
	visible := l.visibleRows()
	if l.selectedIdx < l.scrollOffset {
		l.scrollOffset = l.selectedIdx
	}
	if l.selectedIdx >= l.scrollOffset+visible {
		l.scrollOffset = l.selectedIdx - visible + 1
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// View renders the list panel.
func (l *ConversationList) View() string {
	if len(l.items) == 0 {
		return listEmptyStyle.Render("No conversations.\nPress r to refresh.")
	}

	var b strings.Builder
	visible := l.visibleRows()
	for i := l.scrollOffset; i < len(l.items) && i < l.scrollOffset+visible; i++ {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(zone.Mark(ConversationRowZoneID(i), l.renderRow(i)))
	}
	return b.String()
}

func (l *ConversationList) renderRow(i int) string {
	c := l.items[i]
	style := listRowStyle
	if i == l.selectedIdx {
		style = listRowSelectedStyle
	}

	name := c.CustomerName
	if c.Unread > 0 {
		name += " " + listUnreadStyle.Render(fmt.Sprintf("%d", c.Unread))
	}
	age := listTimeStyle.Render(relativeTime(c.UpdatedAt))

	top := statusDot(c.Status) + " " + name
	gap := l.width - lipgloss.Width(top) - lipgloss.Width(age) - 3
	if gap < 1 {
		gap = 1
	}
	top += strings.Repeat(" ", gap) + age

	subject := listSubjectStyle.Render(
		string(truncate.String(c.Subject, uint(max(l.width-4, 1)))))

	return style.Width(l.width).Render(top + "\n  " + subject)
}

// relativeTime formats an age like the inbox list shows it: 5m, 3h, 2d.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
