package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/helpdeck/helpdeck/store"
)

var (
	detailsLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(10)

	detailsValueStyle = lipgloss.NewStyle().Foreground(ColorText)

	detailsTitleStyle = lipgloss.NewStyle().
				Foreground(ColorIris).
				Bold(true).
				MarginBottom(1)

	detailsHintStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				MarginTop(1)
)

// DetailsPane renders customer and conversation metadata for the selected
// conversation.
type DetailsPane struct {
	width, height int
	conversation  *store.Conversation
	messageCount  int
}

// NewDetailsPane creates an empty details pane.
func NewDetailsPane() *DetailsPane {
	return &DetailsPane{}
}

// SetSize sets the pane dimensions.
func (d *DetailsPane) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetConversation updates the rendered conversation. Nil empties the pane.
func (d *DetailsPane) SetConversation(conv *store.Conversation, messageCount int) {
	d.conversation = conv
	d.messageCount = messageCount
}

// Conversation returns the currently shown conversation, or nil.
func (d *DetailsPane) Conversation() *store.Conversation { return d.conversation }

// View renders the metadata card.
func (d *DetailsPane) View() string {
	if d.conversation == nil {
		return chatEmptyStyle.Render("No conversation selected.")
	}
	c := d.conversation

	row := func(label, value string) string {
		return detailsLabelStyle.Render(label) + detailsValueStyle.Render(value)
	}

	lines := []string{
		detailsTitleStyle.Render(c.Subject),
		row("Customer", c.CustomerName),
		row("Email", c.CustomerEmail),
		row("Status", statusDot(c.Status)+" "+c.Status),
		row("Opened", relativeTime(c.CreatedAt)+" ago"),
		row("Updated", relativeTime(c.UpdatedAt)+" ago"),
		row("Messages", strconv.Itoa(d.messageCount)),
		row("ID", c.ID),
		detailsHintStyle.Render("y yank id · s snooze · c close"),
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}
