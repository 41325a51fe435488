package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/helpdeck/helpdeck/log"
	"github.com/helpdeck/helpdeck/store"
)

var (
	chatCustomerStyle = lipgloss.NewStyle().
				Foreground(ColorPine).
				Bold(true)

	chatAgentStyle = lipgloss.NewStyle().
			Foreground(ColorRose).
			Bold(true)

	chatMetaStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	chatEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 2)
)

// ChatPane renders the transcript of the selected conversation. Message
// bodies are markdown, rendered through glamour; when rendering fails the
// pane falls back to word-wrapped plain text.
type ChatPane struct {
	width, height int

	conversation *store.Conversation
	messages     []store.Message

	renderer *glamour.TermRenderer
	rendered []string // cached per-message rendered bodies
	scroll   int
}

// NewChatPane creates an empty chat pane.
func NewChatPane() *ChatPane {
	return &ChatPane{}
}

// SetSize sets the pane dimensions and rebuilds the markdown renderer for
// the new wrap width.
func (c *ChatPane) SetSize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		log.WarningLog.Printf("failed to build markdown renderer: %v", err)
		c.renderer = nil
	} else {
		c.renderer = r
	}
	c.rerender()
}

// SetConversation replaces the transcript. A nil conversation empties the
// pane (no conversation selected).
func (c *ChatPane) SetConversation(conv *store.Conversation, messages []store.Message) {
	c.conversation = conv
	c.messages = messages
	c.scroll = 0
	c.rerender()
}

// ScrollUp scrolls the transcript toward older messages.
func (c *ChatPane) ScrollUp() {
	if c.scroll > 0 {
		c.scroll--
	}
}

// ScrollDown scrolls the transcript toward newer messages.
func (c *ChatPane) ScrollDown() {
	c.scroll++
}

func (c *ChatPane) rerender() {
	c.rendered = c.rendered[:0]
	for _, m := range c.messages {
		c.rendered = append(c.rendered, c.renderBody(m.Body))
	}
}

func (c *ChatPane) renderBody(body string) string {
	if c.renderer != nil {
		if out, err := c.renderer.Render(body); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return wordwrap.String(body, max(c.width-4, 20))
}

// View renders the transcript, newest messages at the bottom.
func (c *ChatPane) View() string {
	if c.conversation == nil {
		return chatEmptyStyle.Render("Select a conversation to read it here.")
	}

	var blocks []string
	for i, m := range c.messages {
		author := chatAgentStyle.Render(m.Author)
		if m.Author == store.AuthorCustomer {
			author = chatCustomerStyle.Render(c.conversation.CustomerName)
		}
		head := author + " " + chatMetaStyle.Render(relativeTime(m.CreatedAt))
		blocks = append(blocks, head+"\n"+c.rendered[i])
	}
	all := strings.Split(strings.Join(blocks, "\n\n"), "\n")

	// Bottom-anchored viewport: scroll counts lines up from the latest.
	end := len(all) - c.scroll
	if end > len(all) {
		end = len(all)
	}
	start := end - c.height
	if start < 0 {
		start = 0
		end = min(len(all), c.height)
	}
	if c.scroll > len(all)-c.height && len(all) > c.height {
		c.scroll = len(all) - c.height
	}
	return strings.Join(all[start:end], "\n")
}
