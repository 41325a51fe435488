package overlay

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var searchBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorIris).
	Padding(0, 1)

// SearchOverlay is the inline search box above the conversation list. It
// only collects the query; filtering is the caller's job.
type SearchOverlay struct {
	input textinput.Model
	width int
}

// NewSearchOverlay creates a focused search input.
func NewSearchOverlay() *SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = "search conversations"
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorIris)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorMuted)
	ti.Focus()
	return &SearchOverlay{input: ti}
}

// SetWidth sets the render width.
func (s *SearchOverlay) SetWidth(width int) {
	s.width = width
	s.input.Width = width - 8
}

// Update forwards key events to the input. The caller intercepts
// enter/esc before calling this.
func (s *SearchOverlay) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// Value returns the current query text.
func (s *SearchOverlay) Value() string {
	return s.input.Value()
}

// View renders the search box.
func (s *SearchOverlay) View() string {
	return searchBoxStyle.Width(s.width - 2).Render(s.input.View())
}
