package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/helpdeck/helpdeck/keys"
	"github.com/helpdeck/helpdeck/nav"
)

var (
	menuKeyStyle  = lipgloss.NewStyle().Foreground(ColorSubtle)
	menuDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	menuSepStyle  = lipgloss.NewStyle().Foreground(ColorOverlay)
)

const menuSeparator = " • "

// Menu is the one-line keybind rail at the bottom of the screen. Its options
// follow the active panel so the hints stay relevant.
type Menu struct {
	width   int
	options []keys.KeyName
}

var (
	listMenuOptions    = []keys.KeyName{keys.KeyEnter, keys.KeySearch, keys.KeyFilter, keys.KeyRefresh, keys.KeyHelp, keys.KeyQuit}
	chatMenuOptions    = []keys.KeyName{keys.KeyBack, keys.KeyPanelRight, keys.KeySnooze, keys.KeyClose, keys.KeyHelp, keys.KeyQuit}
	detailsMenuOptions = []keys.KeyName{keys.KeyBack, keys.KeyYank, keys.KeySnooze, keys.KeyClose, keys.KeyHelp, keys.KeyQuit}
)

// NewMenu creates the menu with the list panel's options.
func NewMenu() *Menu {
	return &Menu{options: listMenuOptions}
}

// SetWidth sets the render width.
func (m *Menu) SetWidth(width int) {
	m.width = width
}

// SetPanel switches the displayed options to the given panel's.
func (m *Menu) SetPanel(p nav.Panel) {
	switch p {
	case nav.PanelChat:
		m.options = chatMenuOptions
	case nav.PanelDetails:
		m.options = detailsMenuOptions
	default:
		m.options = listMenuOptions
	}
}

// View renders the keybind rail.
func (m *Menu) View() string {
	var parts []string
	for _, name := range m.options {
		binding, ok := keys.GlobalkeyBindings[name]
		if !ok {
			continue
		}
		help := binding.Help()
		parts = append(parts,
			menuKeyStyle.Render(help.Key)+" "+menuDescStyle.Render(help.Desc))
	}
	line := strings.Join(parts, menuSepStyle.Render(menuSeparator))
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(line)
}
