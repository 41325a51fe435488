package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyQuit
	KeyHelp

	KeyBack       // Key for navigating back through the panel history
	KeyPanelLeft  // Key for moving to the previous panel (keyboard swipe right)
	KeyPanelRight // Key for moving to the next panel (keyboard swipe left)

	KeySearch  // Key for activating the search overlay
	KeyFilter  // Key for cycling the status filter
	KeyRefresh // Key for refreshing the conversation list

	KeySnooze // Key for snoozing the selected conversation
	KeyClose  // Key for closing the selected conversation
	KeyYank   // Key for copying the conversation ID to the clipboard

	KeyTab // Tab cycles focus between panes in the wide layout.
)

// GlobalKeyStringsMap is a global, immutable map of key string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"enter":     KeyEnter,
	"o":         KeyEnter,
	"q":         KeyQuit,
	"?":         KeyHelp,
	"esc":       KeyBack,
	"backspace": KeyBack,
	"left":      KeyPanelLeft,
	"h":         KeyPanelLeft,
	"right":     KeyPanelRight,
	"l":         KeyPanelRight,
	"/":         KeySearch,
	"f":         KeyFilter,
	"r":         KeyRefresh,
	"s":         KeySnooze,
	"c":         KeyClose,
	"y":         KeyYank,
	"tab":       KeyTab,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("↵/o", "open"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyBack: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	KeyPanelLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous panel"),
	),
	KeyPanelRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next panel"),
	),
	KeySearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	KeyFilter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	KeySnooze: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "snooze"),
	),
	KeyClose: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "close"),
	),
	KeyYank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank id"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle panes"),
	),
}
