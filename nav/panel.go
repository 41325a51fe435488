package nav

// Panel identifies one of the three inbox panes.
type Panel string

const (
	PanelList    Panel = "list"
	PanelChat    Panel = "chat"
	PanelDetails Panel = "details"
)

// panelTitles maps each panel to its header title.
var panelTitles = map[Panel]string{
	PanelList:    "Conversations",
	PanelChat:    "Chat",
	PanelDetails: "Details",
}

// Title returns the header title for the panel. Unknown panels render as an
// empty title rather than panicking; they cannot become active anyway.
func (p Panel) Title() string {
	return panelTitles[p]
}

// PanelOrder returns the ordered sequence of reachable panels. The list panel
// is always first; chat and details are reachable only while a conversation
// is selected, and details never precedes chat.
func PanelOrder(hasSelectedConversation bool) []Panel {
	if hasSelectedConversation {
		return []Panel{PanelList, PanelChat, PanelDetails}
	}
	return []Panel{PanelList}
}

// indexOf returns the position of p in order, or -1 if p is unreachable.
func indexOf(order []Panel, p Panel) int {
	for i, candidate := range order {
		if candidate == p {
			return i
		}
	}
	return -1
}
