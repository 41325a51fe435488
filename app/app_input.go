package app

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/helpdeck/helpdeck/gesture"
	"github.com/helpdeck/helpdeck/keys"
	"github.com/helpdeck/helpdeck/log"
	"github.com/helpdeck/helpdeck/nav"
	"github.com/helpdeck/helpdeck/store"
	"github.com/helpdeck/helpdeck/ui"
	"github.com/helpdeck/helpdeck/ui/overlay"
)

func (m *home) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateHelp {
		m.state = stateDefault
		return m, nil
	}
	if m.state == stateSearch {
		return m.handleSearchKey(msg)
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyQuit:
		return m, tea.Quit

	case keys.KeyHelp:
		m.state = stateHelp
		return m, nil

	case keys.KeyUp:
		if m.listHasFocus() {
			m.list.Up()
		} else {
			m.chat.ScrollUp()
		}
		return m, nil

	case keys.KeyDown:
		if m.listHasFocus() {
			m.list.Down()
		} else {
			m.chat.ScrollDown()
		}
		return m, nil

	case keys.KeyEnter:
		if selected := m.list.Selected(); selected != nil && m.listHasFocus() {
			return m, m.selectConversation(selected.ID)
		}
		return m, nil

	case keys.KeyBack:
		return m, m.navigateBack()

	case keys.KeyPanelLeft:
		if target, ok := m.adjacentPanel(-1); ok {
			return m, m.navigateTo(target)
		}
		return m, nil

	case keys.KeyPanelRight:
		if target, ok := m.adjacentPanel(1); ok {
			return m, m.navigateTo(target)
		}
		return m, nil

	case keys.KeySearch:
		m.openSearch()
		return m, nil

	case keys.KeyFilter:
		m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
		return m, m.loadConversationsCmd()

	case keys.KeyRefresh:
		return m, m.header.StartRefresh(m.refreshFn)

	case keys.KeySnooze:
		return m, m.setConversationStatus(store.StatusSnoozed, "Snoozed")

	case keys.KeyClose:
		cmd := m.setConversationStatus(store.StatusClosed, "Closed")
		if cmd != nil {
			// Closing unassigns the conversation from the inbox view.
			m.deselectConversation()
		}
		return m, cmd

	case keys.KeyYank:
		m.yankConversationID()
		return m, nil

	case keys.KeyTab:
		order := m.machine.Order()
		next := (indexIn(order, m.machine.ActivePanel()) + 1) % len(order)
		return m, m.navigateTo(order[next])
	}

	return m, nil
}

// listHasFocus reports whether list-movement keys should go to the list. In
// the wide layout the list always has them; narrow only when it is mounted.
func (m *home) listHasFocus() bool {
	return !m.narrow || m.machine.ActivePanel() == nav.PanelList
}

func (m *home) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchQuery = m.searchInput.Value()
		m.state = stateDefault
		return m, m.loadConversationsCmd()
	case "esc":
		m.state = stateDefault
		m.searchQuery = ""
		return m, m.loadConversationsCmd()
	}
	return m, m.searchInput.Update(msg)
}

func (m *home) openSearch() {
	m.searchInput = overlay.NewSearchOverlay()
	m.searchInput.SetWidth(m.termWidth)
	m.state = stateSearch
}

func (m *home) setConversationStatus(status, verb string) tea.Cmd {
	selected := m.list.Selected()
	if selected == nil {
		return nil
	}
	if err := m.store.SetStatus(selected.ID, status); err != nil {
		log.ErrorLog.Printf("failed to set status: %v", err)
		m.toastManager.Error("Could not update conversation")
		return nil
	}
	m.toastManager.Success(verb + " " + selected.CustomerName)
	return m.loadConversationsCmd()
}

func (m *home) yankConversationID() {
	selected := m.list.Selected()
	if selected == nil {
		return
	}
	if err := clipboard.WriteAll(selected.ID); err != nil {
		log.WarningLog.Printf("clipboard write failed: %v", err)
		m.toastManager.Error("Clipboard unavailable")
		return
	}
	m.toastManager.Info("Copied conversation id")
}

// handleMouse processes mouse events: header clicks, list row clicks, wheel
// scrolling, and (in the narrow layout) the press/motion/release drag
// sequence that feeds the swipe recognizer.
func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != stateDefault {
		return m, nil
	}

	// Wheel always scrolls content, never navigates.
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if msg.Action == tea.MouseActionPress && m.chatVisible() {
			if msg.Button == tea.MouseButtonWheelUp {
				m.chat.ScrollUp()
			} else {
				m.chat.ScrollDown()
			}
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if cmd, handled := m.handleLeftClick(msg); handled {
			return m, cmd
		}
		// Not an affordance: begin a drag in the narrow layout. The
		// transition lock suppresses new gestures while a slide settles.
		if m.narrow {
			locked := m.machine.IsTransitioning() || !m.panelWindow.Interactive()
			m.recognizer.Begin(msg.X, msg.Y, locked)
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.recognizer.Swiping() {
			return m, nil
		}
		locked := m.machine.IsTransitioning() || !m.panelWindow.Interactive()
		m.recognizer.Move(msg.X, msg.Y, locked)
		m.updateDragFeedback()
		return m, nil

	case tea.MouseActionRelease:
		if !m.recognizer.Swiping() {
			return m, nil
		}
		return m, m.finishSwipe(msg.X, msg.Y)
	}

	return m, nil
}

// handleLeftClick dispatches clicks on marked zones. Returns handled=false
// for presses that should start a drag instead.
func (m *home) handleLeftClick(msg tea.MouseMsg) (tea.Cmd, bool) {
	if zone.Get(ui.ZoneHeaderBack).InBounds(msg) {
		return m.navigateBack(), true
	}
	if zone.Get(ui.ZoneHeaderSearch).InBounds(msg) {
		m.openSearch()
		return nil, true
	}
	if zone.Get(ui.ZoneHeaderFilter).InBounds(msg) {
		m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
		return m.loadConversationsCmd(), true
	}
	if zone.Get(ui.ZoneHeaderRefresh).InBounds(msg) {
		return m.header.StartRefresh(m.refreshFn), true
	}

	if m.listVisible() {
		for i := range m.list.Items() {
			if zone.Get(ui.ConversationRowZoneID(i)).InBounds(msg) {
				m.list.SelectIndex(i)
				return m.selectConversation(m.list.Items()[i].ID), true
			}
		}
	}
	return nil, false
}

// updateDragFeedback pushes live swipe displacement into the renderer,
// along with the panel a commit would land on.
func (m *home) updateDragFeedback() {
	st := m.recognizer.State()
	if !st.Swiping {
		return
	}
	step := 0
	switch st.Direction {
	case gesture.DirLeft:
		step = 1
	case gesture.DirRight:
		step = -1
	}
	if step == 0 {
		m.panelWindow.SetDrag(st.DeltaX, "", false)
		return
	}
	pending, ok := m.adjacentPanel(step)
	m.panelWindow.SetDrag(st.DeltaX, pending, ok)
}

// finishSwipe ends the gesture and commits the navigation when the decision
// says so. The visual drag offset is discarded on every outcome.
func (m *home) finishSwipe(x, y int) tea.Cmd {
	decision := m.recognizer.End(x, y)
	m.panelWindow.ClearDrag()

	if !decision.Commit {
		return nil
	}
	step := 1
	if decision.Direction == gesture.DirRight {
		step = -1
	}
	target, ok := m.adjacentPanel(step)
	if !ok {
		// Edge of the order: no wraparound, the commit is dropped.
		return nil
	}
	cmd := m.navigateTo(target)
	if cmd != nil && m.appConfig.Swipe.EnableHapticFeedback && !m.appConfig.Transition.HapticFeedback {
		// Transition haptics are off, so the machine did not pulse; swipe
		// haptics still confirm the commit, after the mutator ran.
		m.pulser.Pulse()
	}
	return cmd
}

func (m *home) listVisible() bool {
	return !m.narrow || m.machine.ActivePanel() == nav.PanelList
}

func (m *home) chatVisible() bool {
	return !m.narrow || m.machine.ActivePanel() == nav.PanelChat
}
