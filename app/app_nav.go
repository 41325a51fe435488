package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helpdeck/helpdeck/config"
	"github.com/helpdeck/helpdeck/log"
	"github.com/helpdeck/helpdeck/nav"
	"github.com/helpdeck/helpdeck/store"
	"github.com/helpdeck/helpdeck/ui"
)

// transitionDoneMsg releases the navigation transition lock. The generation
// makes a stale tick harmless: the machine ignores any but the latest.
type transitionDoneMsg struct {
	gen int
}

// animFrameMsg drives the panel slide spring.
type animFrameMsg struct{}

// conversationsLoadedMsg carries a fresh snapshot of the inbox list.
type conversationsLoadedMsg struct {
	conversations []store.Conversation
	unreadTotal   int
	err           error
}

// transcriptLoadedMsg carries the transcript for the selected conversation.
type transcriptLoadedMsg struct {
	conversation store.Conversation
	messages     []store.Message
	err          error
}

func animFrameCmd() tea.Cmd {
	return tea.Tick(time.Second/ui.AnimFPS, func(time.Time) tea.Msg {
		return animFrameMsg{}
	})
}

// transitionDoneCmd schedules the unlock for the machine's current
// transition. The generation is captured now, so if a newer navigation
// starts before this fires, the unlock is ignored.
func (m *home) transitionDoneCmd() tea.Cmd {
	gen := m.machine.Generation()
	return tea.Tick(m.machine.TransitionDuration(), func(time.Time) tea.Msg {
		return transitionDoneMsg{gen: gen}
	})
}

// navigateTo is the single programmatic navigation entry point: it runs the
// machine mutator and, on commit, starts the slide animation and schedules
// the unlock. Invalid or locked requests fall through silently.
func (m *home) navigateTo(target nav.Panel) tea.Cmd {
	fromIdx := indexIn(m.machine.Order(), m.machine.ActivePanel())
	if !m.machine.NavigateTo(target) {
		return nil
	}
	return m.afterNavigation(fromIdx)
}

// navigateBack is the single back entry point shared by the header button,
// the esc key, and rightward swipes at the order root.
func (m *home) navigateBack() tea.Cmd {
	fromIdx := indexIn(m.machine.Order(), m.machine.ActivePanel())
	if !m.machine.NavigateBack() {
		return nil
	}
	return m.afterNavigation(fromIdx)
}

func (m *home) afterNavigation(fromIdx int) tea.Cmd {
	target := m.machine.ActivePanel()
	forward := indexIn(m.machine.Order(), target) > fromIdx
	m.panelWindow.SlideTo(target, forward)

	cmds := []tea.Cmd{m.transitionDoneCmd(), animFrameCmd()}
	if target == nav.PanelChat && m.selectedID != "" {
		// Opening the chat marks the conversation read.
		cmds = append(cmds, m.openTranscriptCmd(m.selectedID, true))
	}
	return tea.Batch(cmds...)
}

// adjacentPanel returns the panel one step from the active one, or false at
// the edge of the order (no wraparound).
func (m *home) adjacentPanel(step int) (nav.Panel, bool) {
	order := m.machine.Order()
	idx := indexIn(order, m.machine.ActivePanel()) + step
	if idx < 0 || idx >= len(order) {
		return "", false
	}
	return order[idx], true
}

// selectConversation makes the conversation the active one and lets the
// machine auto-advance to chat on the selection edge.
func (m *home) selectConversation(id string) tea.Cmd {
	wasSelected := m.selectedID != ""
	m.selectedID = id
	m.appState.LastConversationID = id
	if err := config.SaveState(m.appState); err != nil {
		log.WarningLog.Printf("failed to persist state: %v", err)
	}

	fromIdx := indexIn(m.machine.Order(), m.machine.ActivePanel())
	advanced := m.machine.SetConversationSelected(true)

	cmds := []tea.Cmd{m.openTranscriptCmd(id, false)}
	if advanced {
		cmds = append(cmds, m.afterNavigation(fromIdx))
	} else if wasSelected {
		// Selection changed while already in chat/details: just reload.
		cmds = append(cmds, m.openTranscriptCmd(id, m.machine.ActivePanel() == nav.PanelChat))
	}
	return tea.Batch(cmds...)
}

// deselectConversation drops the selection; the machine truncates the order
// and forces the view home if chat or details was active.
func (m *home) deselectConversation() {
	m.selectedID = ""
	m.machine.SetConversationSelected(false)
	m.panelWindow.SetActive(m.machine.ActivePanel())
	m.chat.SetConversation(nil, nil)
	m.details.SetConversation(nil, 0)
}

func (m *home) loadConversationsCmd() tea.Cmd {
	st := m.store
	status := statusFilters[m.filterIdx]
	search := m.searchQuery
	return func() tea.Msg {
		list, err := st.ListConversations(status, search)
		if err != nil {
			return conversationsLoadedMsg{err: err}
		}
		unread, err := st.UnreadTotal()
		if err != nil {
			return conversationsLoadedMsg{err: err}
		}
		return conversationsLoadedMsg{conversations: list, unreadTotal: unread}
	}
}

func (m *home) openTranscriptCmd(id string, markRead bool) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if markRead {
			if err := st.MarkRead(id); err != nil {
				return transcriptLoadedMsg{err: err}
			}
		}
		conv, err := st.Get(id)
		if err != nil {
			return transcriptLoadedMsg{err: err}
		}
		msgs, err := st.Messages(id)
		if err != nil {
			return transcriptLoadedMsg{err: err}
		}
		return transcriptLoadedMsg{conversation: conv, messages: msgs}
	}
}

func (m *home) handleConversationsLoaded(msg conversationsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorLog.Printf("failed to load conversations: %v", msg.err)
		m.toastManager.Error("Could not load conversations")
		return m, nil
	}
	m.list.SetItems(msg.conversations)
	m.unreadTotal = msg.unreadTotal

	// First load: point the cursor at the conversation that was open last
	// session. Selection only, no navigation.
	if m.selectedID == "" && m.appState.LastConversationID != "" {
		for i, c := range msg.conversations {
			if c.ID == m.appState.LastConversationID {
				m.list.SelectIndex(i)
				break
			}
		}
		m.appState.LastConversationID = ""
	}

	// The selected conversation may have vanished (closed elsewhere,
	// filtered out of existence in the store). Deselect so chat/details
	// cannot show a dangling conversation.
	if m.selectedID != "" {
		if _, err := m.store.Get(m.selectedID); err != nil {
			m.deselectConversation()
		}
	}
	return m, nil
}

func (m *home) handleTranscriptLoaded(msg transcriptLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorLog.Printf("failed to load transcript: %v", msg.err)
		m.toastManager.Error("Could not load conversation")
		return m, nil
	}
	conv := msg.conversation
	m.chat.SetConversation(&conv, msg.messages)
	m.details.SetConversation(&conv, len(msg.messages))
	// Reading the chat clears unread counts; refresh the list badge.
	return m, m.loadConversationsCmd()
}

// indexIn returns the position of p in order, or -1.
func indexIn(order []nav.Panel, p nav.Panel) int {
	for i, candidate := range order {
		if candidate == p {
			return i
		}
	}
	return -1
}
