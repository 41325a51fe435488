package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelOrder(t *testing.T) {
	cases := []struct {
		name     string
		selected bool
		want     []Panel
	}{
		{"no conversation", false, []Panel{PanelList}},
		{"conversation selected", true, []Panel{PanelList, PanelChat, PanelDetails}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PanelOrder(tc.selected)
			assert.Equal(t, tc.want, got)
			// The list panel anchors the order, and details implies chat.
			assert.Equal(t, PanelList, got[0])
			if indexOf(got, PanelDetails) >= 0 {
				assert.Less(t, indexOf(got, PanelChat), indexOf(got, PanelDetails))
			}
		})
	}
}

func TestPanelTitles(t *testing.T) {
	assert.Equal(t, "Conversations", PanelList.Title())
	assert.Equal(t, "Chat", PanelChat.Title())
	assert.Equal(t, "Details", PanelDetails.Title())
}

// finish releases the pending transition lock, standing in for the timer the
// app schedules from TransitionDuration.
func finish(m *Machine) {
	m.FinishTransition(m.Generation())
}

func TestNavigateTo_UnreachablePanelIsDropped(t *testing.T) {
	m := NewMachine()
	// No conversation selected: chat is not in the order.
	assert.False(t, m.NavigateTo(PanelChat))
	assert.Equal(t, PanelList, m.ActivePanel())
	assert.False(t, m.IsTransitioning())
	assert.Equal(t, []Panel{PanelList}, m.History())
}

func TestNavigateTo_CommitsAndLocks(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true) // auto-advances to chat
	finish(m)

	require.True(t, m.NavigateTo(PanelDetails))
	assert.Equal(t, PanelDetails, m.ActivePanel())
	assert.True(t, m.IsTransitioning())
	assert.Equal(t, []Panel{PanelList, PanelChat, PanelDetails}, m.History())
}

func TestNavigateTo_DroppedWhileTransitioning(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true)
	finish(m)

	require.True(t, m.NavigateTo(PanelDetails))
	// Lock still held: a burst of rapid commits must not multi-step.
	assert.False(t, m.NavigateTo(PanelChat))
	assert.Equal(t, PanelDetails, m.ActivePanel())

	finish(m)
	assert.True(t, m.NavigateTo(PanelChat))
}

func TestNavigateTo_ActivePanelDoesNotDuplicateHistory(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true)
	finish(m)

	require.Equal(t, []Panel{PanelList, PanelChat}, m.History())
	m.NavigateTo(PanelChat)
	assert.Equal(t, []Panel{PanelList, PanelChat}, m.History())
}

func TestNavigateBack_IsLIFO(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true)
	finish(m)
	require.True(t, m.NavigateTo(PanelDetails))
	finish(m)
	require.Equal(t, []Panel{PanelList, PanelChat, PanelDetails}, m.History())

	require.True(t, m.NavigateBack())
	assert.Equal(t, PanelChat, m.ActivePanel())
	finish(m)

	require.True(t, m.NavigateBack())
	assert.Equal(t, PanelList, m.ActivePanel())
	finish(m)

	// Stack exhausted: third back is a no-op.
	assert.False(t, m.NavigateBack())
	assert.Equal(t, PanelList, m.ActivePanel())
	assert.Equal(t, []Panel{PanelList}, m.History())
}

func TestNavigateBack_PopsWithoutRepush(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true)
	finish(m)
	m.NavigateTo(PanelDetails)
	finish(m)

	m.NavigateBack()
	// A back navigation is a pop, not a push.
	assert.Equal(t, []Panel{PanelList, PanelChat}, m.History())
}

func TestCanNavigateBack_Uncontrolled(t *testing.T) {
	m := NewMachine()
	assert.False(t, m.CanNavigateBack())

	m.SetConversationSelected(true)
	finish(m)
	// Active panel is chat, not the order root.
	assert.True(t, m.CanNavigateBack())

	m.NavigateBack()
	finish(m)
	assert.False(t, m.CanNavigateBack())
}

func TestAutoAdvance_FiresOncePerEdge(t *testing.T) {
	m := NewMachine()

	assert.True(t, m.SetConversationSelected(true))
	assert.Equal(t, PanelChat, m.ActivePanel())
	finish(m)

	// Re-renders while the condition holds must not re-trigger.
	assert.False(t, m.SetConversationSelected(true))
	assert.False(t, m.SetConversationSelected(true))
	assert.Equal(t, []Panel{PanelList, PanelChat}, m.History())

	// A fresh edge after deselecting fires again.
	m.SetConversationSelected(false)
	assert.True(t, m.SetConversationSelected(true))
}

func TestAutoAdvance_OnlyFromList(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true)
	finish(m)
	m.NavigateTo(PanelDetails)
	finish(m)

	m.SetConversationSelected(false)
	// Deselect forced us home; select again from details would be impossible,
	// but select while on list still advances.
	assert.Equal(t, PanelList, m.ActivePanel())
	assert.True(t, m.SetConversationSelected(true))
	assert.Equal(t, PanelChat, m.ActivePanel())
}

func TestDeselect_ForcesActiveBackToList(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true)
	finish(m)
	m.NavigateTo(PanelDetails)
	finish(m)
	require.Equal(t, PanelDetails, m.ActivePanel())

	m.SetConversationSelected(false)
	assert.Equal(t, PanelList, m.ActivePanel())
	assert.Equal(t, []Panel{PanelList}, m.Order())
	assert.Equal(t, []Panel{PanelList}, m.History())
	assert.False(t, m.CanNavigateBack())
}

func TestDeselect_DropsStaleHistory(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true) // auto-advance, history [list chat]
	finish(m)
	require.True(t, m.NavigateTo(PanelList)) // forward nav home pushes list
	finish(m)

	// Deselecting while already on list must still clear the chat entry:
	// it is no longer a valid back target.
	m.SetConversationSelected(false)
	require.Equal(t, []Panel{PanelList}, m.History())
	require.False(t, m.CanNavigateBack())

	assert.False(t, m.NavigateBack())
	assert.Equal(t, PanelList, m.ActivePanel())
	assert.GreaterOrEqual(t, indexOf(m.Order(), m.ActivePanel()), 0)
}

func TestActivePanelAlwaysInOrder(t *testing.T) {
	// Invariant check across a scripted session.
	m := NewMachine()
	script := []func(){
		func() { m.SetConversationSelected(true) },
		func() { finish(m) },
		func() { m.NavigateTo(PanelDetails) },
		func() { finish(m) },
		func() { m.NavigateBack() },
		func() { m.SetConversationSelected(false) },
		func() { m.SetConversationSelected(true) },
		func() { finish(m) },
		func() { m.NavigateTo(PanelList) },
		func() { finish(m) },
		func() { m.SetConversationSelected(false) },
		func() { m.NavigateBack() },
		func() { m.NavigateBack() },
	}
	for i, step := range script {
		step()
		assert.GreaterOrEqual(t, indexOf(m.Order(), m.ActivePanel()), 0,
			"active panel left the reachable order at step %d", i)
	}
}

func TestFinishTransition_StaleGenerationIgnored(t *testing.T) {
	m := NewMachine()
	m.SetConversationSelected(true)
	stale := m.Generation()
	finish(m)

	m.NavigateTo(PanelDetails)
	// The unlock scheduled for the earlier navigation fires late; it must not
	// release the lock held for the current one.
	m.FinishTransition(stale)
	assert.True(t, m.IsTransitioning())

	finish(m)
	assert.False(t, m.IsTransitioning())
}

func TestFeedback_FiresOncePerCommit(t *testing.T) {
	pulses := 0
	m := NewMachine(WithFeedback(func() { pulses++ }))

	m.SetConversationSelected(true)
	assert.Equal(t, 1, pulses)
	finish(m)

	m.NavigateTo(PanelDetails)
	assert.Equal(t, 2, pulses)
	finish(m)

	// Dropped navigations never pulse.
	m.NavigateTo(Panel("bogus"))
	m.NavigateTo(PanelDetails)
	assert.Equal(t, 2, pulses)
}

func TestControlledMode_DelegatesWithoutMutating(t *testing.T) {
	var delegated []Panel
	m := NewMachine(WithExternalControl(func(p Panel) { delegated = append(delegated, p) }))
	m.SetConversationSelected(true)
	// Auto-advance delegates rather than mutating local state.
	require.Equal(t, []Panel{PanelChat}, delegated)
	assert.Equal(t, PanelList, m.ActivePanel())
	assert.False(t, m.IsTransitioning())

	m.NavigateTo(PanelDetails)
	assert.Equal(t, []Panel{PanelChat, PanelDetails}, delegated)
	assert.Equal(t, PanelList, m.ActivePanel(), "controlled machine must not touch activePanel")
}

func TestControlledMode_MirrorsExternalPanel(t *testing.T) {
	m := NewMachine(WithExternalControl(func(Panel) {}))
	m.SetConversationSelected(true)

	m.SetExternalPanel(PanelChat)
	assert.Equal(t, PanelChat, m.ActivePanel())
	assert.True(t, m.CanNavigateBack())

	// Mirroring the same panel twice does not duplicate history.
	m.SetExternalPanel(PanelChat)
	assert.Equal(t, []Panel{PanelList, PanelChat}, m.History())
}

func TestControlledMode_BackDelegatesPredecessor(t *testing.T) {
	var delegated []Panel
	m := NewMachine(WithExternalControl(func(p Panel) { delegated = append(delegated, p) }))
	m.SetConversationSelected(true)
	delegated = nil
	m.SetExternalPanel(PanelChat)
	m.SetExternalPanel(PanelDetails)

	require.True(t, m.NavigateBack())
	assert.Equal(t, []Panel{PanelChat}, delegated)

	m.SetExternalPanel(PanelChat)
	// Pop already consumed the details entry; the mirror call must not
	// re-grow the stack past chat.
	assert.Equal(t, []Panel{PanelList, PanelChat}, m.History())
}
