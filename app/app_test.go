package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeck/helpdeck/config"
	"github.com/helpdeck/helpdeck/nav"
	"github.com/helpdeck/helpdeck/store"
	"github.com/helpdeck/helpdeck/ui"
)

func newTestHome(t *testing.T) *home {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	zone.NewGlobal()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.DefaultConfig()
	h := newHome(context.Background(), cfg, st)
	// Fresh state shows the help screen once; the tests start past it.
	h.state = stateDefault
	h.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

// selectForTest puts the home in the post-selection narrow state (chat
// active, transition settled) without going through async store commands.
func selectForTest(t *testing.T, h *home) {
	t.Helper()
	id, err := h.store.AddConversation("Ada", "ada@example.com", "Refund", store.StatusOpen, time.Now())
	require.NoError(t, err)
	h.selectedID = id
	require.True(t, h.machine.SetConversationSelected(true))
	h.machine.FinishTransition(h.machine.Generation())
	h.panelWindow.SetActive(h.machine.ActivePanel())
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func TestBreakpointSwitchesLayout(t *testing.T) {
	h := newTestHome(t)

	h.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, h.narrow)

	h.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: 160, Height: 40})
	assert.False(t, h.narrow)
}

func TestSwipeLeftCommitsToNextPanel(t *testing.T) {
	h := newTestHome(t)
	selectForTest(t, h)
	require.Equal(t, nav.PanelChat, h.machine.ActivePanel())

	// Drag well past the threshold: press, move, release.
	h.handleMouse(press(60, 10))
	require.True(t, h.recognizer.Swiping())
	h.handleMouse(motion(30, 10))
	_, cmd := h.handleMouse(release(10, 10))

	assert.Equal(t, nav.PanelDetails, h.machine.ActivePanel())
	assert.True(t, h.machine.IsTransitioning())
	assert.True(t, h.panelWindow.Animating())
	assert.NotNil(t, cmd)
	assert.False(t, h.recognizer.Swiping())
}

func TestSwipeRightAtRootIsDropped(t *testing.T) {
	h := newTestHome(t)
	// No selection: the order is just the list, nothing to the right.
	require.Equal(t, nav.PanelList, h.machine.ActivePanel())

	h.handleMouse(press(10, 10))
	h.handleMouse(motion(40, 10))
	_, cmd := h.handleMouse(release(60, 10))

	assert.Equal(t, nav.PanelList, h.machine.ActivePanel())
	assert.False(t, h.machine.IsTransitioning())
	assert.Nil(t, cmd)
}

func TestGestureIgnoredWhileTransitioning(t *testing.T) {
	h := newTestHome(t)
	selectForTest(t, h)

	// Start a transition and leave it unsettled.
	require.NotNil(t, h.navigateTo(nav.PanelDetails))
	require.True(t, h.machine.IsTransitioning())

	h.handleMouse(press(60, 10))
	assert.False(t, h.recognizer.Swiping())
}

func TestBlurCancelsDrag(t *testing.T) {
	h := newTestHome(t)
	selectForTest(t, h)

	h.handleMouse(press(60, 10))
	require.True(t, h.recognizer.Swiping())

	h.Update(tea.BlurMsg{})

	assert.False(t, h.recognizer.Swiping())
	// The release that follows the blur must not resurrect the gesture.
	_, cmd := h.handleMouse(release(10, 10))
	assert.Nil(t, cmd)
	assert.Equal(t, nav.PanelChat, h.machine.ActivePanel())
}

func TestEscNavigatesBack(t *testing.T) {
	h := newTestHome(t)
	selectForTest(t, h)
	require.Equal(t, nav.PanelChat, h.machine.ActivePanel())

	h.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, nav.PanelList, h.machine.ActivePanel())
}

func TestTransitionDoneUnlocksOnlyLatestGeneration(t *testing.T) {
	h := newTestHome(t)
	selectForTest(t, h)

	require.NotNil(t, h.navigateTo(nav.PanelDetails))
	stale := h.machine.Generation()
	h.machine.FinishTransition(stale)
	require.False(t, h.machine.IsTransitioning())

	// A new navigation bumps the generation; the old unlock is a no-op.
	require.NotNil(t, h.navigateBack())
	h.Update(transitionDoneMsg{gen: stale})
	assert.True(t, h.machine.IsTransitioning())

	h.Update(transitionDoneMsg{gen: h.machine.Generation()})
	assert.False(t, h.machine.IsTransitioning())
}

func TestRefreshFailureSurfacesToastAndClearsSpinner(t *testing.T) {
	h := newTestHome(t)
	h.refreshFn = func() error { return errors.New("store offline") }

	cmd := h.header.StartRefresh(h.refreshFn)
	require.NotNil(t, cmd)
	require.True(t, h.header.Refreshing())

	msg, ok := cmd().(ui.RefreshDoneMsg)
	require.True(t, ok)
	h.Update(msg)

	assert.False(t, h.header.Refreshing())
	assert.True(t, h.toastManager.Active())
}

func TestRefreshSuccessReloadsConversations(t *testing.T) {
	h := newTestHome(t)

	cmd := h.header.StartRefresh(h.refreshFn)
	require.NotNil(t, cmd)

	_, reload := h.Update(cmd().(ui.RefreshDoneMsg))
	assert.False(t, h.header.Refreshing())
	assert.NotNil(t, reload)
}

func TestFilterKeyCyclesStatuses(t *testing.T) {
	h := newTestHome(t)
	require.Equal(t, 0, h.filterIdx)

	for i := 1; i <= len(statusFilters); i++ {
		h.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
		assert.Equal(t, i%len(statusFilters), h.filterIdx)
	}
}

func TestSearchOverlayCommitsQuery(t *testing.T) {
	h := newTestHome(t)

	h.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.Equal(t, stateSearch, h.state)

	h.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	h.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stateDefault, h.state)
	assert.Equal(t, "r", h.searchQuery)
}

func TestSearchOverlayEscClearsQuery(t *testing.T) {
	h := newTestHome(t)
	h.searchQuery = "old"

	h.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	h.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, stateDefault, h.state)
	assert.Empty(t, h.searchQuery)
}

func TestDeselectForcesListAndClearsPanes(t *testing.T) {
	h := newTestHome(t)
	selectForTest(t, h)
	require.NotNil(t, h.navigateTo(nav.PanelDetails))

	h.deselectConversation()

	assert.Equal(t, nav.PanelList, h.machine.ActivePanel())
	assert.Equal(t, nav.PanelList, h.panelWindow.Active())
	assert.Empty(t, h.selectedID)
	assert.False(t, h.machine.CanNavigateBack())
}

func TestConversationsLoadedDropsVanishedSelection(t *testing.T) {
	h := newTestHome(t)
	selectForTest(t, h)

	// Simulate the selected conversation disappearing from the store.
	require.NoError(t, h.store.SetStatus(h.selectedID, store.StatusClosed))
	vanished := h.selectedID
	h.selectedID = "no-such-id"

	h.handleConversationsLoaded(conversationsLoadedMsg{})
	assert.Empty(t, h.selectedID)
	assert.Equal(t, nav.PanelList, h.machine.ActivePanel())

	// A selection that still resolves survives a reload.
	h.selectedID = vanished
	h.machine.SetConversationSelected(true)
	h.handleConversationsLoaded(conversationsLoadedMsg{})
	assert.Equal(t, vanished, h.selectedID)
}
