package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/helpdeck/helpdeck/config"
	"github.com/helpdeck/helpdeck/gesture"
	"github.com/helpdeck/helpdeck/haptic"
	"github.com/helpdeck/helpdeck/log"
	"github.com/helpdeck/helpdeck/nav"
	"github.com/helpdeck/helpdeck/store"
	"github.com/helpdeck/helpdeck/ui"
	"github.com/helpdeck/helpdeck/ui/overlay"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, st *store.Store) error {
	// Set the terminal's default background to the theme base color so every
	// ANSI reset and unstyled cell falls back to #232136 instead of black.
	restore := ui.SetTerminalBackground(string(ui.ColorBase))
	defer restore()

	zone.NewGlobal()
	p := tea.NewProgram(
		newHome(ctx, cfg, st),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Full mouse tracking for drag + scroll + click
		tea.WithReportFocus(),    // Blur cancels an in-flight drag
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateSearch is the state when the search overlay is capturing input.
	stateSearch
	// stateHelp is the state when the help screen is displayed.
	stateHelp
)

// statusFilters is the cycle order for the header filter action.
var statusFilters = []string{"", store.StatusOpen, store.StatusSnoozed, store.StatusClosed}

type home struct {
	ctx context.Context

	// -- Storage and configuration --

	appConfig *config.Config
	appState  *config.State
	store     *store.Store

	// refreshFn is the external refresh call the header action awaits.
	// Swappable in tests to exercise the failure path.
	refreshFn func() error

	// -- Navigation core --

	machine    *nav.Machine
	recognizer *gesture.Recognizer
	pulser     *haptic.Pulser

	// -- State --

	state       state
	filterIdx   int    // index into statusFilters
	searchQuery string // committed search text, empty = no filter
	unreadTotal int

	// selectedID is the conversation the chat/details panels show; empty
	// means no conversation is selected and only the list is reachable.
	selectedID string

	// -- UI components --

	spinner      spinner.Model
	header       *ui.Header
	menu         *ui.Menu
	list         *ui.ConversationList
	chat         *ui.ChatPane
	details      *ui.DetailsPane
	panelWindow  *ui.PanelWindow
	toastManager *overlay.ToastManager
	searchInput  *overlay.SearchOverlay

	termWidth, termHeight int
	contentHeight         int
	narrow                bool
}

func newHome(ctx context.Context, cfg *config.Config, st *store.Store) *home {
	h := &home{
		ctx:          ctx,
		appConfig:    cfg,
		appState:     config.LoadState(),
		store:        st,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		menu:         ui.NewMenu(),
		list:         ui.NewConversationList(),
		chat:         ui.NewChatPane(),
		details:      ui.NewDetailsPane(),
		toastManager: overlay.NewToastManager(),
	}
	h.header = ui.NewHeader(&h.spinner)
	h.pulser = haptic.New(cfg.Swipe.EnableHapticFeedback || cfg.Transition.HapticFeedback)
	h.refreshFn = h.pingStore

	if !h.appState.HelpScreenSeen {
		h.state = stateHelp
		h.appState.HelpScreenSeen = true
		if err := config.SaveState(h.appState); err != nil {
			log.WarningLog.Printf("failed to persist state: %v", err)
		}
	}

	machineOpts := []nav.Option{
		nav.WithTransitionDuration(time.Duration(cfg.Transition.DurationMs) * time.Millisecond),
	}
	if cfg.Transition.HapticFeedback {
		machineOpts = append(machineOpts, nav.WithFeedback(h.pulser.Pulse))
	}
	h.machine = nav.NewMachine(machineOpts...)
	h.recognizer = gesture.NewRecognizer(cfg.Swipe.Threshold, cfg.Swipe.MinVelocity)

	zIndex := make(map[nav.Panel]int, len(cfg.Panels))
	for name, pc := range cfg.Panels {
		zIndex[nav.Panel(name)] = pc.ZIndex
	}
	h.panelWindow = ui.NewPanelWindow(
		map[nav.Panel]ui.PanelContent{
			nav.PanelList:    h.list,
			nav.PanelChat:    h.chat,
			nav.PanelDetails: h.details,
		},
		zIndex,
		cfg.Transition.DragDamping,
		cfg.Swipe.Threshold,
	)
	return h
}

// pingStore is the default external refresh call: it verifies the data layer
// still answers before the reload happens.
func (m *home) pingStore() error {
	_, err := m.store.UnreadTotal()
	return err
}

// updateHandleWindowSizeEvent sets the sizes of the components. Below the
// configured breakpoint the three-pane layout collapses into the single-pane
// navigation engine.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.termWidth = msg.Width
	m.termHeight = msg.Height
	m.narrow = msg.Width < m.appConfig.Breakpoint

	headerHeight := 1
	menuHeight := 1
	m.contentHeight = msg.Height - headerHeight - menuHeight
	if m.contentHeight < 1 {
		m.contentHeight = 1
	}

	m.header.SetWidth(msg.Width)
	m.menu.SetWidth(msg.Width)
	m.toastManager.SetWidth(msg.Width)
	if m.searchInput != nil {
		m.searchInput.SetWidth(msg.Width)
	}

	if m.narrow {
		m.panelWindow.SetSize(msg.Width, m.contentHeight)
		return
	}

	// Wide three-column layout using the configured width fractions.
	listWidth := m.panelColumnWidth("list", msg.Width)
	detailsWidth := m.panelColumnWidth("details", msg.Width)
	chatWidth := msg.Width - listWidth - detailsWidth
	if chatWidth < 20 {
		chatWidth = 20
	}
	m.list.SetSize(listWidth, m.contentHeight)
	m.chat.SetSize(chatWidth, m.contentHeight)
	m.details.SetSize(detailsWidth, m.contentHeight)
}

func (m *home) panelColumnWidth(name string, total int) int {
	frac := m.appConfig.Panels[name].Width
	if frac <= 0 || frac >= 1 {
		frac = 0.28
	}
	w := int(float64(total) * frac)
	if w < 24 {
		w = 24
	}
	return w
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadConversationsCmd(),
		m.toastTickCmd(),
	)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		// Terminal focus lost mid-drag: the cancel analogue of touch-cancel.
		// State must never survive a gesture the user cannot finish.
		m.recognizer.Cancel()
		m.panelWindow.ClearDrag()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case transitionDoneMsg:
		m.machine.FinishTransition(msg.gen)
		return m, nil

	case animFrameMsg:
		m.panelWindow.Tick()
		if m.panelWindow.Animating() {
			return m, animFrameCmd()
		}
		return m, nil

	case conversationsLoadedMsg:
		return m.handleConversationsLoaded(msg)

	case transcriptLoadedMsg:
		return m.handleTranscriptLoaded(msg)

	case ui.RefreshDoneMsg:
		// Clear the in-flight spinner before looking at the error: the
		// spinner must never stick, whatever the refresh did.
		m.header.FinishRefresh()
		if msg.Err != nil {
			log.ErrorLog.Printf("refresh failed: %v", msg.Err)
			m.toastManager.Error("Refresh failed: " + msg.Err.Error())
			return m, nil
		}
		return m, m.loadConversationsCmd()

	case overlay.ToastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.Active() {
			return m, m.toastTickCmd()
		}
		return m, nil
	}

	return m, nil
}

func (m *home) View() string {
	var body string
	if m.narrow {
		body = m.panelWindow.View()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.list.View(), m.chat.View(), m.details.View())
	}
	body = lipgloss.NewStyle().
		Width(m.termWidth).
		Height(m.contentHeight).
		MaxHeight(m.contentHeight).
		Render(body)

	m.syncHeader()
	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(), body, m.menu.View())

	if m.state == stateSearch && m.searchInput != nil {
		screen = overlay.PlaceOverlay(2, 2, m.searchInput.View(), screen)
	}
	if m.state == stateHelp {
		screen = overlay.PlaceOverlay(m.termWidth/4, m.termHeight/3, m.helpView(), screen)
	}
	if m.toastManager.Active() {
		x, y := m.toastManager.Position()
		screen = overlay.PlaceOverlay(x, y, m.toastManager.View(), screen)
	}
	return zone.Scan(screen)
}

// syncHeader pushes the current navigation snapshot into the header. The
// header only ever reads this state; its back button calls navigateBack.
func (m *home) syncHeader() {
	title := "Inbox"
	if m.narrow {
		title = m.machine.ActivePanel().Title()
	}
	m.header.SetData(ui.HeaderData{
		Title:       title,
		Unread:      m.unreadTotal,
		CanBack:     m.machine.CanNavigateBack(),
		FilterLabel: statusFilters[m.filterIdx],
	})
	m.menu.SetPanel(m.machine.ActivePanel())
}

var helpStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ui.ColorIris).
	Padding(1, 2)

func (m *home) helpView() string {
	return helpStyle.Render(
		"helpdeck\n\n" +
			"↑/↓ or j/k   move selection\n" +
			"enter        open conversation\n" +
			"←/→ or h/l   switch panel (narrow)\n" +
			"esc          back\n" +
			"drag         swipe between panels\n" +
			"/            search   f filter   r refresh\n" +
			"s snooze   c close   y yank id\n\n" +
			"press any key to close")
}

func (m *home) toastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return overlay.ToastTickMsg{}
	})
}
