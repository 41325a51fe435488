package nav

import "time"

// Mode selects who owns the active panel. It is fixed at construction: a
// machine never switches between controlled and uncontrolled at runtime.
type Mode int

const (
	// ModeUncontrolled means the machine owns activePanel and history.
	ModeUncontrolled Mode = iota
	// ModeControlled means a parent owns panel state; the machine's mutators
	// delegate to the parent's callback and the machine only mirrors what the
	// parent reports back via SetExternalPanel.
	ModeControlled
)

// DefaultTransitionDuration is the settle time for a committed navigation.
const DefaultTransitionDuration = 300 * time.Millisecond

// Machine is the panel navigation state machine for one inbox view. It is not
// safe for concurrent use; bubbletea's single Update goroutine is the only
// expected caller.
type Machine struct {
	mode             Mode
	onExternalChange func(Panel)

	active        Panel
	order         []Panel
	history       []Panel
	transitioning bool

	// gen numbers transitions so a stale unlock (scheduled before a newer
	// navigation, or arriving after teardown) is ignored.
	gen int

	hasSelected bool
	duration    time.Duration

	// feedback is invoked once after every committed navigation, never
	// before. Nil disables it.
	feedback func()
}

// Option configures a Machine at construction.
type Option func(*Machine)

// WithTransitionDuration overrides DefaultTransitionDuration.
func WithTransitionDuration(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.duration = d
		}
	}
}

// WithFeedback registers a callback fired once after each committed
// navigation (haptic pulse, etc).
func WithFeedback(fn func()) Option {
	return func(m *Machine) { m.feedback = fn }
}

// WithExternalControl puts the machine in controlled mode: every NavigateTo
// and NavigateBack delegates to onChange instead of mutating local state.
func WithExternalControl(onChange func(Panel)) Option {
	return func(m *Machine) {
		m.mode = ModeControlled
		m.onExternalChange = onChange
	}
}

// NewMachine creates a machine starting on the list panel with no
// conversation selected.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		mode:     ModeUncontrolled,
		active:   PanelList,
		order:    PanelOrder(false),
		history:  []Panel{PanelList},
		duration: DefaultTransitionDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ActivePanel returns the currently visible panel.
func (m *Machine) ActivePanel() Panel { return m.active }

// Order returns the current reachable panel sequence. Callers must not
// mutate the returned slice.
func (m *Machine) Order() []Panel { return m.order }

// History returns the visit stack, oldest first. Callers must not mutate it.
func (m *Machine) History() []Panel { return m.history }

// Mode returns whether the machine is controlled or uncontrolled.
func (m *Machine) Mode() Mode { return m.mode }

// IsTransitioning reports whether a committed navigation is still settling.
// While true, new navigations and swipe commits are dropped, not queued.
func (m *Machine) IsTransitioning() bool { return m.transitioning }

// TransitionDuration returns how long the transition lock is held.
func (m *Machine) TransitionDuration() time.Duration { return m.duration }

// Generation returns the current transition generation. The owner passes it
// back to FinishTransition after the transition duration elapses.
func (m *Machine) Generation() int { return m.gen }

// CanNavigateBack reports whether a back affordance should be enabled.
// Controlled machines derive it from the mirrored history; uncontrolled
// machines from whether the active panel is the root of the order.
func (m *Machine) CanNavigateBack() bool {
	if m.mode == ModeControlled {
		return len(m.history) > 1
	}
	return m.active != m.order[0]
}

// NavigateTo moves to the given panel. A target outside the current order is
// silently dropped: it can legitimately race with a conversation being
// deselected mid-gesture, and dropping it always leaves the view on a valid
// panel. Navigating to the already-active panel is also a no-op. Returns true
// when a navigation was committed (or, in controlled mode, delegated).
func (m *Machine) NavigateTo(p Panel) bool {
	if indexOf(m.order, p) < 0 {
		return false
	}
	if m.mode == ModeControlled {
		// Fire-and-forget: the parent owns state and echoes the result back
		// through SetExternalPanel.
		if m.onExternalChange != nil {
			m.onExternalChange(p)
		}
		return true
	}
	if m.transitioning || p == m.active {
		return false
	}
	m.commit(p, true)
	return true
}

// NavigateBack pops the history stack and returns to the previous panel.
// A back navigation is a pop, not a push: the target is not re-appended.
// Entries that left the order since they were pushed are discarded, never
// committed: the active panel must stay inside the order. No-op when there is
// nothing reachable to go back to or a transition is settling.
func (m *Machine) NavigateBack() bool {
	if m.mode != ModeControlled && m.transitioning {
		return false
	}
	for len(m.history) > 1 {
		m.history = m.history[:len(m.history)-1]
		target := m.history[len(m.history)-1]
		if indexOf(m.order, target) < 0 {
			continue
		}
		if m.mode == ModeControlled {
			if m.onExternalChange != nil {
				m.onExternalChange(target)
			}
			return true
		}
		m.commit(target, false)
		return true
	}
	return false
}

// commit performs the shared mutation for every committed navigation:
// transition lock, active panel, optional history append, feedback pulse.
func (m *Machine) commit(p Panel, push bool) {
	m.transitioning = true
	m.gen++
	m.active = p
	if push && (len(m.history) == 0 || m.history[len(m.history)-1] != p) {
		m.history = append(m.history, p)
	}
	if m.feedback != nil {
		m.feedback()
	}
}

// FinishTransition releases the transition lock for the given generation.
// Stale generations are ignored so an unlock scheduled before a newer
// navigation (or before teardown) cannot clobber the current lock.
func (m *Machine) FinishTransition(gen int) {
	if gen != m.gen {
		return
	}
	m.transitioning = false
}

// SetExternalPanel mirrors the parent-owned panel into a controlled machine
// so titles, back affordance, and the renderer track it. Ignored in
// uncontrolled mode and for panels outside the current order.
func (m *Machine) SetExternalPanel(p Panel) {
	if m.mode != ModeControlled || indexOf(m.order, p) < 0 {
		return
	}
	m.active = p
	if len(m.history) == 0 || m.history[len(m.history)-1] != p {
		m.history = append(m.history, p)
	}
}

// SetConversationSelected recomputes the reachable panel order. Deselecting
// forces the view back to list and clears the history: chat and details
// entries pushed while a conversation was open must not survive as back
// targets once unreachable, even when the list was already active. Selecting
// while the list is active auto-advances to chat exactly once per false→true
// edge; repeated calls with the same value never re-trigger it. Returns true
// when the call committed a navigation (so the owner schedules the unlock).
func (m *Machine) SetConversationSelected(selected bool) bool {
	prev := m.hasSelected
	m.hasSelected = selected
	m.order = PanelOrder(selected)

	if !selected {
		m.active = PanelList
		m.history = []Panel{PanelList}
		return false
	}

	if !prev && m.active == PanelList {
		return m.NavigateTo(PanelChat)
	}
	return false
}
