package ui

import (
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/helpdeck/helpdeck/nav"
)

// AnimFPS drives the slide spring; the app sends a frame tick at this rate
// while Animating is true.
const AnimFPS = 60

var indicatorStyle = lipgloss.NewStyle().
	Foreground(ColorBase).
	Background(ColorIris).
	Padding(0, 1).
	Bold(true)

// PanelContent renders one panel's body. The content itself is an external
// collaborator; the window only positions it.
type PanelContent interface {
	SetSize(width, height int)
	View() string
}

// PanelWindow mounts exactly one panel at a time in single-pane mode and
// renders the directional slide for committed navigations plus the damped
// live shift for in-progress drags. All movement here is cosmetic: the
// window never changes the active panel itself.
type PanelWindow struct {
	width, height int

	panels map[nav.Panel]PanelContent
	zIndex map[nav.Panel]int
	active nav.Panel

	damping   float64
	threshold int

	// Live drag feedback. dragDX is the raw pointer delta; the rendered
	// shift is damping × dragDX. pending is the panel a commit would land
	// on, shown as an indicator once the threshold is crossed.
	dragging   bool
	dragDX     int
	pending    nav.Panel
	hasPending bool

	// Committed slide animation state.
	spring    harmonica.Spring
	offset    float64
	velocity  float64
	animating bool
}

// NewPanelWindow creates the single-pane renderer. zIndex controls what the
// displaced panel reveals during a drag: a pending panel stacked below the
// active one shows through the gap, one stacked above is previewed by the
// indicator only.
func NewPanelWindow(panels map[nav.Panel]PanelContent, zIndex map[nav.Panel]int, damping float64, threshold int) *PanelWindow {
	if damping <= 0 || damping > 1 {
		damping = 0.3
	}
	return &PanelWindow{
		panels:    panels,
		zIndex:    zIndex,
		active:    nav.PanelList,
		damping:   damping,
		threshold: threshold,
		spring:    harmonica.NewSpring(harmonica.FPS(AnimFPS), 9.0, 1.0),
	}
}

// SetSize sets the window dimensions and propagates them to every panel.
func (w *PanelWindow) SetSize(width, height int) {
	w.width = width
	w.height = height
	for _, p := range w.panels {
		p.SetSize(width, height)
	}
}

// SetActive switches the mounted panel without animation (wide layout,
// forced resets).
func (w *PanelWindow) SetActive(p nav.Panel) {
	w.active = p
}

// Active returns the mounted panel.
func (w *PanelWindow) Active() nav.Panel { return w.active }

// SetDrag feeds live swipe displacement for render feedback. pending is the
// panel the drag would commit to; hasPending is false at the edges of the
// order (no wraparound, so nothing to preview).
func (w *PanelWindow) SetDrag(deltaX int, pending nav.Panel, hasPending bool) {
	w.dragging = true
	w.dragDX = deltaX
	w.pending = pending
	w.hasPending = hasPending
}

// ClearDrag discards drag feedback. Called on both commit and cancel: the
// translation is cosmetic and never survives the gesture.
func (w *PanelWindow) ClearDrag() {
	w.dragging = false
	w.dragDX = 0
	w.hasPending = false
}

// SlideTo mounts the target panel and starts the directional slide.
// forward means moving deeper into the order (panel arrives from the right).
func (w *PanelWindow) SlideTo(p nav.Panel, forward bool) {
	w.ClearDrag()
	w.active = p
	if w.width > 0 {
		if forward {
			w.offset = float64(w.width)
		} else {
			w.offset = float64(-w.width)
		}
		w.velocity = 0
		w.animating = true
	}
}

// Animating reports whether the slide spring is still settling.
func (w *PanelWindow) Animating() bool { return w.animating }

// Interactive reports whether the window accepts pointer input. False while
// a slide is settling so a click cannot double-commit mid-animation.
func (w *PanelWindow) Interactive() bool { return !w.animating }

// Tick advances the slide spring one frame.
func (w *PanelWindow) Tick() {
	if !w.animating {
		return
	}
	w.offset, w.velocity = w.spring.Update(w.offset, w.velocity, 0)
	if w.offset < 1 && w.offset > -1 && w.velocity < 1 && w.velocity > -1 {
		w.offset = 0
		w.velocity = 0
		w.animating = false
	}
}

// View renders the mounted panel with any slide or drag displacement.
func (w *PanelWindow) View() string {
	if w.width <= 0 || w.height <= 0 {
		return ""
	}
	content, ok := w.panels[w.active]
	if !ok {
		return strings.Repeat("\n", w.height-1)
	}

	shift := int(w.offset)
	if w.dragging {
		shift = int(float64(w.dragDX) * w.damping)
	}

	body := w.composeShift(content.View(), shift)
	if w.dragging && w.hasPending && absInt(w.dragDX) > w.threshold {
		body = w.overlayIndicator(body)
	}
	return body
}

// composeShift displaces the panel body horizontally by shift columns.
// The revealed gap shows the pending panel when it is stacked below the
// active one, otherwise blank backdrop.
func (w *PanelWindow) composeShift(body string, shift int) string {
	if shift == 0 {
		return body
	}
	if shift > w.width {
		shift = w.width
	}
	if shift < -w.width {
		shift = -w.width
	}

	var under []string
	if w.dragging && w.hasPending && w.zIndex[w.pending] < w.zIndex[w.active] {
		if p, ok := w.panels[w.pending]; ok {
			under = strings.Split(p.View(), "\n")
		}
	}

	lines := strings.Split(body, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = shiftLine(line, shift, w.width, underLine(under, i))
	}
	return strings.Join(out, "\n")
}

// underLine returns the i-th revealed line, or "" past the end.
func underLine(under []string, i int) string {
	if i < len(under) {
		return under[i]
	}
	return ""
}

// shiftLine moves one rendered line horizontally, filling the gap from the
// revealed line (or spaces) and clipping to width. ANSI-aware via x/ansi.
func shiftLine(line string, shift, width int, revealed string) string {
	if shift > 0 {
		gap := ansi.Truncate(revealed, shift, "")
		gap += strings.Repeat(" ", shift-ansi.StringWidth(gap))
		return gap + ansi.Truncate(line, width-shift, "")
	}
	// Negative shift: clip the leading columns off the line.
	return ansi.Cut(line, -shift, width)
}

// overlayIndicator replaces the top line with a centered chip naming the
// panel a commit would land on.
func (w *PanelWindow) overlayIndicator(body string) string {
	arrow := "▶"
	if w.dragDX < 0 {
		arrow = "◀"
	}
	chip := indicatorStyle.Render(arrow + " " + w.pending.Title())
	lines := strings.Split(body, "\n")
	lines[0] = lipgloss.PlaceHorizontal(w.width, lipgloss.Center, chip)
	return strings.Join(lines, "\n")
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
