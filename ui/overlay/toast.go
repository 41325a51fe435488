// Package overlay holds floating UI drawn above the panel layout: toast
// notifications and the search input.
package overlay

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ToastLevel identifies the kind of toast notification.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// Display constants.
const (
	infoDismissAfter  = 3 * time.Second
	errorDismissAfter = 5 * time.Second

	minToastWidth = 24
	maxToastWidth = 56
	maxToasts     = 4
)

// ToastTickMsg is sent by the app every ~250ms while toasts are visible so
// expired ones get dropped.
type ToastTickMsg struct{}

type toast struct {
	level   ToastLevel
	message string
	expires time.Time
}

// ToastManager owns the active toast stack. Errors from external
// collaborators (refresh failures, clipboard, store writes) surface here
// instead of crashing or silently vanishing.
type ToastManager struct {
	toasts []toast
	width  int
	now    func() time.Time
}

// NewToastManager creates an empty toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{now: time.Now}
}

// SetWidth updates the viewport width used for right-edge placement.
func (tm *ToastManager) SetWidth(width int) {
	tm.width = width
}

// Info shows an informational toast.
func (tm *ToastManager) Info(msg string) { tm.add(ToastInfo, msg, infoDismissAfter) }

// Success shows a success toast.
func (tm *ToastManager) Success(msg string) { tm.add(ToastSuccess, msg, infoDismissAfter) }

// Error shows an error toast. Errors linger longer than info.
func (tm *ToastManager) Error(msg string) { tm.add(ToastError, msg, errorDismissAfter) }

func (tm *ToastManager) add(level ToastLevel, msg string, ttl time.Duration) {
	// Duplicate messages refresh their timer instead of stacking.
	for i := range tm.toasts {
		if tm.toasts[i].level == level && tm.toasts[i].message == msg {
			tm.toasts[i].expires = tm.now().Add(ttl)
			return
		}
	}
	if len(tm.toasts) >= maxToasts {
		tm.toasts = tm.toasts[1:]
	}
	tm.toasts = append(tm.toasts, toast{level: level, message: msg, expires: tm.now().Add(ttl)})
}

// Active reports whether any toast is still on screen.
func (tm *ToastManager) Active() bool {
	return len(tm.toasts) > 0
}

// Tick drops expired toasts.
func (tm *ToastManager) Tick() {
	now := tm.now()
	alive := tm.toasts[:0]
	for _, t := range tm.toasts {
		if t.expires.After(now) {
			alive = append(alive, t)
		}
	}
	tm.toasts = alive
}

func toastColor(level ToastLevel) lipgloss.Color {
	switch level {
	case ToastError:
		return colorLove
	case ToastSuccess:
		return colorFoam
	default:
		return colorIris
	}
}

func toastIcon(level ToastLevel) string {
	switch level {
	case ToastError:
		return "✗"
	case ToastSuccess:
		return "✓"
	default:
		return "▸"
	}
}

// View renders the toast stack, newest at the bottom.
func (tm *ToastManager) View() string {
	if len(tm.toasts) == 0 {
		return ""
	}
	var rendered []string
	for _, t := range tm.toasts {
		w := clampInt(runewidth.StringWidth(t.message)+6, minToastWidth, maxToastWidth)
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(toastColor(t.level)).
			Padding(0, 1).
			Width(w)
		icon := lipgloss.NewStyle().Foreground(toastColor(t.level)).Render(toastIcon(t.level))
		rendered = append(rendered, style.Render(icon+" "+t.message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// Position returns the x, y coordinates for placing the toast stack at the
// top-right of the viewport.
func (tm *ToastManager) Position() (int, int) {
	widest := minToastWidth
	for _, t := range tm.toasts {
		if w := clampInt(runewidth.StringWidth(t.message)+6, minToastWidth, maxToastWidth); w > widest {
			widest = w
		}
	}
	x := tm.width - widest - 2
	if x < 0 {
		x = 0
	}
	return x, 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
