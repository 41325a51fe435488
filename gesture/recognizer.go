// Package gesture classifies single-pointer horizontal drags into panel
// swipe commits. It is input-agnostic: the app feeds it pointer samples
// (terminal cell coordinates) from mouse tracking events.
package gesture

import "time"

// Direction is the dominant axis of an in-progress drag.
type Direction string

const (
	DirNone  Direction = ""
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

// Horizontal reports whether the direction can commit a panel change.
// Vertical drags are inert; they are reserved for content scrolling.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// State is the live swipe snapshot, recreated on every Begin and zeroed on
// every End or Cancel regardless of outcome.
type State struct {
	Swiping          bool
	StartX, StartY   int
	CurrentX, CurrentY int
	DeltaX, DeltaY   int
	// Velocity is cells per millisecond. During a drag it is the
	// instantaneous last-sample velocity so live feedback tracks late
	// flicks; End replaces it with the whole-gesture velocity before
	// deciding the commit.
	Velocity  float64
	Direction Direction
}

// Decision is the outcome of End: whether the drag commits and which way.
type Decision struct {
	Commit    bool
	Direction Direction
	DeltaX    int
	Velocity  float64
}

// Recognizer converts pointer samples into commit decisions. One instance per
// inbox view; single-pointer only, so a Begin while a drag is live is ignored.
type Recognizer struct {
	threshold   int     // cells of horizontal travel that force a commit
	minVelocity float64 // cells/ms that let a short flick commit

	state      State
	start      time.Time
	lastSample time.Time
	lastX      int

	// now is swappable so tests control velocity timing.
	now func() time.Time
}

// NewRecognizer creates a recognizer with the given commit thresholds.
// Non-positive arguments fall back to conservative defaults.
func NewRecognizer(threshold int, minVelocity float64) *Recognizer {
	if threshold <= 0 {
		threshold = 10
	}
	if minVelocity <= 0 {
		minVelocity = 0.05
	}
	return &Recognizer{
		threshold:   threshold,
		minVelocity: minVelocity,
		now:         time.Now,
	}
}

// State returns the live swipe snapshot for render feedback.
func (r *Recognizer) State() State { return r.state }

// Swiping reports whether a drag is in progress.
func (r *Recognizer) Swiping() bool { return r.state.Swiping }

// Threshold returns the configured commit threshold in cells.
func (r *Recognizer) Threshold() int { return r.threshold }

// Begin starts tracking a drag at the given position. Ignored while a
// transition is settling (locked) or while another drag is already live.
func (r *Recognizer) Begin(x, y int, locked bool) {
	if locked || r.state.Swiping {
		return
	}
	now := r.now()
	r.state = State{
		Swiping:  true,
		StartX:   x, StartY: y,
		CurrentX: x, CurrentY: y,
	}
	r.start = now
	r.lastSample = now
	r.lastX = x
}

// Move updates the drag with a new sample. Velocity here is instantaneous:
// horizontal travel since the previous sample over the time since that
// sample, so a fast finish is not diluted by a slow start.
func (r *Recognizer) Move(x, y int, locked bool) {
	if !r.state.Swiping || locked {
		return
	}
	now := r.now()
	r.state.CurrentX = x
	r.state.CurrentY = y
	r.state.DeltaX = x - r.state.StartX
	r.state.DeltaY = y - r.state.StartY

	if dt := now.Sub(r.lastSample); dt > 0 {
		r.state.Velocity = abs(float64(x-r.lastX)) / millis(dt)
	}
	r.lastSample = now
	r.lastX = x

	r.state.Direction = classify(r.state.DeltaX, r.state.DeltaY)
}

// End finishes the drag and returns the commit decision. The deciding
// velocity is deliberately the whole-gesture one (|deltaX| over total drag
// time), not the last-sample one: the commit cares about total effort.
// State is zeroed on every outcome.
func (r *Recognizer) End(x, y int) Decision {
	if !r.state.Swiping {
		return Decision{}
	}
	now := r.now()
	deltaX := x - r.state.StartX
	deltaY := y - r.state.StartY
	dir := classify(deltaX, deltaY)

	velocity := 0.0
	if total := now.Sub(r.start); total > 0 {
		velocity = abs(float64(deltaX)) / millis(total)
	}

	d := Decision{
		Direction: dir,
		DeltaX:    deltaX,
		Velocity:  velocity,
	}
	if dir.Horizontal() && (absInt(deltaX) > r.threshold || velocity > r.minVelocity) {
		d.Commit = true
	}

	r.state = State{}
	return d
}

// Cancel aborts the drag with no chance of a commit: equivalent to an End
// whose displacement fails the threshold. Used for touch-cancel analogues
// (terminal focus loss, overlay opening mid-drag).
func (r *Recognizer) Cancel() {
	r.state = State{}
}

// classify picks the dominant axis; ties go horizontal.
func classify(dx, dy int) Direction {
	if dx == 0 && dy == 0 {
		return DirNone
	}
	if absInt(dx) >= absInt(dy) {
		if dx < 0 {
			return DirLeft
		}
		return DirRight
	}
	if dy < 0 {
		return DirUp
	}
	return DirDown
}

// millis converts a duration to fractional milliseconds.
func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
