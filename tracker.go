package maskeraser

// GestureState enumerates the tracker's finite states.
type GestureState int

const (
	// Idle means no drag is in progress.
	Idle GestureState = iota
	// Dragging means a press has been recorded and the live rectangle is
	// being updated on every move.
	Dragging
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Tracker follows a single drag gesture and maintains the live selection
// rectangle. All methods are synchronous and the tracker is not safe for
// concurrent use; one gesture is outstanding at a time.
type Tracker struct {
	state  GestureState
	anchor Point
	live   Rectangle
}

// State returns the current gesture state.
func (t *Tracker) State() GestureState { return t.state }

// Press starts a drag at p, recording it as the anchor and initializing a
// zero-size live rectangle. A press while already dragging restarts the
// gesture at the new anchor.
func (t *Tracker) Press(p Point) {
	t.state = Dragging
	t.anchor = p
	t.live = Rectangle{X: p.X, Y: p.Y}
}

// Move updates the live rectangle against the anchor and returns it. Moves
// outside an active drag are ignored.
func (t *Tracker) Move(p Point) (Rectangle, bool) {
	if t.state != Dragging {
		return Rectangle{}, false
	}
	t.live = RectBetween(t.anchor, p)
	return t.live, true
}

// Release ends the drag at p and returns the finalized rectangle. The
// second return is false when no drag was active or the finalized rectangle
// is degenerate (zero width or height); callers then keep any prior
// committed selection. Release also serves pointer-loss and touch-end.
func (t *Tracker) Release(p Point) (Rectangle, bool) {
	if t.state != Dragging {
		return Rectangle{}, false
	}
	t.state = Idle
	t.live = RectBetween(t.anchor, p)
	rect := t.live
	if rect.Empty() {
		return Rectangle{}, false
	}
	return rect, true
}

// Live returns the in-progress rectangle, valid only while Dragging.
func (t *Tracker) Live() (Rectangle, bool) {
	if t.state != Dragging {
		return Rectangle{}, false
	}
	return t.live, true
}
