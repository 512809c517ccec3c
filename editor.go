package maskeraser

import (
	"fmt"
	"image"
)

// Selection is a committed selection: the normalized rectangle in
// image-native coordinates, its rasterized mask, and the mask encoded as a
// PNG data URL for transport. A Selection is replaced wholesale by the next
// completed gesture, never merged.
type Selection struct {
	Rect    Rectangle
	Mask    *image.RGBA
	DataURL string
}

// Editor binds a Viewport, a Tracker and the mask rasterizer into the full
// pipeline: display-space pointer events in, committed selections out. The
// live rectangle (updated on every move) and the committed selection
// (updated only on gesture end) are held separately so a renderer can prefer
// the live rectangle while a gesture is active.
//
// An Editor owns a single in-progress selection and is driven from one
// event source; it is not safe for concurrent use.
type Editor struct {
	viewport  Viewport
	tracker   Tracker
	committed *Selection

	// emit is invoked with the new selection on every completed gesture,
	// and with nil when the selection is cleared. Degenerate gestures do
	// not emit.
	emit func(*Selection)
}

// NewEditor creates an Editor for an image displayed through viewport.
// onSelection may be nil when the caller polls Committed instead.
func NewEditor(viewport Viewport, onSelection func(*Selection)) *Editor {
	return &Editor{viewport: viewport, emit: onSelection}
}

// SetViewport replaces the display geometry, e.g. after a window resize.
func (e *Editor) SetViewport(v Viewport) { e.viewport = v }

// Press begins a gesture at an on-screen position.
func (e *Editor) Press(screenX, screenY float64) {
	e.tracker.Press(e.viewport.Map(screenX, screenY))
}

// Move advances the gesture and returns the live rectangle.
func (e *Editor) Move(screenX, screenY float64) (Rectangle, bool) {
	return e.tracker.Move(e.viewport.Map(screenX, screenY))
}

// Release finishes the gesture. A non-degenerate rectangle is rasterized
// against the image's natural dimensions and committed, replacing any prior
// selection; a degenerate one leaves the prior selection untouched and
// returns nil. Release also handles pointer loss and touch-end.
func (e *Editor) Release(screenX, screenY float64) (*Selection, error) {
	rect, ok := e.tracker.Release(e.viewport.Map(screenX, screenY))
	if !ok {
		return nil, nil
	}

	mask, err := RasterizeMask(rect, e.viewport.NaturalWidth, e.viewport.NaturalHeight)
	if err != nil {
		return nil, fmt.Errorf("rasterize selection: %w", err)
	}
	if mask == nil {
		return nil, nil
	}

	url, err := PNGDataURL(mask)
	if err != nil {
		return nil, fmt.Errorf("encode mask: %w", err)
	}

	sel := &Selection{Rect: rect, Mask: mask, DataURL: url}
	e.committed = sel
	if e.emit != nil {
		e.emit(sel)
	}
	return sel, nil
}

// Clear drops the committed selection and emits nil.
func (e *Editor) Clear() {
	e.committed = nil
	if e.emit != nil {
		e.emit(nil)
	}
}

// Committed returns the current committed selection, or nil when none.
func (e *Editor) Committed() *Selection { return e.committed }

// Live returns the in-progress rectangle while a gesture is active.
func (e *Editor) Live() (Rectangle, bool) { return e.tracker.Live() }
