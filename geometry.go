package maskeraser

import (
	"image"
	"math"
)

// Point is a position in image-native pixel coordinates. Values may fall
// outside the image bounds when a gesture extends past the image edge; no
// clamping is applied at this level.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle is a top-left anchored rectangle with non-negative extents in
// image-native pixel coordinates.
type Rectangle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RectBetween returns the normalized rectangle spanned by two gesture
// endpoints. The result is always anchored at the minimum corner with
// W, H >= 0, whichever direction the drag ran.
func RectBetween(anchor, p Point) Rectangle {
	r := Rectangle{X: anchor.X, Y: anchor.Y, W: p.X - anchor.X, H: p.Y - anchor.Y}
	if r.W < 0 {
		r.X = p.X
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y = p.Y
		r.H = -r.H
	}
	return r
}

// Empty reports whether the rectangle has zero width or height. An empty
// rectangle never produces a mask.
func (r Rectangle) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Bounds converts the rectangle to integer pixel bounds, rounding each edge
// to the nearest pixel.
func (r Rectangle) Bounds() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.X + r.W))
	y1 := int(math.Round(r.Y + r.H))
	return image.Rect(x0, y0, x1, y1)
}
