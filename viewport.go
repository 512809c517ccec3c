package maskeraser

// Viewport describes how the source image is currently displayed: the
// on-screen origin and size of the image element plus the image's natural
// (unscaled) resolution.
type Viewport struct {
	OriginX       float64 `json:"origin_x"`
	OriginY       float64 `json:"origin_y"`
	DisplayWidth  float64 `json:"display_width"`
	DisplayHeight float64 `json:"display_height"`
	NaturalWidth  int     `json:"natural_width"`
	NaturalHeight int     `json:"natural_height"`
}

// Ready reports whether the viewport carries usable dimensions. A viewport
// is not ready before the image element has been mounted and measured.
func (v Viewport) Ready() bool {
	return v.DisplayWidth > 0 && v.DisplayHeight > 0 &&
		v.NaturalWidth > 0 && v.NaturalHeight > 0
}

// Map converts an on-screen pointer position into image-native coordinates
// by scaling the origin-relative position per axis. Positions past the image
// edge map outside [0, natural) without clamping. An unready viewport maps
// everything to {0, 0} rather than failing.
func (v Viewport) Map(screenX, screenY float64) Point {
	if !v.Ready() {
		return Point{}
	}
	sx := float64(v.NaturalWidth) / v.DisplayWidth
	sy := float64(v.NaturalHeight) / v.DisplayHeight
	return Point{
		X: (screenX - v.OriginX) * sx,
		Y: (screenY - v.OriginY) * sy,
	}
}
