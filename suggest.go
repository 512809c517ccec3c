package maskeraser

// Generative-image watermarks are stamped at a fixed size and margin in the
// bottom-right corner, with larger placements on images above 1024px in
// both dimensions.
type placement struct {
	LogoSize     int
	MarginRight  int
	MarginBottom int
}

func placementFor(width, height int) placement {
	if width > 1024 && height > 1024 {
		return placement{LogoSize: 96, MarginRight: 64, MarginBottom: 64}
	}
	return placement{LogoSize: 48, MarginRight: 32, MarginBottom: 32}
}

// SuggestSelection proposes an initial selection covering the standard
// watermark placement for an image of the given natural size. The proposal
// is pure geometry; no pixels are inspected. The second return is false
// when the image is too small to hold the placement.
func SuggestSelection(width, height int) (Rectangle, bool) {
	p := placementFor(width, height)

	x := width - p.MarginRight - p.LogoSize
	y := height - p.MarginBottom - p.LogoSize
	if x < 0 || y < 0 {
		return Rectangle{}, false
	}

	return Rectangle{
		X: float64(x),
		Y: float64(y),
		W: float64(p.LogoSize),
		H: float64(p.LogoSize),
	}, true
}
