package maskeraser

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// RasterizeMask renders the finalized rectangle into a binary mask sized
// width x height: opaque black everywhere, opaque white inside the
// rectangle. Regions of the rectangle outside the surface are clipped by
// the drawing primitive. Returns nil for a degenerate rectangle; errors
// only on unusable surface dimensions.
func RasterizeMask(rect Rectangle, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid mask dimensions %dx%d", width, height)
	}
	if rect.Empty() {
		return nil, nil
	}

	mask := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(mask, mask.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	white := rect.Bounds().Intersect(mask.Bounds())
	draw.Draw(mask, white, image.NewUniform(color.White), image.Point{}, draw.Src)

	return mask, nil
}
