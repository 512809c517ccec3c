package maskeraser

import "math"

// supportedRatios are the aspect ratios the external editing API accepts.
var supportedRatios = []struct {
	name  string
	value float64
}{
	{"1:1", 1},
	{"3:4", 3.0 / 4.0},
	{"4:3", 4.0 / 3.0},
	{"9:16", 9.0 / 16.0},
	{"16:9", 16.0 / 9.0},
}

// AspectRatioHint classifies width/height to the nearest supported ratio
// and returns its canonical string, e.g. "16:9". Non-positive dimensions
// fall back to "1:1".
func AspectRatioHint(width, height int) string {
	if width <= 0 || height <= 0 {
		return "1:1"
	}

	ratio := float64(width) / float64(height)
	best := supportedRatios[0].name
	bestDiff := math.Abs(ratio - supportedRatios[0].value)
	for _, c := range supportedRatios[1:] {
		if d := math.Abs(ratio - c.value); d < bestDiff {
			best = c.name
			bestDiff = d
		}
	}
	return best
}
