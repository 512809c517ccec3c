package maskeraser

import (
	"math"
	"testing"
)

// Worked example: 800x600 natural displayed at 400x300 doubles every axis.
func TestViewportMapScalesToNativeCoordinates(t *testing.T) {
	vp := Viewport{
		DisplayWidth: 400, DisplayHeight: 300,
		NaturalWidth: 800, NaturalHeight: 600,
	}

	press := vp.Map(100, 50)
	release := vp.Map(150, 100)
	rect := RectBetween(press, release)

	want := Rectangle{X: 200, Y: 100, W: 100, H: 100}
	if rect != want {
		t.Fatalf("rect = %+v, want %+v", rect, want)
	}
}

func TestViewportMapAccountsForOrigin(t *testing.T) {
	vp := Viewport{
		OriginX: 20, OriginY: 10,
		DisplayWidth: 400, DisplayHeight: 300,
		NaturalWidth: 800, NaturalHeight: 600,
	}

	p := vp.Map(20, 10)
	if p != (Point{}) {
		t.Fatalf("origin should map to {0,0}, got %+v", p)
	}
}

// Doubling the displayed size must not change where a relative position
// lands in native coordinates.
func TestViewportMapScaleInvariance(t *testing.T) {
	small := Viewport{DisplayWidth: 400, DisplayHeight: 300, NaturalWidth: 800, NaturalHeight: 600}
	large := Viewport{DisplayWidth: 800, DisplayHeight: 600, NaturalWidth: 800, NaturalHeight: 600}

	// Same relative position: 25% across, 50% down.
	a := small.Map(100, 150)
	b := large.Map(200, 300)

	if math.Abs(a.X-b.X) > 1e-9 || math.Abs(a.Y-b.Y) > 1e-9 {
		t.Fatalf("mapping not scale-invariant: %+v vs %+v", a, b)
	}
}

func TestViewportMapOutsideImageIsNotClamped(t *testing.T) {
	vp := Viewport{DisplayWidth: 100, DisplayHeight: 100, NaturalWidth: 200, NaturalHeight: 200}

	p := vp.Map(150, -10)
	if p.X != 300 || p.Y != -20 {
		t.Fatalf("expected unclamped {300,-20}, got %+v", p)
	}
}

// Before the image is mounted the mapper falls back to {0,0} quietly.
func TestViewportMapUnreadyFallsBackToZero(t *testing.T) {
	var vp Viewport
	if p := vp.Map(123, 456); p != (Point{}) {
		t.Fatalf("unready viewport should map to {0,0}, got %+v", p)
	}
}
