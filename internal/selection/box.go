package selection

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinExtent is the smallest side, in world units, a selection gesture must
// span before it counts as a selection.
const MinExtent = 4

// Box is an axis-aligned rectangle in world coordinates.
type Box struct {
	X, Y, W, H float64
}

// BoxFromPoints returns the box spanned by two corners in any order.
func BoxFromPoints(a, b r2.Vec) Box {
	return Box{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

// BoxFromRect converts an integer rectangle.
func BoxFromRect(r image.Rectangle) Box {
	return Box{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool { return b.W <= 0 || b.H <= 0 }

// Degenerate reports whether a gesture producing b should be ignored.
func (b Box) Degenerate() bool { return math.Max(b.W, b.H) < MinExtent }

// Min returns the top-left corner.
func (b Box) Min() r2.Vec { return r2.Vec{X: b.X, Y: b.Y} }

// Max returns the bottom-right corner.
func (b Box) Max() r2.Vec { return r2.Vec{X: b.X + b.W, Y: b.Y + b.H} }

// Center returns the centre point.
func (b Box) Center() r2.Vec { return r2.Vec{X: b.X + b.W/2, Y: b.Y + b.H/2} }

// Translate returns b shifted by d.
func (b Box) Translate(d r2.Vec) Box {
	b.X += d.X
	b.Y += d.Y
	return b
}

// ClampTo clips b to [0,w]×[0,h]. The result never has negative size.
func (b Box) ClampTo(w, h int) Box {
	x0 := clamp(b.X, 0, float64(w))
	y0 := clamp(b.Y, 0, float64(h))
	x1 := clamp(b.X+b.W, 0, float64(w))
	y1 := clamp(b.Y+b.H, 0, float64(h))
	return Box{X: x0, Y: y0, W: math.Max(0, x1-x0), H: math.Max(0, y1-y0)}
}

// Union returns the smallest box covering b and o. Empty boxes are ignored.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	x0 := math.Min(b.X, o.X)
	y0 := math.Min(b.Y, o.Y)
	x1 := math.Max(b.X+b.W, o.X+o.W)
	y1 := math.Max(b.Y+b.H, o.Y+o.H)
	return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Rect returns the pixel rectangle covering b, rounding outward.
func (b Box) Rect() image.Rectangle {
	return image.Rect(
		int(math.Floor(b.X)),
		int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.W)),
		int(math.Ceil(b.Y+b.H)),
	)
}

// Round returns the pixel rectangle with each edge rounded to the nearest
// integer.
func (b Box) Round() image.Rectangle {
	return image.Rect(
		int(math.Round(b.X)),
		int(math.Round(b.Y)),
		int(math.Round(b.X+b.W)),
		int(math.Round(b.Y+b.H)),
	)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
