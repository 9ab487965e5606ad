package selection

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ellipseSegments is the number of segments used to flatten ellipse outlines.
const ellipseSegments = 64

// Outline returns the world-space polylines tracing the edge of s. Closed
// shapes repeat their first point at the end. Magic selections are traced
// along pixel edges.
func Outline(s Selection) [][]r2.Vec {
	switch v := s.(type) {
	case Rect:
		return [][]r2.Vec{{
			{X: v.X, Y: v.Y},
			{X: v.X + v.W, Y: v.Y},
			{X: v.X + v.W, Y: v.Y + v.H},
			{X: v.X, Y: v.Y + v.H},
			{X: v.X, Y: v.Y},
		}}
	case Ellipse:
		pts := make([]r2.Vec, 0, ellipseSegments+1)
		for i := 0; i <= ellipseSegments; i++ {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			pts = append(pts, r2.Vec{X: v.CX + v.RX*math.Cos(a), Y: v.CY + v.RY*math.Sin(a)})
		}
		return [][]r2.Vec{pts}
	case Lasso:
		if len(v.Points) < 2 {
			return nil
		}
		pts := append([]r2.Vec(nil), v.Points...)
		pts = append(pts, v.Points[0])
		return [][]r2.Vec{pts}
	case *Magic:
		if v == nil {
			return nil
		}
		return maskEdges(v.Mask)
	}
	return nil
}

// maskEdges returns one segment per maximal run of boundary pixel edges.
func maskEdges(m *Mask) [][]r2.Vec {
	var out [][]r2.Vec
	seg := func(x0, y0, x1, y1 int) {
		out = append(out, []r2.Vec{{X: float64(x0), Y: float64(y0)}, {X: float64(x1), Y: float64(y1)}})
	}
	// Horizontal edges lie between row y-1 and row y.
	for y := 0; y <= m.H; y++ {
		start := -1
		for x := 0; x <= m.W; x++ {
			edge := x < m.W && m.Get(x, y-1) != m.Get(x, y)
			if edge && start < 0 {
				start = x
			} else if !edge && start >= 0 {
				seg(start, y, x, y)
				start = -1
			}
		}
	}
	// Vertical edges lie between column x-1 and column x.
	for x := 0; x <= m.W; x++ {
		start := -1
		for y := 0; y <= m.H; y++ {
			edge := y < m.H && m.Get(x-1, y) != m.Get(x, y)
			if edge && start < 0 {
				start = y
			} else if !edge && start >= 0 {
				seg(x, start, x, y)
				start = -1
			}
		}
	}
	return out
}
