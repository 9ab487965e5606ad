package pixelops

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
)

// Shape identifies the drag-to-draw shape tools.
type Shape int

const (
	ShapeLine Shape = iota
	ShapeRect
	ShapeEllipse
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeEllipse:
		return "ellipse"
	default:
		return "line"
	}
}

// Constrain applies the modifier-key constraint to a drag end point: lines
// snap to 45° steps, rectangles and ellipses become squares and circles.
func Constrain(shape Shape, from, to r2.Vec) r2.Vec {
	d := r2.Sub(to, from)
	if shape == ShapeLine {
		l := math.Hypot(d.X, d.Y)
		if l == 0 {
			return to
		}
		step := math.Pi / 4
		a := math.Round(math.Atan2(d.Y, d.X)/step) * step
		return r2.Add(from, r2.Vec{X: l * math.Cos(a), Y: l * math.Sin(a)})
	}
	side := math.Max(math.Abs(d.X), math.Abs(d.Y))
	return r2.Add(from, r2.Vec{X: math.Copysign(side, d.X), Y: math.Copysign(side, d.Y)})
}

// shapeSegments returns the outline of a shape as stroke segments.
func shapeSegments(shape Shape, from, to r2.Vec) []segment {
	if shape == ShapeLine {
		return []segment{{from, to}}
	}
	b := selection.BoxFromPoints(from, to)
	var outline selection.Selection = selection.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	if shape == ShapeEllipse {
		outline = selection.Ellipse{CX: b.X + b.W/2, CY: b.Y + b.H/2, RX: b.W / 2, RY: b.H / 2}
	}
	var segs []segment
	for _, line := range selection.Outline(outline) {
		for i := 1; i < len(line); i++ {
			segs = append(segs, segment{line[i-1], line[i]})
		}
	}
	return segs
}

// ShapePreview clears overlay and draws the shape onto it without touching
// any layer.
func ShapePreview(overlay *image.NRGBA, shape Shape, from, to r2.Vec, style Style, constrain bool) {
	if overlay == nil {
		return
	}
	clear(overlay.Pix)
	if constrain {
		to = Constrain(shape, from, to)
	}
	if from == to {
		return
	}
	style.Erase = false
	strokeSegments(overlay, shapeSegments(shape, from, to), style, nil)
}

// CommitShape draws the shape onto img through the same selection-aware path
// as strokes. Coinciding end points draw nothing and report false.
func CommitShape(img *image.NRGBA, shape Shape, from, to r2.Vec, style Style, sel selection.Selection, constrain bool) bool {
	if img == nil {
		return false
	}
	if constrain {
		to = Constrain(shape, from, to)
	}
	if from == to {
		return false
	}
	strokeSegments(img, shapeSegments(shape, from, to), style, sel)
	return true
}
