// Package selection models the transient selection shapes that constrain
// painting: rectangles, ellipses, freehand lassos and magic-wand pixel masks.
package selection

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind identifies a selection variant.
type Kind int

const (
	KindNone Kind = iota
	KindRect
	KindEllipse
	KindLasso
	KindMagic
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindLasso:
		return "lasso"
	case KindMagic:
		return "magic"
	default:
		return "none"
	}
}

// Selection is one of Rect, Ellipse, Lasso or *Magic.
type Selection interface {
	Kind() Kind
	isSelection()
}

// Rect is an axis-aligned rectangular selection.
type Rect struct {
	X, Y, W, H float64
}

// Ellipse is an axis-aligned elliptical selection.
type Ellipse struct {
	CX, CY, RX, RY float64
}

// Lasso is a freehand polygon. It needs at least three points to select
// anything.
type Lasso struct {
	Points []r2.Vec
}

// Magic is a pixel mask produced by the magic wand. Its geometry is fixed once
// computed.
type Magic struct {
	Mask *Mask
	Box  Box
}

func (Rect) Kind() Kind    { return KindRect }
func (Ellipse) Kind() Kind { return KindEllipse }
func (Lasso) Kind() Kind   { return KindLasso }
func (*Magic) Kind() Kind  { return KindMagic }

func (Rect) isSelection()    {}
func (Ellipse) isSelection() {}
func (Lasso) isSelection()   {}
func (*Magic) isSelection()  {}

// KindOf returns the kind of s, or KindNone for nil.
func KindOf(s Selection) Kind {
	if s == nil {
		return KindNone
	}
	return s.Kind()
}

// Transformable reports whether s can be moved or resized.
func Transformable(s Selection) bool {
	switch KindOf(s) {
	case KindRect, KindEllipse, KindLasso:
		return true
	}
	return false
}

// Bounds returns the bounding box of s.
func Bounds(s Selection) Box {
	switch v := s.(type) {
	case Rect:
		return Box{X: v.X, Y: v.Y, W: v.W, H: v.H}
	case Ellipse:
		return Box{X: v.CX - v.RX, Y: v.CY - v.RY, W: 2 * v.RX, H: 2 * v.RY}
	case Lasso:
		if len(v.Points) == 0 {
			return Box{}
		}
		min, max := v.Points[0], v.Points[0]
		for _, p := range v.Points[1:] {
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
		}
		return Box{X: min.X, Y: min.Y, W: max.X - min.X, H: max.Y - min.Y}
	case *Magic:
		if v == nil {
			return Box{}
		}
		return v.Box
	}
	return Box{}
}

// Contains reports whether p lies inside s.
func Contains(s Selection, p r2.Vec) bool {
	switch v := s.(type) {
	case Rect:
		return p.X >= v.X && p.X <= v.X+v.W && p.Y >= v.Y && p.Y <= v.Y+v.H
	case Ellipse:
		if v.RX <= 0 || v.RY <= 0 {
			return false
		}
		nx := (p.X - v.CX) / v.RX
		ny := (p.Y - v.CY) / v.RY
		return nx*nx+ny*ny <= 1
	case Lasso:
		return pointInPolygon(p, v.Points)
	case *Magic:
		if v == nil {
			return false
		}
		return v.Mask.Get(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	}
	return false
}

// pointInPolygon applies the even-odd rule by casting a ray towards +X.
func pointInPolygon(p r2.Vec, poly []r2.Vec) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Translate returns s shifted by (dx, dy). Magic selections cannot move and
// report false.
func Translate(s Selection, dx, dy float64) (Selection, bool) {
	switch v := s.(type) {
	case Rect:
		v.X += dx
		v.Y += dy
		return v, true
	case Ellipse:
		v.CX += dx
		v.CY += dy
		return v, true
	case Lasso:
		pts := make([]r2.Vec, len(v.Points))
		d := r2.Vec{X: dx, Y: dy}
		for i, p := range v.Points {
			pts[i] = r2.Add(p, d)
		}
		return Lasso{Points: pts}, true
	}
	return nil, false
}

// Rescale maps s from the from box onto the to box. Rect and Ellipse adopt
// to directly; lasso points are remapped proportionally, or only translated
// when from has no area. Magic selections report false.
func Rescale(s Selection, from, to Box) (Selection, bool) {
	switch v := s.(type) {
	case Rect:
		return Rect{X: to.X, Y: to.Y, W: to.W, H: to.H}, true
	case Ellipse:
		return Ellipse{CX: to.X + to.W/2, CY: to.Y + to.H/2, RX: to.W / 2, RY: to.H / 2}, true
	case Lasso:
		if from.W == 0 || from.H == 0 {
			return Translate(v, to.X-from.X, to.Y-from.Y)
		}
		sx := to.W / from.W
		sy := to.H / from.H
		pts := make([]r2.Vec, len(v.Points))
		for i, p := range v.Points {
			pts[i] = r2.Vec{
				X: to.X + (p.X-from.X)*sx,
				Y: to.Y + (p.Y-from.Y)*sy,
			}
		}
		return Lasso{Points: pts}, true
	}
	return nil, false
}

// Clone returns a deep copy of s.
func Clone(s Selection) Selection {
	switch v := s.(type) {
	case Lasso:
		pts := make([]r2.Vec, len(v.Points))
		copy(pts, v.Points)
		return Lasso{Points: pts}
	case *Magic:
		if v == nil {
			return nil
		}
		return &Magic{Mask: v.Mask.Clone(), Box: v.Box}
	}
	return s
}

// FromDrag builds a rectangle or ellipse selection from a drag between two
// world points. constrain forces a square or circle. A drag smaller than
// MinExtent yields no selection.
func FromDrag(kind Kind, from, to r2.Vec, constrain bool) (Selection, bool) {
	if constrain {
		to = squareCorner(from, to)
	}
	b := BoxFromPoints(from, to)
	if b.Degenerate() {
		return nil, false
	}
	switch kind {
	case KindRect:
		return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}, true
	case KindEllipse:
		return Ellipse{CX: b.X + b.W/2, CY: b.Y + b.H/2, RX: b.W / 2, RY: b.H / 2}, true
	}
	return nil, false
}

// NewLasso validates a freehand point sequence.
func NewLasso(points []r2.Vec) (Lasso, bool) {
	if len(points) < 3 {
		return Lasso{}, false
	}
	l := Lasso{Points: append([]r2.Vec(nil), points...)}
	if Bounds(l).Degenerate() {
		return Lasso{}, false
	}
	return l, true
}

// squareCorner moves to so that the drag spans a square, keeping the drag
// direction.
func squareCorner(from, to r2.Vec) r2.Vec {
	dx, dy := to.X-from.X, to.Y-from.Y
	side := math.Max(math.Abs(dx), math.Abs(dy))
	return r2.Vec{X: from.X + math.Copysign(side, dx), Y: from.Y + math.Copysign(side, dy)}
}

// ClipMask returns a binary mask over a w×h surface holding the pixels whose
// centres fall inside s.
func ClipMask(s Selection, w, h int) *image.Alpha {
	out := image.NewAlpha(image.Rect(0, 0, w, h))
	if s == nil || w <= 0 || h <= 0 {
		return out
	}
	if m, ok := s.(*Magic); ok && m != nil {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if m.Mask.Get(x, y) {
					out.Pix[y*out.Stride+x] = 0xff
				}
			}
		}
		return out
	}
	r := Bounds(s).Rect().Intersect(out.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if Contains(s, r2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}) {
				out.Pix[y*out.Stride+x] = 0xff
			}
		}
	}
	return out
}
