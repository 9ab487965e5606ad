package transform

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
)

// HandleSize is the side of a resize handle in device pixels.
const HandleSize = 8

// Handle names one of the eight resize handles around a selection.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

var handleNames = [...]string{"none", "nw", "n", "ne", "e", "se", "s", "sw", "w"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "none"
	}
	return handleNames[h]
}

// edges reports which box edges the handle drives.
func (h Handle) edges() (west, north, east, south bool) {
	switch h {
	case HandleNW:
		return true, true, false, false
	case HandleN:
		return false, true, false, false
	case HandleNE:
		return false, true, true, false
	case HandleE:
		return false, false, true, false
	case HandleSE:
		return false, false, true, true
	case HandleS:
		return false, false, false, true
	case HandleSW:
		return true, false, false, true
	case HandleW:
		return true, false, false, false
	}
	return
}

// HandlePoints returns the handle centres of b in HandleNW..HandleW order.
func HandlePoints(b selection.Box) [8]r2.Vec {
	x0, y0 := b.X, b.Y
	x1, y1 := b.X+b.W, b.Y+b.H
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	return [8]r2.Vec{
		{X: x0, Y: y0}, // nw
		{X: cx, Y: y0}, // n
		{X: x1, Y: y0}, // ne
		{X: x1, Y: cy}, // e
		{X: x1, Y: y1}, // se
		{X: cx, Y: y1}, // s
		{X: x0, Y: y1}, // sw
		{X: x0, Y: cy}, // w
	}
}

// HandleRects returns the device rectangles of the handles around r, in
// HandleNW..HandleW order.
func HandleRects(r image.Rectangle) []image.Rectangle {
	hs := HandleSize / 2
	b := selection.BoxFromRect(r)
	out := make([]image.Rectangle, 0, 8)
	for _, p := range HandlePoints(b) {
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		out = append(out, image.Rect(x-hs, y-hs, x+hs, y+hs))
	}
	return out
}

// HitTest decides what a press at world point p on sel would start. reach
// is half the handle size in world units. Handles win over the interior.
func HitTest(sel selection.Selection, p r2.Vec, reach float64) (Mode, Handle, bool) {
	if !selection.Transformable(sel) {
		return ModeMove, HandleNone, false
	}
	for i, c := range HandlePoints(selection.Bounds(sel)) {
		if math.Abs(p.X-c.X) <= reach && math.Abs(p.Y-c.Y) <= reach {
			return ModeResize, Handle(i + 1), true
		}
	}
	if selection.Contains(sel, p) {
		return ModeMove, HandleNone, true
	}
	return ModeMove, HandleNone, false
}
