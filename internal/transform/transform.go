// Package transform implements the floating selection: pixels lifted out of
// a layer by a move or resize gesture, composited live at their new bounds
// and written back on commit.
package transform

import (
	"image"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/pixelops"
	"github.com/example/framepaint/internal/selection"
)

// Mode is the kind of gesture driving a transform.
type Mode int

const (
	ModeMove Mode = iota
	ModeResize
)

func (m Mode) String() string {
	if m == ModeResize {
		return "resize"
	}
	return "move"
}

// State tracks where a transform is in its lifecycle. Idle is represented by
// the absence of a Transform.
type State int

const (
	Active State = iota
	Floating
	Committed
)

// Transform is the state of a floating selection.
type Transform struct {
	Mode          Mode
	Handle        Handle
	StartBounds   selection.Box
	CurrentBounds selection.Box
	// Snapshot holds the lifted pixels at StartBounds size.
	Snapshot       *image.NRGBA
	StartSelection selection.Selection
	// Selection is the live selection geometry following CurrentBounds.
	Selection selection.Selection

	state  State
	extent image.Point

	// gesture start values, reset by Begin and Resume
	anchor     r2.Vec
	gestBounds selection.Box
	gestSel    selection.Selection
}

// Begin lifts the pixels of sel out of surface and starts a gesture at the
// world point p. Magic and empty selections, a resize without a handle, and
// selections whose clamped bounds have no area are rejected and leave
// surface untouched.
func Begin(surface *image.NRGBA, sel selection.Selection, mode Mode, handle Handle, p r2.Vec) (*Transform, bool) {
	if surface == nil || !selection.Transformable(sel) {
		return nil, false
	}
	if mode == ModeResize && handle == HandleNone {
		return nil, false
	}
	size := surface.Bounds().Size()
	r := selection.Bounds(sel).ClampTo(size.X, size.Y).Rect().Intersect(surface.Bounds())
	if r.Empty() {
		return nil, false
	}
	mask := selection.ClipMask(sel, size.X, size.Y)
	snap := pixelops.Capture(surface, r, mask)
	pixelops.ClearMasked(surface, r, mask)

	start := selection.BoxFromRect(r)
	t := &Transform{
		Mode:           mode,
		Handle:         handle,
		StartBounds:    start,
		CurrentBounds:  start,
		Snapshot:       snap,
		StartSelection: selection.Clone(sel),
		Selection:      selection.Clone(sel),
		state:          Active,
		extent:         size,
	}
	t.mark(p)
	return t, true
}

// Float wraps pixels that did not come from the surface, such as a paste,
// as a floating selection with its top-left corner at at. The pixels are
// cropped to extent and the position is clamped so they stay inside it.
func Float(extent image.Point, img image.Image, at image.Point) (*Transform, bool) {
	if img == nil || extent.X <= 0 || extent.Y <= 0 {
		return nil, false
	}
	src := img.Bounds()
	size := image.Pt(min(src.Dx(), extent.X), min(src.Dy(), extent.Y))
	if size.X <= 0 || size.Y <= 0 {
		return nil, false
	}
	snap := image.NewNRGBA(image.Rectangle{Max: size})
	draw.Draw(snap, snap.Bounds(), img, src.Min, draw.Src)

	at.X = max(0, min(at.X, extent.X-size.X))
	at.Y = max(0, min(at.Y, extent.Y-size.Y))
	b := selection.BoxFromRect(image.Rectangle{Min: at, Max: at.Add(size)})
	sel := selection.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	t := &Transform{
		StartBounds:    b,
		CurrentBounds:  b,
		Snapshot:       snap,
		StartSelection: sel,
		Selection:      sel,
		state:          Floating,
		extent:         extent,
	}
	return t, true
}

func (t *Transform) mark(p r2.Vec) {
	t.anchor = p
	t.gestBounds = t.CurrentBounds
	t.gestSel = selection.Clone(t.Selection)
}

// State reports the lifecycle state.
func (t *Transform) State() State { return t.state }

// Update moves or resizes the floating pixels to follow the pointer at p.
// It does nothing unless a gesture is active.
func (t *Transform) Update(p r2.Vec) {
	if t.state != Active {
		return
	}
	d := r2.Sub(p, t.anchor)
	if t.Mode == ModeMove {
		t.move(d)
		return
	}
	t.resize(d)
}

func (t *Transform) move(d r2.Vec) {
	b := t.gestBounds.Translate(d)
	b.X = clamp(b.X, 0, math.Max(0, float64(t.extent.X)-b.W))
	b.Y = clamp(b.Y, 0, math.Max(0, float64(t.extent.Y)-b.H))
	moved, ok := selection.Translate(t.gestSel, b.X-t.gestBounds.X, b.Y-t.gestBounds.Y)
	if !ok {
		return
	}
	t.CurrentBounds = b
	t.Selection = moved
}

func (t *Transform) resize(d r2.Vec) {
	g := t.gestBounds
	x0, y0, x1, y1 := g.X, g.Y, g.X+g.W, g.Y+g.H
	w, h := float64(t.extent.X), float64(t.extent.Y)
	west, north, east, south := t.Handle.edges()
	if west {
		x0 = clamp(x0+d.X, 0, x1-selection.MinExtent)
	}
	if east {
		x1 = clamp(x1+d.X, x0+selection.MinExtent, w)
	}
	if north {
		y0 = clamp(y0+d.Y, 0, y1-selection.MinExtent)
	}
	if south {
		y1 = clamp(y1+d.Y, y0+selection.MinExtent, h)
	}
	x0, x1 = widen(x0, x1, w, west)
	y0, y1 = widen(y0, y1, h, north)
	b := selection.Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	scaled, ok := selection.Rescale(t.StartSelection, t.StartBounds, b)
	if !ok {
		return
	}
	t.CurrentBounds = b
	t.Selection = scaled
}

// widen grows the span [lo, hi] to MinExtent inside [0, limit]. The low
// edge moves when moveLo is set, the high edge otherwise; an edge pinned at
// the canvas border pushes the other one instead.
func widen(lo, hi, limit float64, moveLo bool) (float64, float64) {
	if hi-lo >= selection.MinExtent {
		return lo, hi
	}
	if limit <= selection.MinExtent {
		return 0, limit
	}
	if moveLo {
		lo = hi - selection.MinExtent
		if lo < 0 {
			lo, hi = 0, selection.MinExtent
		}
		return lo, hi
	}
	hi = lo + selection.MinExtent
	if hi > limit {
		lo, hi = limit-selection.MinExtent, limit
	}
	return lo, hi
}

// Release ends the active gesture and leaves the pixels floating.
func (t *Transform) Release() {
	if t.state == Active {
		t.state = Floating
	}
}

// Cancel resolves a gesture interrupted by lost pointer tracking. The
// transform is released rather than discarded so no pixels are lost.
func (t *Transform) Cancel() { t.Release() }

// Resume starts another gesture on a floating selection without lifting the
// pixels again.
func (t *Transform) Resume(mode Mode, handle Handle, p r2.Vec) bool {
	if t.state != Floating {
		return false
	}
	if mode == ModeResize && handle == HandleNone {
		return false
	}
	t.Mode = mode
	t.Handle = handle
	t.state = Active
	t.mark(p)
	return true
}

// Commit writes the floating pixels into surface at CurrentBounds. A
// transform commits at most once.
func (t *Transform) Commit(surface *image.NRGBA) {
	if t.state == Committed || surface == nil {
		return
	}
	pixelops.Blit(surface, t.Snapshot, t.target())
	t.state = Committed
}

// Composite returns base with the floating pixels drawn over it at
// CurrentBounds. base is not modified.
func (t *Transform) Composite(base *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(base.Bounds())
	copy(out.Pix, base.Pix)
	if t.state != Committed {
		pixelops.Blit(out, t.Snapshot, t.target())
	}
	return out
}

// target is the pixel rectangle the snapshot lands on.
func (t *Transform) target() image.Rectangle {
	return t.CurrentBounds.Round()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
