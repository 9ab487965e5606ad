package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
)

// gradient returns a surface where every pixel encodes its own position.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return img
}

func clone(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

func TestBeginRejects(t *testing.T) {
	img := gradient(50, 50)
	p := r2.Vec{X: 15, Y: 15}

	_, ok := Begin(img, nil, ModeMove, HandleNone, p)
	assert.False(t, ok)

	magic := &selection.Magic{Mask: selection.NewMask(50, 50), Box: selection.Box{W: 50, H: 50}}
	_, ok = Begin(img, magic, ModeMove, HandleNone, p)
	assert.False(t, ok)

	_, ok = Begin(img, selection.Rect{X: 10, Y: 10, W: 10, H: 10}, ModeResize, HandleNone, p)
	assert.False(t, ok)

	_, ok = Begin(img, selection.Rect{X: 60, Y: 60, W: 10, H: 10}, ModeMove, HandleNone, p)
	assert.False(t, ok, "bounds outside the surface clamp to nothing")

	assert.Equal(t, gradient(50, 50).Pix, img.Pix)
}

func TestBeginLiftsPixels(t *testing.T) {
	img := gradient(50, 50)
	tr, ok := Begin(img, selection.Rect{X: 10, Y: 10, W: 10, H: 10}, ModeMove, HandleNone, r2.Vec{X: 15, Y: 15})
	require.True(t, ok)

	assert.Equal(t, Active, tr.State())
	assert.Equal(t, selection.Box{X: 10, Y: 10, W: 10, H: 10}, tr.StartBounds)
	assert.Equal(t, image.Rect(0, 0, 10, 10), tr.Snapshot.Bounds())
	assert.Equal(t, color.NRGBA{R: 12, G: 13, B: 7, A: 255}, tr.Snapshot.NRGBAAt(2, 3))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(15, 15))
	assert.Equal(t, color.NRGBA{R: 5, G: 5, B: 7, A: 255}, img.NRGBAAt(5, 5))
	assert.Equal(t, color.NRGBA{R: 20, G: 20, B: 7, A: 255}, img.NRGBAAt(20, 20))
}

func TestMoveTranslatesAndClamps(t *testing.T) {
	img := gradient(50, 50)
	tr, ok := Begin(img, selection.Rect{X: 10, Y: 10, W: 10, H: 10}, ModeMove, HandleNone, r2.Vec{X: 15, Y: 15})
	require.True(t, ok)

	tr.Update(r2.Vec{X: 20, Y: 18})
	assert.Equal(t, selection.Box{X: 15, Y: 13, W: 10, H: 10}, tr.CurrentBounds)
	assert.Equal(t, selection.Rect{X: 15, Y: 13, W: 10, H: 10}, tr.Selection)

	tr.Update(r2.Vec{X: 200, Y: -200})
	assert.Equal(t, selection.Box{X: 40, Y: 0, W: 10, H: 10}, tr.CurrentBounds)
	assert.Equal(t, selection.Rect{X: 40, Y: 0, W: 10, H: 10}, tr.Selection)
}

func TestResizeKeepsOppositeEdges(t *testing.T) {
	img := gradient(50, 50)
	sel := selection.Rect{X: 10, Y: 10, W: 10, H: 10}
	tr, ok := Begin(img, sel, ModeResize, HandleSE, r2.Vec{X: 20, Y: 20})
	require.True(t, ok)

	tr.Update(r2.Vec{X: 30, Y: 25})
	assert.Equal(t, selection.Box{X: 10, Y: 10, W: 20, H: 15}, tr.CurrentBounds)
	assert.Equal(t, selection.Rect{X: 10, Y: 10, W: 20, H: 15}, tr.Selection)

	tr.Update(r2.Vec{X: 0, Y: 20})
	assert.Equal(t, selection.Box{X: 10, Y: 10, W: 4, H: 10}, tr.CurrentBounds, "minimum extent")
}

func TestResizeEdgeHandles(t *testing.T) {
	cases := []struct {
		handle Handle
		to     r2.Vec
		want   selection.Box
	}{
		{HandleN, r2.Vec{X: 99, Y: 5}, selection.Box{X: 10, Y: 5, W: 10, H: 15}},
		{HandleW, r2.Vec{X: 4, Y: 99}, selection.Box{X: 4, Y: 10, W: 16, H: 10}},
		{HandleE, r2.Vec{X: 25, Y: 0}, selection.Box{X: 10, Y: 10, W: 15, H: 10}},
		{HandleS, r2.Vec{X: 0, Y: 80}, selection.Box{X: 10, Y: 10, W: 10, H: 40}},
		{HandleNE, r2.Vec{X: 22, Y: 8}, selection.Box{X: 10, Y: 8, W: 12, H: 12}},
		{HandleSW, r2.Vec{X: 8, Y: 22}, selection.Box{X: 8, Y: 10, W: 12, H: 12}},
		{HandleNW, r2.Vec{X: 40, Y: 40}, selection.Box{X: 16, Y: 16, W: 4, H: 4}},
	}
	for _, c := range cases {
		t.Run(c.handle.String(), func(t *testing.T) {
			img := gradient(50, 50)
			start := HandlePoints(selection.Box{X: 10, Y: 10, W: 10, H: 10})[c.handle-1]
			tr, ok := Begin(img, selection.Rect{X: 10, Y: 10, W: 10, H: 10}, ModeResize, c.handle, start)
			require.True(t, ok)
			tr.Update(c.to)
			assert.Equal(t, c.want, tr.CurrentBounds)
		})
	}
}

func TestResizeWidensNarrowSelection(t *testing.T) {
	cases := []struct {
		name   string
		sel    selection.Rect
		handle Handle
		delta  r2.Vec
		want   selection.Box
	}{
		{"west handle pinned at canvas edge", selection.Rect{X: 0, Y: 10, W: 2, H: 20}, HandleW, r2.Vec{X: 5}, selection.Box{X: 0, Y: 10, W: 4, H: 20}},
		{"undriven axis", selection.Rect{X: 10, Y: 10, W: 2, H: 20}, HandleS, r2.Vec{Y: 5}, selection.Box{X: 10, Y: 10, W: 4, H: 25}},
		{"undriven axis at far edge", selection.Rect{X: 48, Y: 10, W: 2, H: 20}, HandleS, r2.Vec{Y: 5}, selection.Box{X: 46, Y: 10, W: 4, H: 25}},
		{"north handle narrow height", selection.Rect{X: 10, Y: 0, W: 20, H: 3}, HandleN, r2.Vec{Y: 2}, selection.Box{X: 10, Y: 0, W: 20, H: 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img := gradient(50, 50)
			start := HandlePoints(selection.Bounds(c.sel))[c.handle-1]
			tr, ok := Begin(img, c.sel, ModeResize, c.handle, start)
			require.True(t, ok)
			tr.Update(r2.Add(start, c.delta))
			assert.Equal(t, c.want, tr.CurrentBounds)
			assert.Equal(t, selection.Rect{X: c.want.X, Y: c.want.Y, W: c.want.W, H: c.want.H}, tr.Selection)
		})
	}
}

func TestResizeLassoFollowsBounds(t *testing.T) {
	img := gradient(50, 50)
	lasso := selection.Lasso{Points: []r2.Vec{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 15, Y: 20}}}
	tr, ok := Begin(img, lasso, ModeResize, HandleE, r2.Vec{X: 20, Y: 15})
	require.True(t, ok)
	tr.Update(r2.Vec{X: 30, Y: 15})
	got := selection.Bounds(tr.Selection)
	assert.InDelta(t, 10, got.X, 1e-9)
	assert.InDelta(t, 20, got.W, 1e-9)
	assert.InDelta(t, 10, got.H, 1e-9)
}

func TestReleaseFloatsAndResume(t *testing.T) {
	img := gradient(50, 50)
	tr, ok := Begin(img, selection.Ellipse{CX: 15, CY: 15, RX: 5, RY: 5}, ModeMove, HandleNone, r2.Vec{X: 15, Y: 15})
	require.True(t, ok)
	tr.Update(r2.Vec{X: 18, Y: 15})
	tr.Release()
	assert.Equal(t, Floating, tr.State())

	tr.Update(r2.Vec{X: 40, Y: 40})
	assert.Equal(t, selection.Box{X: 13, Y: 10, W: 10, H: 10}, tr.CurrentBounds, "floating ignores updates")

	assert.False(t, tr.Resume(ModeResize, HandleNone, r2.Vec{}))
	require.True(t, tr.Resume(ModeMove, HandleNone, r2.Vec{X: 0, Y: 0}))
	tr.Update(r2.Vec{X: 2, Y: 1})
	assert.Equal(t, selection.Box{X: 15, Y: 11, W: 10, H: 10}, tr.CurrentBounds)
	assert.Equal(t, selection.Ellipse{CX: 20, CY: 16, RX: 5, RY: 5}, tr.Selection)
	assert.False(t, tr.Resume(ModeMove, HandleNone, r2.Vec{}), "already active")
}

func TestCancelReleases(t *testing.T) {
	img := gradient(50, 50)
	tr, ok := Begin(img, selection.Rect{X: 10, Y: 10, W: 10, H: 10}, ModeMove, HandleNone, r2.Vec{X: 15, Y: 15})
	require.True(t, ok)
	tr.Cancel()
	assert.Equal(t, Floating, tr.State())
}

func TestCommitLeavesOutsidePixelsUntouched(t *testing.T) {
	orig := gradient(50, 50)
	img := clone(orig)
	tr, ok := Begin(img, selection.Rect{X: 10, Y: 10, W: 10, H: 10}, ModeMove, HandleNone, r2.Vec{X: 12, Y: 12})
	require.True(t, ok)
	tr.Update(r2.Vec{X: 27, Y: 17})
	tr.Release()
	tr.Commit(img)
	assert.Equal(t, Committed, tr.State())

	start := image.Rect(10, 10, 20, 20)
	current := image.Rect(25, 15, 35, 25)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			p := image.Pt(x, y)
			switch {
			case p.In(current):
				require.Equal(t, orig.NRGBAAt(x-15, y-5), img.NRGBAAt(x, y), "moved pixel %v", p)
			case p.In(start):
				require.Equal(t, color.NRGBA{}, img.NRGBAAt(x, y), "vacated pixel %v", p)
			default:
				require.Equal(t, orig.NRGBAAt(x, y), img.NRGBAAt(x, y), "outside pixel %v", p)
			}
		}
	}

	before := clone(img)
	tr.Commit(img)
	assert.Equal(t, before.Pix, img.Pix, "second commit is a no-op")
}

func TestCommitScalesResizedPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	red := color.NRGBA{R: 255, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, red)
		}
	}
	tr, ok := Begin(img, selection.Rect{W: 4, H: 4}, ModeResize, HandleSE, r2.Vec{X: 4, Y: 4})
	require.True(t, ok)
	tr.Update(r2.Vec{X: 8, Y: 8})
	tr.Commit(img)
	assert.Equal(t, red, img.NRGBAAt(7, 7))
	assert.Equal(t, uint8(0), img.NRGBAAt(8, 8).A)
}

func TestCompositeDoesNotTouchBase(t *testing.T) {
	img := gradient(30, 30)
	tr, ok := Begin(img, selection.Rect{X: 0, Y: 0, W: 5, H: 5}, ModeMove, HandleNone, r2.Vec{})
	require.True(t, ok)
	tr.Update(r2.Vec{X: 10, Y: 10})
	lifted := clone(img)

	out := tr.Composite(img)
	assert.Equal(t, lifted.Pix, img.Pix)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 7, A: 255}, out.NRGBAAt(11, 12))
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(1, 2))
}

func TestFloatClampsIntoExtent(t *testing.T) {
	src := gradient(10, 10)
	tr, ok := Float(image.Pt(30, 30), src, image.Pt(25, -3))
	require.True(t, ok)
	assert.Equal(t, Floating, tr.State())
	assert.Equal(t, selection.Box{X: 20, Y: 0, W: 10, H: 10}, tr.CurrentBounds)
	assert.Equal(t, selection.Rect{X: 20, Y: 0, W: 10, H: 10}, tr.Selection)

	src.SetNRGBA(0, 0, color.NRGBA{})
	assert.Equal(t, uint8(255), tr.Snapshot.NRGBAAt(0, 0).A, "snapshot is a copy")

	img := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	tr.Commit(img)
	assert.Equal(t, color.NRGBA{R: 3, G: 4, B: 7, A: 255}, img.NRGBAAt(23, 4))

	big, ok := Float(image.Pt(5, 5), gradient(8, 8), image.Pt(2, 2))
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 5, 5), big.Snapshot.Bounds())

	_, ok = Float(image.Pt(5, 5), image.NewNRGBA(image.Rectangle{}), image.Point{})
	assert.False(t, ok)
}

func TestHitTest(t *testing.T) {
	sel := selection.Rect{X: 10, Y: 10, W: 20, H: 20}

	mode, h, ok := HitTest(sel, r2.Vec{X: 30.5, Y: 9}, 2)
	require.True(t, ok)
	assert.Equal(t, ModeResize, mode)
	assert.Equal(t, HandleNE, h)

	mode, h, ok = HitTest(sel, r2.Vec{X: 20, Y: 31}, 2)
	require.True(t, ok)
	assert.Equal(t, ModeResize, mode)
	assert.Equal(t, HandleS, h)

	mode, h, ok = HitTest(sel, r2.Vec{X: 15, Y: 22}, 2)
	require.True(t, ok)
	assert.Equal(t, ModeMove, mode)
	assert.Equal(t, HandleNone, h)

	_, _, ok = HitTest(sel, r2.Vec{X: 40, Y: 40}, 2)
	assert.False(t, ok)

	magic := &selection.Magic{Mask: selection.NewMask(4, 4), Box: selection.Box{W: 4, H: 4}}
	_, _, ok = HitTest(magic, r2.Vec{X: 1, Y: 1}, 2)
	assert.False(t, ok)
}

func TestHandleRects(t *testing.T) {
	rs := HandleRects(image.Rect(0, 0, 20, 10))
	require.Len(t, rs, 8)
	assert.Equal(t, image.Rect(-4, -4, 4, 4), rs[0])
	assert.Equal(t, image.Rect(6, -4, 14, 4), rs[1])
	assert.Equal(t, image.Rect(16, 1, 24, 9), rs[3])
	assert.Equal(t, image.Rect(-4, 1, 4, 9), rs[7])
}
