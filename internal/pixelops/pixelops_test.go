package pixelops

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
	red   = color.NRGBA{255, 0, 0, 255}
)

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func countColour(img *image.NRGBA, c color.NRGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFloodFillSameColourIsNoop(t *testing.T) {
	img := filled(10, 10, white)
	before := append([]uint8(nil), img.Pix...)
	assert.False(t, FloodFill(img, r2.Vec{X: 5, Y: 5}, white, nil))
	assert.Equal(t, before, img.Pix)
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	img := filled(10, 10, white)
	for y := 0; y < 10; y++ {
		img.SetNRGBA(5, y, black)
	}
	require.True(t, FloodFill(img, r2.Vec{X: 1, Y: 1}, red, nil))
	assert.Equal(t, red, img.NRGBAAt(4, 9))
	assert.Equal(t, black, img.NRGBAAt(5, 3))
	assert.Equal(t, white, img.NRGBAAt(6, 3))
	assert.Equal(t, 50, countColour(img, red))
}

func TestFloodFillRespectsSelection(t *testing.T) {
	img := filled(20, 20, white)
	sel := selection.Rect{X: 0, Y: 0, W: 10, H: 10}
	require.True(t, FloodFill(img, r2.Vec{X: 2, Y: 2}, red, sel))
	assert.Equal(t, red, img.NRGBAAt(9, 9))
	assert.Equal(t, white, img.NRGBAAt(10, 10))
	assert.Equal(t, 100, countColour(img, red))
}

func TestFloodFillOutsideSurface(t *testing.T) {
	img := filled(4, 4, white)
	assert.False(t, FloodFill(img, r2.Vec{X: -1, Y: 2}, red, nil))
	assert.False(t, FloodFill(img, r2.Vec{X: 4, Y: 0}, red, nil))
	assert.False(t, FloodFill(nil, r2.Vec{}, red, nil))
}

func TestMagicWandToleranceZero(t *testing.T) {
	img := filled(20, 20, white)
	for y := 5; y < 9; y++ {
		for x := 3; x < 12; x++ {
			img.SetNRGBA(x, y, red)
		}
	}
	// a same-coloured island not connected to the seed region
	img.SetNRGBA(18, 18, red)

	m, ok := MagicWand(img, r2.Vec{X: 4.7, Y: 6.2}, 0)
	require.True(t, ok)
	assert.Equal(t, 36, m.Mask.Count())
	assert.Equal(t, selection.Box{X: 3, Y: 5, W: 9, H: 4}, m.Box)
	assert.False(t, m.Mask.Get(18, 18))
}

func TestMagicWandToleranceIgnoresAlpha(t *testing.T) {
	img := filled(4, 1, color.NRGBA{100, 100, 100, 255})
	img.SetNRGBA(1, 0, color.NRGBA{103, 104, 100, 10})
	img.SetNRGBA(2, 0, color.NRGBA{110, 100, 100, 255})

	m, ok := MagicWand(img, r2.Vec{X: 0, Y: 0}, 5)
	require.True(t, ok)
	assert.True(t, m.Mask.Get(1, 0))
	assert.False(t, m.Mask.Get(2, 0))
	assert.False(t, m.Mask.Get(3, 0), "region growth must stop at the rejected pixel")
}

func TestMagicWandOutside(t *testing.T) {
	_, ok := MagicWand(filled(4, 4, white), r2.Vec{X: 10, Y: 1}, 0)
	assert.False(t, ok)
}

func TestWandFillScenario(t *testing.T) {
	img := filled(100, 100, white)
	full := selection.Box{X: 0, Y: 0, W: 100, H: 100}

	m, ok := MagicWand(img, r2.Vec{X: 50, Y: 50}, 0)
	require.True(t, ok)
	assert.Equal(t, full, selection.Bounds(m))

	require.True(t, FloodFill(img, r2.Vec{X: 50, Y: 50}, black, m))
	assert.Equal(t, 100*100, countColour(img, black))

	m, ok = MagicWand(img, r2.Vec{X: 50, Y: 50}, 0)
	require.True(t, ok)
	assert.Equal(t, full, selection.Bounds(m))
}

func TestStrokeClipsToRect(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 20))
	sel := selection.Rect{X: 20, Y: 0, W: 20, H: 20}
	Stroke(img, r2.Vec{X: 0, Y: 10}, r2.Vec{X: 100, Y: 10}, Style{Color: red, Width: 4}, sel)

	assert.Equal(t, red, img.NRGBAAt(30, 10))
	assert.Equal(t, uint8(0), img.NRGBAAt(10, 10).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(60, 10).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(30, 2).A)
}

func TestStrokeRoundCap(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	Stroke(img, r2.Vec{X: 20, Y: 20}, r2.Vec{X: 20, Y: 20}, Style{Color: red, Width: 10}, nil)
	assert.Equal(t, red, img.NRGBAAt(20, 20))
	assert.Equal(t, red, img.NRGBAAt(23, 20))
	assert.Equal(t, uint8(0), img.NRGBAAt(24, 24).A, "corner of the bounding square is outside the dot")
}

func TestStrokeErase(t *testing.T) {
	img := filled(40, 20, red)
	Stroke(img, r2.Vec{X: 5, Y: 10}, r2.Vec{X: 35, Y: 10}, Style{Width: 6, Erase: true}, nil)
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(20, 10))
	assert.Equal(t, red, img.NRGBAAt(20, 1))
}

func TestStrokeThroughMagicMask(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	mask := selection.NewMask(40, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			mask.Set(x, y)
		}
	}
	sel := &selection.Magic{Mask: mask, Box: selection.Box{W: 20, H: 20}}
	Stroke(img, r2.Vec{X: 2, Y: 10}, r2.Vec{X: 38, Y: 10}, Style{Color: red, Width: 4}, sel)
	assert.Equal(t, red, img.NRGBAAt(10, 10))
	assert.Equal(t, uint8(0), img.NRGBAAt(30, 10).A)

	// erasing through the same mask only removes the masked half
	base := filled(40, 20, black)
	Stroke(base, r2.Vec{X: 2, Y: 10}, r2.Vec{X: 38, Y: 10}, Style{Width: 4, Erase: true}, sel)
	assert.Equal(t, uint8(0), base.NRGBAAt(10, 10).A)
	assert.Equal(t, black, base.NRGBAAt(30, 10))
}

func TestCommitShapeCoincidingPoints(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	p := r2.Vec{X: 3, Y: 3}
	assert.False(t, CommitShape(img, ShapeRect, p, p, Style{Color: red, Width: 2}, nil, false))
	assert.Equal(t, 100, countColour(img, color.NRGBA{}))
}

func TestCommitShapeRectOutline(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	ok := CommitShape(img, ShapeRect, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 50, Y: 50}, Style{Color: red, Width: 2}, nil, false)
	require.True(t, ok)
	assert.Equal(t, red, img.NRGBAAt(10, 30))
	assert.Equal(t, red, img.NRGBAAt(30, 49))
	assert.Equal(t, uint8(0), img.NRGBAAt(30, 30).A)
}

func TestShapePreviewLeavesOnlyLatest(t *testing.T) {
	overlay := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	style := Style{Color: red, Width: 2}
	ShapePreview(overlay, ShapeLine, r2.Vec{X: 0, Y: 5}, r2.Vec{X: 50, Y: 5}, style, false)
	require.Equal(t, red, overlay.NRGBAAt(25, 5))
	ShapePreview(overlay, ShapeLine, r2.Vec{X: 0, Y: 40}, r2.Vec{X: 50, Y: 40}, style, false)
	assert.Equal(t, uint8(0), overlay.NRGBAAt(25, 5).A)
	assert.Equal(t, red, overlay.NRGBAAt(25, 40))
}

func TestConstrain(t *testing.T) {
	p := Constrain(ShapeLine, r2.Vec{}, r2.Vec{X: 10, Y: 1})
	assert.InDelta(t, 0, p.Y, 1e-9)
	assert.InDelta(t, 10.0498, p.X, 1e-3)

	p = Constrain(ShapeLine, r2.Vec{}, r2.Vec{X: 10, Y: -9})
	assert.InDelta(t, p.X, -p.Y, 1e-9)

	p = Constrain(ShapeEllipse, r2.Vec{X: 5, Y: 5}, r2.Vec{X: -5, Y: 8})
	assert.Equal(t, r2.Vec{X: -5, Y: 15}, p)
}

func TestCaptureClearBlit(t *testing.T) {
	img := filled(20, 20, red)
	r := image.Rect(2, 2, 6, 6)
	mask := image.NewAlpha(img.Bounds())
	mask.SetAlpha(3, 3, color.Alpha{A: 0xff})
	mask.SetAlpha(4, 4, color.Alpha{A: 0xff})

	snap := Capture(img, r, mask)
	assert.Equal(t, image.Rect(0, 0, 4, 4), snap.Bounds())
	assert.Equal(t, red, snap.NRGBAAt(1, 1))
	assert.Equal(t, uint8(0), snap.NRGBAAt(0, 0).A)

	ClearMasked(img, r, mask)
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(3, 3))
	assert.Equal(t, red, img.NRGBAAt(2, 2))

	Blit(img, snap, image.Rect(10, 10, 14, 14))
	assert.Equal(t, red, img.NRGBAAt(11, 11))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(3, 3))

	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	Blit(dst, snap, image.Rect(0, 0, 8, 8))
	assert.Equal(t, red, dst.NRGBAAt(2, 2))
	assert.Equal(t, red, dst.NRGBAAt(3, 3))
	assert.Equal(t, uint8(0), dst.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), dst.NRGBAAt(8, 8).A)
}

func TestBlendPrimitives(t *testing.T) {
	dst := filled(2, 1, black)
	src := image.NewNRGBA(dst.Bounds())
	src.SetNRGBA(0, 0, red)
	Replace(dst, src, dst.Bounds())
	assert.Equal(t, red, dst.NRGBAAt(0, 0))
	assert.Equal(t, black, dst.NRGBAAt(1, 0))

	EraseWhereOpaque(dst, src, dst.Bounds())
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(0, 0))
	assert.Equal(t, black, dst.NRGBAAt(1, 0))

	mask := selection.NewMask(2, 1)
	mask.Set(1, 0)
	MaskIntersect(src, mask, src.Bounds())
	assert.Equal(t, color.NRGBA{}, src.NRGBAAt(0, 0))

	half := Over(color.NRGBA{255, 255, 255, 255}, black, 128)
	assert.InDelta(t, 128, int(half.R), 1)
	assert.Equal(t, uint8(255), half.A)
}
