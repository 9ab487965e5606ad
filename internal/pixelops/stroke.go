package pixelops

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
)

// kappa places cubic control points so a quarter arc approximates a circle.
const kappa = 0.5522847498

// Style describes how strokes and shapes are painted.
type Style struct {
	Color color.NRGBA
	Width float64
	// Erase removes alpha along the path instead of painting Color.
	Erase bool
}

func (s Style) radius() float64 {
	if s.Width < 1 {
		return 0.5
	}
	return s.Width / 2
}

// segment is one straight piece of a stroked path.
type segment struct{ a, b r2.Vec }

// Stroke draws a round-capped segment from a to b onto img, constrained to
// sel when it is non-nil. Consecutive calls sharing an end point join round.
func Stroke(img *image.NRGBA, from, to r2.Vec, style Style, sel selection.Selection) {
	strokeSegments(img, []segment{{from, to}}, style, sel)
}

// strokeSegments rasterizes all segs into one coverage mask so overlapping
// pieces are painted once, then applies it through the selection.
func strokeSegments(img *image.NRGBA, segs []segment, style Style, sel selection.Selection) {
	if img == nil || len(segs) == 0 {
		return
	}
	cov, origin := coverage(img.Bounds(), segs, style.radius())
	if cov == nil {
		return
	}
	area := cov.Bounds().Add(origin)
	if m, ok := sel.(*selection.Magic); ok && m != nil {
		applyThroughMask(img, cov, origin, area, style, m.Mask)
		return
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			c := cov.AlphaAt(x-origin.X, y-origin.Y).A
			if c == 0 {
				continue
			}
			if sel != nil && !selection.Contains(sel, pixelCentre(image.Pt(x, y))) {
				continue
			}
			d := img.NRGBAAt(x, y)
			if style.Erase {
				img.SetNRGBA(x, y, erase(d, c))
			} else {
				img.SetNRGBA(x, y, over(style.Color, d, c))
			}
		}
	}
}

// applyThroughMask renders the coverage onto a scratch surface, keeps only
// the pixels inside mask and merges the result into img.
func applyThroughMask(img *image.NRGBA, cov *image.Alpha, origin image.Point, area image.Rectangle, style Style, mask *selection.Mask) {
	scratch := image.NewNRGBA(area)
	paint := style.Color
	if style.Erase {
		paint = color.NRGBA{A: 0xff}
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			c := cov.AlphaAt(x-origin.X, y-origin.Y).A
			if c == 0 {
				continue
			}
			p := paint
			p.A = uint8(uint32(paint.A) * uint32(c) / 255)
			scratch.SetNRGBA(x, y, p)
		}
	}
	MaskIntersect(scratch, mask, area)
	if style.Erase {
		EraseWhereOpaque(img, scratch, area)
	} else {
		Replace(img, scratch, area)
	}
}

// coverage rasterizes capsules of radius r around segs. The returned mask is
// local to the clipped bounding box whose top-left corner is origin.
func coverage(bounds image.Rectangle, segs []segment, r float64) (*image.Alpha, image.Point) {
	min, max := segs[0].a, segs[0].a
	for _, s := range segs {
		for _, p := range [2]r2.Vec{s.a, s.b} {
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
		}
	}
	pad := r + 1
	box := image.Rect(
		int(math.Floor(min.X-pad)), int(math.Floor(min.Y-pad)),
		int(math.Ceil(max.X+pad)), int(math.Ceil(max.Y+pad)),
	).Intersect(bounds)
	if box.Empty() {
		return nil, image.Point{}
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.DrawOp = draw.Src
	off := r2.Vec{X: float64(box.Min.X), Y: float64(box.Min.Y)}
	for _, s := range segs {
		capsule(z, r2.Sub(s.a, off), r2.Sub(s.b, off), r)
	}
	cov := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(cov, cov.Bounds(), image.Opaque, image.Point{})
	return cov, box.Min
}

// capsule adds a round-capped segment outline to z. Every capsule is traced
// with the same orientation so overlaps accumulate instead of cancelling.
func capsule(z *vector.Rasterizer, a, b r2.Vec, r float64) {
	u := r2.Sub(b, a)
	l := math.Hypot(u.X, u.Y)
	if l == 0 {
		u = r2.Vec{X: 1}
	} else {
		u = r2.Scale(1/l, u)
	}
	n := r2.Vec{X: -u.Y, Y: u.X}
	neg := func(v r2.Vec) r2.Vec { return r2.Scale(-1, v) }

	moveTo(z, r2.Add(a, r2.Scale(r, n)))
	lineTo(z, r2.Add(b, r2.Scale(r, n)))
	arc(z, b, n, u, r)
	arc(z, b, u, neg(n), r)
	lineTo(z, r2.Add(a, r2.Scale(-r, n)))
	arc(z, a, neg(n), neg(u), r)
	arc(z, a, neg(u), n, r)
	z.ClosePath()
}

// arc appends a quarter circle around c from direction v0 to v1.
func arc(z *vector.Rasterizer, c, v0, v1 r2.Vec, r float64) {
	p0 := r2.Add(c, r2.Scale(r, v0))
	p1 := r2.Add(c, r2.Scale(r, v1))
	c0 := r2.Add(p0, r2.Scale(kappa*r, v1))
	c1 := r2.Add(p1, r2.Scale(kappa*r, v0))
	z.CubeTo(float32(c0.X), float32(c0.Y), float32(c1.X), float32(c1.Y), float32(p1.X), float32(p1.Y))
}

func moveTo(z *vector.Rasterizer, p r2.Vec) { z.MoveTo(float32(p.X), float32(p.Y)) }
func lineTo(z *vector.Rasterizer, p r2.Vec) { z.LineTo(float32(p.X), float32(p.Y)) }
