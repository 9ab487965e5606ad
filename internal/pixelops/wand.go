package pixelops

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
)

// MagicWand grows a 4-connected region from seed, accepting pixels whose RGB
// distance to the seed colour is within tolerance. Alpha is ignored. It
// reports false when seed lies outside the surface.
func MagicWand(img *image.NRGBA, seed r2.Vec, tolerance int) (*selection.Magic, bool) {
	if img == nil {
		return nil, false
	}
	b := img.Bounds()
	start := image.Pt(int(math.Floor(seed.X)), int(math.Floor(seed.Y)))
	if !start.In(b) {
		return nil, false
	}
	if tolerance < 0 {
		tolerance = 0
	}
	if tolerance > 255 {
		tolerance = 255
	}
	limit := tolerance * tolerance
	ref := img.NRGBAAt(start.X, start.Y)

	w, h := b.Dx(), b.Dy()
	mask := selection.NewMask(w, h)
	visited := selection.NewMask(w, h)
	stack := []image.Point{start.Sub(b.Min)}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h || visited.Get(p.X, p.Y) {
			continue
		}
		visited.Set(p.X, p.Y)
		c := img.NRGBAAt(p.X+b.Min.X, p.Y+b.Min.Y)
		dr := int(c.R) - int(ref.R)
		dg := int(c.G) - int(ref.G)
		db := int(c.B) - int(ref.B)
		if dr*dr+dg*dg+db*db > limit {
			continue
		}
		mask.Set(p.X, p.Y)
		stack = append(stack,
			image.Pt(p.X, p.Y-1),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X+1, p.Y),
		)
	}
	return &selection.Magic{Mask: mask, Box: selection.BoxFromRect(mask.Tight())}, true
}
