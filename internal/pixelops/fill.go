package pixelops

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
)

// FloodFill replaces the 4-connected region of pixels exactly matching the
// seed colour with fill. Pixels outside sel, when sel is non-nil, are left
// alone. It reports whether any pixel changed.
func FloodFill(img *image.NRGBA, seed r2.Vec, fill color.NRGBA, sel selection.Selection) bool {
	if img == nil {
		return false
	}
	b := img.Bounds()
	start := image.Pt(int(math.Floor(seed.X)), int(math.Floor(seed.Y)))
	if !start.In(b) {
		return false
	}
	target := img.NRGBAAt(start.X, start.Y)
	if target == fill {
		return false
	}

	visited := selection.NewMask(b.Dx(), b.Dy())
	accept := func(p image.Point) bool {
		if !p.In(b) || visited.Get(p.X-b.Min.X, p.Y-b.Min.Y) {
			return false
		}
		visited.Set(p.X-b.Min.X, p.Y-b.Min.Y)
		if sel != nil && !selection.Contains(sel, pixelCentre(p)) {
			return false
		}
		return img.NRGBAAt(p.X, p.Y) == target
	}

	changed := false
	stack := []image.Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !accept(p) {
			continue
		}
		img.SetNRGBA(p.X, p.Y, fill)
		changed = true
		stack = append(stack,
			image.Pt(p.X, p.Y-1),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X+1, p.Y),
		)
	}
	return changed
}

func pixelCentre(p image.Point) r2.Vec {
	return r2.Vec{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}
