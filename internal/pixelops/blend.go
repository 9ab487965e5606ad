// Package pixelops implements the selection-aware raster algorithms: flood
// fill, magic wand region growing, stroke and shape rasterization, and the
// per-pixel blend primitives they share.
package pixelops

import (
	"image"
	"image/color"

	"github.com/example/framepaint/internal/selection"
)

// Replace paints src onto dst inside r with normal source-over compositing,
// so opaque source pixels replace the destination outright.
func Replace(dst, src *image.NRGBA, r image.Rectangle) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			if s.A == 0 {
				continue
			}
			if s.A == 0xff {
				dst.SetNRGBA(x, y, s)
				continue
			}
			dst.SetNRGBA(x, y, over(s, dst.NRGBAAt(x, y), 0xff))
		}
	}
}

// EraseWhereOpaque removes alpha from dst in proportion to the alpha of src,
// the destination-out operator.
func EraseWhereOpaque(dst, src *image.NRGBA, r image.Rectangle) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := src.NRGBAAt(x, y).A
			if a == 0 {
				continue
			}
			dst.SetNRGBA(x, y, erase(dst.NRGBAAt(x, y), a))
		}
	}
}

// MaskIntersect keeps src pixels only where mask is set, the
// destination-in operator against a binary mask.
func MaskIntersect(src *image.NRGBA, mask *selection.Mask, r image.Rectangle) {
	r = r.Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !mask.Get(x, y) {
				src.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
}

// over composites straight-alpha s at the extra opacity k (0..255) onto d.
func over(s, d color.NRGBA, k uint8) color.NRGBA {
	sa := float64(s.A) * float64(k) / (255 * 255)
	if sa <= 0 {
		return d
	}
	da := float64(d.A) / 255
	oa := sa + da*(1-sa)
	if oa <= 0 {
		return color.NRGBA{}
	}
	mix := func(sc, dc uint8) uint8 {
		v := (float64(sc)*sa + float64(dc)*da*(1-sa)) / oa
		return uint8(v + 0.5)
	}
	return color.NRGBA{
		R: mix(s.R, d.R),
		G: mix(s.G, d.G),
		B: mix(s.B, d.B),
		A: uint8(oa*255 + 0.5),
	}
}

// Over is the exported straight-alpha source-over used by layer compositing.
// opacity scales the source alpha (0..255).
func Over(s, d color.NRGBA, opacity uint8) color.NRGBA { return over(s, d, opacity) }

func erase(d color.NRGBA, a uint8) color.NRGBA {
	na := uint32(d.A) * uint32(255-a) / 255
	if na == 0 {
		return color.NRGBA{}
	}
	d.A = uint8(na)
	return d
}
