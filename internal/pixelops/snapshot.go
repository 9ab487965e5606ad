package pixelops

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Capture copies the pixels of img inside r whose mask value is set into a
// new zero-origin surface. Unmasked pixels stay transparent.
func Capture(img *image.NRGBA, r image.Rectangle, mask *image.Alpha) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	src := r.Intersect(img.Bounds())
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if mask != nil && mask.AlphaAt(x, y).A == 0 {
				continue
			}
			out.SetNRGBA(x-r.Min.X, y-r.Min.Y, img.NRGBAAt(x, y))
		}
	}
	return out
}

// ClearMasked makes the pixels of img inside r transparent where mask is set.
func ClearMasked(img *image.NRGBA, r image.Rectangle, mask *image.Alpha) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if mask != nil && mask.AlphaAt(x, y).A == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{})
		}
	}
}

// Blit scales snap into r and composites it over img. Pixels of img outside
// r are never written.
func Blit(img *image.NRGBA, snap *image.NRGBA, r image.Rectangle) {
	if img == nil || snap == nil || r.Empty() || snap.Bounds().Empty() {
		return
	}
	if r.Size() == snap.Bounds().Size() {
		Replace(img, translated(snap, r.Min), r)
		return
	}
	scaled := image.NewNRGBA(r)
	xdraw.NearestNeighbor.Scale(scaled, r, snap, snap.Bounds(), draw.Src, nil)
	Replace(img, scaled, r)
}

// translated returns a view of snap whose bounds start at min.
func translated(snap *image.NRGBA, min image.Point) *image.NRGBA {
	v := *snap
	v.Rect = snap.Rect.Add(min.Sub(snap.Rect.Min))
	return &v
}
