package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the frame.
type ShadowOptions struct {
	Radius int
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow that stays visible at the
// minimum zoom.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 12,
		Offset: image.Pt(6, 6),
	}
}

// shadowCache keeps the last blurred mask; the frame only changes size on
// zoom or resize.
type shadowCache struct {
	size image.Point
	opts ShadowOptions
	mask *image.Gray
}

// get returns the blurred coverage of a size-sized rectangle, padded by the
// radius on every side.
func (c *shadowCache) get(size image.Point, opts ShadowOptions) *image.Gray {
	if c.mask != nil && c.size == size && c.opts == opts {
		return c.mask
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}
	mask := image.NewGray(image.Rect(0, 0, size.X+2*radius, size.Y+2*radius))
	solid := image.Rect(radius, radius, radius+size.X, radius+size.Y)
	draw.Draw(mask, solid, image.NewUniform(color.Gray{Y: 0xff}), image.Point{}, draw.Src)
	c.size, c.opts, c.mask = size, opts, blurGray(mask, radius)
	return c.mask
}

// drawShadow paints the shadow of the frame rectangle frame onto dst.
func (c *shadowCache) draw(dst *image.RGBA, frame image.Rectangle, opts ShadowOptions, col color.RGBA) {
	if frame.Empty() || col.A == 0 {
		return
	}
	mask := c.get(frame.Size(), opts)
	r := opts.Radius
	if r < 0 {
		r = 0
	}
	at := frame.Min.Add(opts.Offset).Sub(image.Pt(r, r))
	draw.DrawMask(dst, mask.Bounds().Add(at), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// blurGray applies a separable box blur with the given radius.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	boxPass(w, h, radius,
		func(line, i int) uint8 { return src.Pix[line*src.Stride+i] },
		func(line, i int, v uint8) { tmp.Pix[line*tmp.Stride+i] = v })
	boxPass(h, w, radius,
		func(line, i int) uint8 { return tmp.Pix[i*tmp.Stride+line] },
		func(line, i int, v uint8) { dst.Pix[i*dst.Stride+line] = v })
	return dst
}

// boxPass averages n samples along each of lines lines using prefix sums.
func boxPass(n, lines, radius int, get func(line, i int) uint8, set func(line, i int, v uint8)) {
	prefix := make([]int, n+1)
	for line := 0; line < lines; line++ {
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(get(line, i))
		}
		for i := 0; i < n; i++ {
			i0 := max(i-radius, 0)
			i1 := min(i+radius, n-1)
			set(line, i, uint8((prefix[i1+1]-prefix[i0])/(i1-i0+1)))
		}
	}
}
