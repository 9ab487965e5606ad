package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col)
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Src)
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	walkLine(x0, y0, x1, y1, func(x, y int) {
		if image.Pt(x, y).In(img.Rect) {
			img.SetRGBA(x, y, col)
		}
	})
}

// dasher draws lines whose dash pattern continues across calls, so a
// polyline keeps one rhythm from segment to segment.
type dasher struct {
	dst   *image.RGBA
	dash  int
	phase int
	a, b  color.RGBA
	// joined is set once a segment has been drawn; the next segment then
	// skips the end point they share.
	joined bool
}

func (d *dasher) line(x0, y0, x1, y1 int) {
	skip := d.joined
	d.joined = true
	walkLine(x0, y0, x1, y1, func(x, y int) {
		if skip {
			skip = false
			return
		}
		col := d.a
		if (d.phase/d.dash)%2 == 1 {
			col = d.b
		}
		d.phase++
		if image.Pt(x, y).In(d.dst.Rect) {
			d.dst.SetRGBA(x, y, col)
		}
	})
}

// walkLine visits every pixel of the Bresenham line from (x0,y0) to (x1,y1).
func walkLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}
