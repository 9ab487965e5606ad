// Package viewport maps device coordinates onto the raster world space.
package viewport

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// MinScale and MaxScale bound the zoom factor.
	MinScale = 0.2
	MaxScale = 8.0
)

// Transform is a uniform scale plus translation between device and world
// space: device = world*Scale + Offset.
type Transform struct {
	Scale  float64
	Offset r2.Vec
}

// Identity returns a transform with scale 1 and no offset.
func Identity() Transform { return Transform{Scale: 1} }

// ToWorld converts a device point into world coordinates.
func (t Transform) ToWorld(p r2.Vec) r2.Vec {
	s := t.scale()
	return r2.Scale(1/s, r2.Sub(p, t.Offset))
}

// ToDevice converts a world point into device coordinates.
func (t Transform) ToDevice(p r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(t.scale(), p), t.Offset)
}

// ZoomAt multiplies the scale by factor while keeping the world point under
// the device point p fixed.
func (t *Transform) ZoomAt(p r2.Vec, factor float64) {
	if factor <= 0 {
		return
	}
	anchor := t.ToWorld(p)
	t.Scale = clampScale(t.scale() * factor)
	t.Offset = r2.Sub(p, r2.Scale(t.Scale, anchor))
}

// Pan shifts the offset by a device-space delta.
func (t *Transform) Pan(d r2.Vec) {
	t.Offset = r2.Add(t.Offset, d)
}

// Fit picks the largest scale that shows the whole canvas inside view and
// centres the canvas.
func (t *Transform) Fit(canvas image.Point, view image.Rectangle) {
	if canvas.X <= 0 || canvas.Y <= 0 || view.Empty() {
		*t = Identity()
		return
	}
	zx := float64(view.Dx()) / float64(canvas.X)
	zy := float64(view.Dy()) / float64(canvas.Y)
	z := zx
	if zy < z {
		z = zy
	}
	t.Scale = clampScale(z)
	w := float64(canvas.X) * t.Scale
	h := float64(canvas.Y) * t.Scale
	t.Offset = r2.Vec{
		X: float64(view.Min.X) + (float64(view.Dx())-w)/2,
		Y: float64(view.Min.Y) + (float64(view.Dy())-h)/2,
	}
}

// DeviceRect returns the device rectangle covering the world rectangle r.
func (t Transform) DeviceRect(r image.Rectangle) image.Rectangle {
	min := t.ToDevice(r2.Vec{X: float64(r.Min.X), Y: float64(r.Min.Y)})
	max := t.ToDevice(r2.Vec{X: float64(r.Max.X), Y: float64(r.Max.Y)})
	return image.Rect(int(min.X), int(min.Y), int(max.X), int(max.Y))
}

func (t Transform) scale() float64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
