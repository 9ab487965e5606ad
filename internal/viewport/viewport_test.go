package viewport

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestRoundTrip(t *testing.T) {
	tr := Transform{Scale: 2.5, Offset: r2.Vec{X: 13, Y: -7}}
	p := r2.Vec{X: 41.25, Y: 9.5}
	got := tr.ToWorld(tr.ToDevice(p))
	assert.InDelta(t, p.X, got.X, 1e-9)
	assert.InDelta(t, p.Y, got.Y, 1e-9)
}

func TestZoomAtKeepsPointerAnchored(t *testing.T) {
	tr := Transform{Scale: 1, Offset: r2.Vec{X: 20, Y: 30}}
	pointer := r2.Vec{X: 200, Y: 120}
	before := tr.ToWorld(pointer)

	tr.ZoomAt(pointer, 1.5)
	after := tr.ToWorld(pointer)

	assert.InDelta(t, 1.5, tr.Scale, 1e-9)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestZoomAtClampsScale(t *testing.T) {
	tr := Identity()
	pointer := r2.Vec{X: 50, Y: 50}
	before := tr.ToWorld(pointer)
	tr.ZoomAt(pointer, 100)
	assert.Equal(t, MaxScale, tr.Scale)
	after := tr.ToWorld(pointer)
	assert.InDelta(t, before.X, after.X, 1e-9)

	tr.ZoomAt(pointer, 0.0001)
	assert.Equal(t, MinScale, tr.Scale)

	tr.ZoomAt(pointer, 0)
	assert.Equal(t, MinScale, tr.Scale, "non-positive factors are ignored")
}

func TestFitCentresCanvas(t *testing.T) {
	var tr Transform
	tr.Fit(image.Pt(100, 50), image.Rect(0, 0, 400, 400))
	assert.InDelta(t, 4.0, tr.Scale, 1e-9)
	assert.Equal(t, image.Rect(0, 100, 400, 300), tr.DeviceRect(image.Rect(0, 0, 100, 50)))
}

func TestZeroScaleBehavesAsIdentity(t *testing.T) {
	var tr Transform
	p := r2.Vec{X: 3, Y: 4}
	assert.Equal(t, p, tr.ToWorld(p))
}
