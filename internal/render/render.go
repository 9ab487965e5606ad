// Package render draws the editor view: the flattened frame through the
// viewport, with its backdrop, shadow, boundary guide and the selection
// overlays.
package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/selection"
	"github.com/example/framepaint/internal/theme"
	"github.com/example/framepaint/internal/transform"
	"github.com/example/framepaint/internal/viewport"
)

const (
	checkerSize = 8
	marqueeDash = 4
)

// Overlay describes the interactive state drawn over the canvas.
type Overlay struct {
	// Selection is outlined with marching ants when non-nil.
	Selection selection.Selection
	// DashOffset shifts the marquee dash pattern.
	DashOffset int
	// Preview is a canvas-sized layer drawn over the frame, such as a shape
	// being dragged.
	Preview *image.NRGBA
	// Handles enables the resize handles around Selection.
	Handles bool
	Hover   transform.Handle
}

// Renderer draws frames into device buffers.
type Renderer struct {
	Theme  *theme.Theme
	Shadow ShadowOptions

	shadow   shadowCache
	backdrop *image.RGBA
}

// New returns a renderer using th, or the default theme when th is nil.
func New(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{Theme: th, Shadow: DefaultShadowOptions()}
}

// Draw renders canvas into the view rectangle of dst through vt.
func (r *Renderer) Draw(dst *image.RGBA, view image.Rectangle, vt viewport.Transform, canvas *image.NRGBA, ov Overlay) {
	view = view.Intersect(dst.Bounds())
	if view.Empty() {
		return
	}
	target := dst.SubImage(view).(*image.RGBA)
	fillRect(target, view, r.Theme.Background)
	if canvas == nil {
		return
	}

	frame := vt.DeviceRect(canvas.Bounds())
	r.shadow.draw(target, frame, r.Shadow, r.Theme.Shadow)
	r.drawBackdrop(target, frame)
	xdraw.NearestNeighbor.Scale(target, frame, canvas, canvas.Bounds(), draw.Over, nil)
	if ov.Preview != nil {
		xdraw.NearestNeighbor.Scale(target, frame, ov.Preview, ov.Preview.Bounds(), draw.Over, nil)
	}
	drawRect(target, frame.Inset(-1), r.Theme.FrameGuide)

	if ov.Selection == nil {
		return
	}
	r.drawMarquee(target, vt, ov.Selection, ov.DashOffset)
	if ov.Handles && selection.Transformable(ov.Selection) {
		r.drawHandles(target, vt, selection.Bounds(ov.Selection), ov.Hover)
	}
}

// drawBackdrop fills the frame area with a cached checkerboard pattern.
func (r *Renderer) drawBackdrop(dst *image.RGBA, frame image.Rectangle) {
	b := dst.Bounds()
	if r.backdrop == nil || r.backdrop.Bounds() != b {
		r.backdrop = image.NewRGBA(b)
		drawCheckerboard(r.backdrop, b, checkerSize, r.Theme.CheckerLight, r.Theme.CheckerDark)
	}
	area := frame.Intersect(b)
	draw.Draw(dst, area, r.backdrop, area.Min, draw.Src)
}

// InvalidateBackdrop drops cached theme-dependent images after the theme
// changes.
func (r *Renderer) InvalidateBackdrop() { r.backdrop = nil }

func (r *Renderer) drawMarquee(dst *image.RGBA, vt viewport.Transform, sel selection.Selection, offset int) {
	period := 2 * marqueeDash
	d := &dasher{dst: dst, dash: marqueeDash, a: r.Theme.MarqueeA, b: r.Theme.MarqueeB}
	for _, line := range selection.Outline(sel) {
		d.phase = ((offset % period) + period) % period
		d.joined = false
		for i := 1; i < len(line); i++ {
			a := devicePoint(vt, line[i-1])
			b := devicePoint(vt, line[i])
			d.line(a.X, a.Y, b.X, b.Y)
		}
	}
}

func (r *Renderer) drawHandles(dst *image.RGBA, vt viewport.Transform, b selection.Box, hover transform.Handle) {
	min := devicePoint(vt, b.Min())
	max := devicePoint(vt, b.Max())
	for i, hr := range transform.HandleRects(image.Rectangle{Min: min, Max: max}) {
		fill := r.Theme.HandleFill
		if transform.Handle(i+1) == hover {
			fill = r.Theme.HandleHover
		}
		fillRect(dst, hr.Intersect(dst.Bounds()), fill)
		drawRect(dst, hr, r.Theme.HandleBorder)
	}
}

func devicePoint(vt viewport.Transform, p r2.Vec) image.Point {
	d := vt.ToDevice(p)
	return image.Pt(int(math.Floor(d.X)), int(math.Floor(d.Y)))
}

// FillStatus paints a status strip with text on the theme colours.
func (r *Renderer) FillStatus(dst *image.RGBA, rect image.Rectangle, text string) {
	fillRect(dst, rect.Intersect(dst.Bounds()), r.Theme.StatusBackground)
	drawText(dst, rect, text, r.Theme.Foreground)
}
