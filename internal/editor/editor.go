// Package editor holds the state of one painting session: the layer stack,
// the active tool and selection, the floating transform and the view. All
// methods must be called from a single goroutine.
package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/layers"
	"github.com/example/framepaint/internal/pixelops"
	"github.com/example/framepaint/internal/render"
	"github.com/example/framepaint/internal/selection"
	"github.com/example/framepaint/internal/theme"
	"github.com/example/framepaint/internal/transform"
	"github.com/example/framepaint/internal/viewport"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultTolerance = 32

	dashCycle = 64
)

var (
	// ErrNoLayer is returned when an operation names a layer that does not
	// exist or needs an active layer and there is none.
	ErrNoLayer = errors.New("no such layer")
	// ErrGestureActive is returned when a gesture starts while another one is
	// unresolved.
	ErrGestureActive = errors.New("gesture already active")
)

// Editor is the state object every operation works on.
type Editor struct {
	stack  *layers.Stack
	active int64

	tool      Tool
	style     pixelops.Style
	tolerance int

	sel     selection.Selection
	xf      *transform.Transform
	xfLayer int64
	clip    *Payload

	gesture *gesture
	preview *image.NRGBA
	hover   transform.Handle
	dash    int

	view     viewport.Transform
	renderer *render.Renderer
	logger   *log.Logger

	size       image.Point
	background color.NRGBA
}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the logger used for implicit commits and rejected gestures.
func WithLogger(l *log.Logger) Option { return func(e *Editor) { e.logger = l } }

// WithCanvas sets the canvas size shared by every layer.
func WithCanvas(w, h int) Option { return func(e *Editor) { e.size = image.Pt(w, h) } }

// WithStyle sets the initial brush style.
func WithStyle(s pixelops.Style) Option { return func(e *Editor) { e.style = s } }

// WithTolerance sets the initial magic wand tolerance.
func WithTolerance(t int) Option { return func(e *Editor) { e.tolerance = t } }

// WithBackground fills the first layer with c. A transparent colour leaves it
// empty.
func WithBackground(c color.NRGBA) Option { return func(e *Editor) { e.background = c } }

// WithTheme sets the colours used by Render.
func WithTheme(th *theme.Theme) Option { return func(e *Editor) { e.renderer = render.New(th) } }

// WithTool sets the initial tool.
func WithTool(t Tool) Option { return func(e *Editor) { e.tool = t } }

// New creates an editor with one layer.
func New(opts ...Option) *Editor {
	e := &Editor{
		tool:       ToolBrush,
		style:      pixelops.Style{Color: color.NRGBA{A: 255}, Width: 4},
		tolerance:  DefaultTolerance,
		view:       viewport.Identity(),
		size:       image.Pt(DefaultWidth, DefaultHeight),
		background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	for _, o := range opts {
		o(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.renderer == nil {
		e.renderer = render.New(nil)
	}
	if e.size.X <= 0 || e.size.Y <= 0 {
		e.size = image.Pt(DefaultWidth, DefaultHeight)
	}
	e.tolerance = clampTolerance(e.tolerance)
	e.stack = layers.NewStack(e.size.X, e.size.Y)
	bg := e.stack.Create("Background")
	if e.background.A != 0 {
		draw.Draw(bg.Surface, bg.Surface.Bounds(), image.NewUniform(e.background), image.Point{}, draw.Src)
	}
	e.active = bg.ID
	return e
}

func clampTolerance(t int) int {
	return max(0, min(t, 255))
}

// Size returns the canvas size.
func (e *Editor) Size() image.Point { return e.size }

// Tool returns the current tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches tools. Any unresolved gesture is cancelled and a floating
// selection is committed.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.PointerCancel()
	e.commit("tool change")
	e.tool = t
	e.hover = transform.HandleNone
}

// Style returns the brush style.
func (e *Editor) Style() pixelops.Style { return e.style }

// SetStyle changes the colour and width used by strokes and shapes.
func (e *Editor) SetStyle(s pixelops.Style) {
	s.Erase = false
	e.style = s
}

// Tolerance returns the magic wand tolerance.
func (e *Editor) Tolerance() int { return e.tolerance }

// SetTolerance sets the magic wand tolerance, clamped to 0..255.
func (e *Editor) SetTolerance(t int) { e.tolerance = clampTolerance(t) }

// Selection returns the active selection, following a floating transform.
func (e *Editor) Selection() selection.Selection {
	if e.xf != nil {
		return e.xf.Selection
	}
	return e.sel
}

// SetSelection replaces the active selection after committing any floating
// pixels.
func (e *Editor) SetSelection(s selection.Selection) {
	e.commit("selection change")
	e.sel = s
}

// ClearSelection commits any floating pixels and drops the selection.
func (e *Editor) ClearSelection() { e.SetSelection(nil) }

// SelectAll selects the whole canvas.
func (e *Editor) SelectAll() {
	e.SetSelection(selection.Rect{W: float64(e.size.X), H: float64(e.size.Y)})
}

// Transform returns the floating transform or nil.
func (e *Editor) Transform() *transform.Transform { return e.xf }

// View returns the view transform.
func (e *Editor) View() viewport.Transform { return e.view }

// SetView replaces the view transform.
func (e *Editor) SetView(v viewport.Transform) { e.view = v }

// ZoomAt zooms by factor keeping the canvas point under the device point p.
func (e *Editor) ZoomAt(p r2.Vec, factor float64) { e.view.ZoomAt(p, factor) }

// FitView scales and centres the canvas inside the device rectangle r.
func (e *Editor) FitView(r image.Rectangle) { e.view.Fit(e.size, r) }

// ActiveLayer returns the layer gestures draw on, or nil.
func (e *Editor) ActiveLayer() *layers.Layer { return e.stack.Get(e.active) }

// Layers returns the layers bottom to top.
func (e *Editor) Layers() []*layers.Layer { return e.stack.Sorted() }

// Layer returns the layer with id or nil.
func (e *Editor) Layer(id int64) *layers.Layer { return e.stack.Get(id) }

// SetActiveLayer switches the layer gestures draw on, committing floating
// pixels first.
func (e *Editor) SetActiveLayer(id int64) error {
	if e.stack.Get(id) == nil {
		return fmt.Errorf("set active layer %d: %w", id, ErrNoLayer)
	}
	if id == e.active {
		return nil
	}
	e.PointerCancel()
	e.commit("layer switch")
	e.active = id
	return nil
}

// AddLayer creates a transparent layer on top of the stack and makes it
// active.
func (e *Editor) AddLayer(name string) *layers.Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", e.stack.Len()+1)
	}
	e.PointerCancel()
	e.commit("add layer")
	l := e.stack.Create(name)
	e.active = l.ID
	return l
}

// AddExistingLayer inserts a layer built by a caller, such as a persistence
// collaborator.
func (e *Editor) AddExistingLayer(l *layers.Layer) error {
	return e.stack.Add(l)
}

// RemoveLayer deletes a layer. Removing the active layer activates the
// topmost remaining one.
func (e *Editor) RemoveLayer(id int64) error {
	if e.stack.Get(id) == nil {
		return fmt.Errorf("remove layer %d: %w", id, ErrNoLayer)
	}
	if e.xf != nil && e.xfLayer == id {
		e.PointerCancel()
		e.xf = nil
		e.sel = nil
		e.logger.Printf("remove layer %d: floating selection discarded", id)
	}
	e.stack.Remove(id)
	if id == e.active {
		e.PointerCancel()
		e.active = 0
		if ls := e.stack.Sorted(); len(ls) > 0 {
			e.active = ls[len(ls)-1].ID
		}
	}
	return nil
}

// SetLayerVisible shows or hides a layer.
func (e *Editor) SetLayerVisible(id int64, visible bool) error {
	l := e.stack.Get(id)
	if l == nil {
		return fmt.Errorf("set layer visible %d: %w", id, ErrNoLayer)
	}
	l.Visible = visible
	return nil
}

// SetLayerOrder moves a layer in the stack. Layers are drawn by ascending
// order, ties broken by ID.
func (e *Editor) SetLayerOrder(id int64, order int) error {
	l := e.stack.Get(id)
	if l == nil {
		return fmt.Errorf("set layer order %d: %w", id, ErrNoLayer)
	}
	l.Order = order
	return nil
}

// SetLayerOpacity sets a layer opacity percentage, clamped to 0..100.
func (e *Editor) SetLayerOpacity(id int64, opacity int) error {
	l := e.stack.Get(id)
	if l == nil {
		return fmt.Errorf("set layer opacity %d: %w", id, ErrNoLayer)
	}
	l.SetOpacity(opacity)
	return nil
}

// commit writes a floating selection back into its layer. reason names the
// action that forced it.
func (e *Editor) commit(reason string) {
	if e.xf == nil {
		return
	}
	if e.gesture != nil && e.gesture.kind == gestureTransform {
		e.gesture = nil
	}
	xf := e.xf
	e.xf = nil
	e.sel = xf.Selection
	l := e.stack.Get(e.xfLayer)
	if l == nil {
		e.logger.Printf("commit: layer %d is gone", e.xfLayer)
		return
	}
	xf.Commit(l.Surface)
	e.logger.Printf("commit: floating selection written to %q on %s", l.Name, reason)
}

// Composite flattens the visible layers, including floating pixels.
func (e *Editor) Composite() *image.NRGBA {
	if e.xf == nil {
		return e.stack.Composite(e.active, nil)
	}
	return e.stack.Composite(e.xfLayer, e.xf)
}

// WantsTick reports whether the marquee is animating: a selection exists and
// no gesture is in progress.
func (e *Editor) WantsTick() bool {
	return e.Selection() != nil && e.gesture == nil
}

// Tick advances the marquee animation.
func (e *Editor) Tick() {
	if !e.WantsTick() {
		return
	}
	e.dash = (e.dash + 1) % dashCycle
}

// Renderer returns the renderer used by Render.
func (e *Editor) Renderer() *render.Renderer { return e.renderer }

// Scene is a self-contained copy of what Render draws. It shares no
// mutable state with the editor, so it can be drawn on another goroutine.
type Scene struct {
	Canvas  *image.NRGBA
	View    viewport.Transform
	Overlay render.Overlay
}

// Scene captures the current frame and overlays.
func (e *Editor) Scene() Scene {
	sel := e.Selection()
	if g := e.gesture; g != nil && (g.kind == gestureSelect || g.kind == gestureLasso) {
		sel = g.draft
	}
	sel = selection.Clone(sel)
	var preview *image.NRGBA
	if e.preview != nil {
		preview = image.NewNRGBA(e.preview.Bounds())
		copy(preview.Pix, e.preview.Pix)
	}
	return Scene{
		Canvas: e.Composite(),
		View:   e.view,
		Overlay: render.Overlay{
			Selection:  sel,
			DashOffset: e.dash,
			Preview:    preview,
			Handles:    e.tool == ToolTransform,
			Hover:      e.hover,
		},
	}
}

// Draw renders s with r into the view rectangle of dst.
func (s Scene) Draw(r *render.Renderer, dst *image.RGBA, view image.Rectangle) {
	r.Draw(dst, view, s.View, s.Canvas, s.Overlay)
}

// Render draws the canvas and overlays into the view rectangle of dst.
func (e *Editor) Render(dst *image.RGBA, view image.Rectangle) {
	e.Scene().Draw(e.renderer, dst, view)
}

// Hover returns the handle under the pointer when the transform tool is
// active.
func (e *Editor) Hover() transform.Handle { return e.hover }
