package editor

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/pixelops"
	"github.com/example/framepaint/internal/selection"
	"github.com/example/framepaint/internal/transform"
)

type gestureKind int

const (
	gestureStroke gestureKind = iota
	gestureSelect
	gestureLasso
	gestureShape
	gestureTransform
	gesturePan
)

// gesture is the single pointer interaction in progress.
type gesture struct {
	kind  gestureKind
	tool  Tool
	start r2.Vec
	last  r2.Vec
	// device is the last device position, used by panning.
	device r2.Vec
	points []r2.Vec
	draft  selection.Selection
}

// Gesturing reports whether a pointer gesture is unresolved.
func (e *Editor) Gesturing() bool { return e.gesture != nil }

// PointerDown starts a gesture for the current tool at device point p.
// Click tools such as fill and wand act immediately and leave no gesture.
func (e *Editor) PointerDown(p r2.Vec, mods Modifiers) error {
	if e.gesture != nil {
		e.logger.Printf("pointer down: %v", ErrGestureActive)
		return ErrGestureActive
	}
	w := e.view.ToWorld(p)
	g := &gesture{tool: e.tool, start: w, last: w, device: p}

	switch {
	case e.tool == ToolPan:
		g.kind = gesturePan
	case e.tool.paints():
		if e.ActiveLayer() == nil {
			return fmt.Errorf("pointer down: %w", ErrNoLayer)
		}
		g.kind = gestureStroke
		e.ApplyStroke(e.tool, w, w, e.style)
	case e.tool == ToolFill:
		e.FloodFill(w, e.style.Color)
		return nil
	case e.tool == ToolWand:
		e.MagicWandSelect(w, e.tolerance)
		return nil
	case e.tool == ToolLasso:
		e.commit("new selection")
		g.kind = gestureLasso
		g.points = []r2.Vec{w}
	case e.tool == ToolTransform:
		mode, handle, ok := transform.HitTest(e.Selection(), w, e.handleReach())
		if !ok {
			e.commit("press outside selection")
			return nil
		}
		if !e.BeginSelectionTransform(mode, handle, w) {
			return nil
		}
		g.kind = gestureTransform
	default:
		if _, ok := e.tool.selectionKind(); ok {
			e.commit("new selection")
			g.kind = gestureSelect
			break
		}
		if _, ok := e.tool.shape(); ok {
			if e.ActiveLayer() == nil {
				return fmt.Errorf("pointer down: %w", ErrNoLayer)
			}
			e.commit("shape")
			g.kind = gestureShape
			e.preview = image.NewNRGBA(image.Rectangle{Max: e.size})
			break
		}
		return nil
	}
	e.gesture = g
	return nil
}

// PointerMove continues the gesture in progress. Without one it only tracks
// handle hover for the transform tool.
func (e *Editor) PointerMove(p r2.Vec, mods Modifiers) {
	w := e.view.ToWorld(p)
	g := e.gesture
	if g == nil {
		e.hover = transform.HandleNone
		if e.tool == ToolTransform {
			if mode, h, ok := transform.HitTest(e.Selection(), w, e.handleReach()); ok && mode == transform.ModeResize {
				e.hover = h
			}
		}
		return
	}

	switch g.kind {
	case gestureStroke:
		e.ApplyStroke(g.tool, g.last, w, e.style)
	case gestureSelect:
		kind, _ := g.tool.selectionKind()
		g.draft, _ = selection.FromDrag(kind, g.start, w, mods.constrain())
	case gestureLasso:
		if w != g.last {
			g.points = append(g.points, w)
		}
		if len(g.points) >= 2 {
			g.draft = selection.Lasso{Points: g.points}
		}
	case gestureShape:
		shape, _ := g.tool.shape()
		pixelops.ShapePreview(e.preview, shape, g.start, w, e.style, mods.constrain())
	case gestureTransform:
		e.UpdateSelectionTransform(w)
	case gesturePan:
		e.view.Pan(r2.Sub(p, g.device))
		g.device = p
	}
	g.last = w
}

// PointerUp finishes the gesture in progress at device point p.
func (e *Editor) PointerUp(p r2.Vec, mods Modifiers) {
	g := e.gesture
	if g == nil {
		return
	}
	if g.kind != gestureSelect && g.kind != gestureLasso {
		e.PointerMove(p, mods)
	}
	w := e.view.ToWorld(p)
	e.gesture = nil

	switch g.kind {
	case gestureSelect:
		kind, _ := g.tool.selectionKind()
		sel, ok := selection.FromDrag(kind, g.start, w, mods.constrain())
		if !ok {
			sel = nil
		}
		e.sel = sel
	case gestureLasso:
		if w != g.last {
			g.points = append(g.points, w)
		}
		e.sel = nil
		if l, ok := selection.NewLasso(g.points); ok {
			e.sel = l
		}
	case gestureShape:
		shape, _ := g.tool.shape()
		e.preview = nil
		if l := e.ActiveLayer(); l != nil {
			pixelops.CommitShape(l.Surface, shape, g.start, w, e.style, e.Selection(), mods.constrain())
		}
	case gestureTransform:
		if e.xf != nil {
			e.xf.Release()
		}
	}
}

// PointerCancel resolves a gesture interrupted by lost pointer tracking. A
// stroke stops where it is, a selection draft or shape preview is dropped and
// a transform is left floating.
func (e *Editor) PointerCancel() {
	g := e.gesture
	if g == nil {
		return
	}
	e.gesture = nil
	switch g.kind {
	case gestureShape:
		e.preview = nil
	case gestureTransform:
		if e.xf != nil {
			e.xf.Cancel()
		}
	}
	e.logger.Printf("pointer cancel: %s gesture resolved", g.tool)
}

// handleReach is half a handle in world units at the current zoom.
func (e *Editor) handleReach() float64 {
	s := e.view.Scale
	if s <= 0 {
		s = 1
	}
	return float64(transform.HandleSize) / 2 / s
}
