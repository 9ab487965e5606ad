package editor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	// Decoders accepted by ImportImageIntoLayer and PasteImageAt.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/pixelops"
	"github.com/example/framepaint/internal/selection"
	"github.com/example/framepaint/internal/transform"
)

// ApplyStroke draws one stroke segment on the active layer, clipped to the
// selection. The eraser removes alpha instead of painting.
func (e *Editor) ApplyStroke(tool Tool, from, to r2.Vec, style pixelops.Style) {
	l := e.ActiveLayer()
	if l == nil || !tool.paints() {
		return
	}
	e.commit("stroke")
	style.Erase = tool == ToolEraser
	pixelops.Stroke(l.Surface, from, to, style, e.sel)
}

// FloodFill fills the region around the world point p on the active layer
// with c. It reports whether any pixel changed.
func (e *Editor) FloodFill(p r2.Vec, c color.NRGBA) bool {
	l := e.ActiveLayer()
	if l == nil {
		return false
	}
	e.commit("fill")
	return pixelops.FloodFill(l.Surface, p, c, e.sel)
}

// MagicWandSelect replaces the selection with the region grown from the world
// point p on the active layer. It returns nil and keeps the current
// selection when p is outside the canvas.
func (e *Editor) MagicWandSelect(p r2.Vec, tolerance int) selection.Selection {
	l := e.ActiveLayer()
	if l == nil {
		return nil
	}
	e.commit("wand")
	m, ok := pixelops.MagicWand(l.Surface, p, tolerance)
	if !ok {
		return nil
	}
	e.sel = m
	return m
}

// BeginSelectionTransform lifts the selected pixels of the active layer and
// starts a move or resize gesture at the world point p. A floating selection
// on the active layer is resumed rather than lifted again. It reports false
// when the selection cannot be transformed.
func (e *Editor) BeginSelectionTransform(mode transform.Mode, handle transform.Handle, p r2.Vec) bool {
	if e.xf != nil {
		if e.xf.State() == transform.Floating && e.xfLayer == e.active {
			return e.xf.Resume(mode, handle, p)
		}
		e.commit("new transform")
	}
	l := e.ActiveLayer()
	if l == nil {
		return false
	}
	xf, ok := transform.Begin(l.Surface, e.sel, mode, handle, p)
	if !ok {
		e.logger.Printf("transform: %s selection cannot be transformed", selection.KindOf(e.sel))
		return false
	}
	e.xf = xf
	e.xfLayer = l.ID
	return true
}

// UpdateSelectionTransform moves or resizes the floating pixels to follow
// the world point p.
func (e *Editor) UpdateSelectionTransform(p r2.Vec) {
	if e.xf == nil {
		return
	}
	e.xf.Update(p)
}

// ReleaseSelectionTransform ends the move or resize gesture and leaves the
// pixels floating.
func (e *Editor) ReleaseSelectionTransform() {
	if e.xf != nil {
		e.xf.Release()
	}
}

// CommitSelectionTransform writes the floating pixels into their layer.
func (e *Editor) CommitSelectionTransform() { e.commit("commit request") }

// Payload is a block of copied pixels.
type Payload struct {
	Image *image.NRGBA
	// Origin is where the pixels came from on the canvas.
	Origin image.Point
}

// PNG encodes the payload pixels.
func (p *Payload) PNG() ([]byte, error) {
	if p == nil || p.Image == nil {
		return nil, fmt.Errorf("encode payload: empty")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.Image); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return buf.Bytes(), nil
}

// CopySelection copies the selected pixels of the active layer. The payload
// is also kept for PasteAt. It returns nil without a selection.
func (e *Editor) CopySelection() *Payload {
	p, _, _ := e.copySelection()
	return p
}

func (e *Editor) copySelection() (*Payload, image.Rectangle, *image.Alpha) {
	e.commit("copy")
	l := e.ActiveLayer()
	if l == nil || e.sel == nil {
		return nil, image.Rectangle{}, nil
	}
	r := selection.Bounds(e.sel).ClampTo(e.size.X, e.size.Y).Rect().Intersect(l.Surface.Bounds())
	if r.Empty() {
		return nil, r, nil
	}
	mask := selection.ClipMask(e.sel, e.size.X, e.size.Y)
	p := &Payload{Image: pixelops.Capture(l.Surface, r, mask), Origin: r.Min}
	e.clip = p
	return p, r, mask
}

// CutSelection copies the selected pixels and clears them to transparent.
func (e *Editor) CutSelection() *Payload {
	p, r, mask := e.copySelection()
	if p == nil {
		return nil
	}
	pixelops.ClearMasked(e.ActiveLayer().Surface, r, mask)
	return p
}

// Clipboard returns the last copied payload.
func (e *Editor) Clipboard() *Payload { return e.clip }

// PasteAt pastes the last copied payload centred on the world point p.
func (e *Editor) PasteAt(p r2.Vec) bool {
	if e.clip == nil {
		return false
	}
	return e.PasteImageAt(e.clip.Image, p)
}

// PasteImageAt places img as a floating selection on the active layer,
// centred on the world point p and kept inside the canvas. The pixels land
// in the layer on the next commit.
func (e *Editor) PasteImageAt(img image.Image, p r2.Vec) bool {
	l := e.ActiveLayer()
	if l == nil || img == nil {
		return false
	}
	e.PointerCancel()
	e.commit("paste")
	size := img.Bounds().Size()
	at := image.Pt(
		int(math.Round(p.X-float64(size.X)/2)),
		int(math.Round(p.Y-float64(size.Y)/2)),
	)
	xf, ok := transform.Float(e.size, img, at)
	if !ok {
		return false
	}
	e.xf = xf
	e.xfLayer = l.ID
	e.sel = xf.Selection
	return true
}

// DecodePayload reads an encoded image, such as clipboard contents, into a
// payload.
func DecodePayload(data []byte) (*Payload, error) {
	img, err := decodeNRGBA(data)
	if err != nil {
		return nil, err
	}
	return &Payload{Image: img}, nil
}

// ExportFlattenedImage commits floating pixels and returns the flattened
// canvas as PNG.
func (e *Editor) ExportFlattenedImage() ([]byte, error) {
	e.PointerCancel()
	e.commit("export")
	var buf bytes.Buffer
	if err := png.Encode(&buf, e.Composite()); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportImageIntoLayer replaces the pixels of a layer with an encoded image.
// The image is anchored at the top-left corner and cropped or padded with
// transparency to the canvas size.
func (e *Editor) ImportImageIntoLayer(id int64, data []byte) error {
	l := e.stack.Get(id)
	if l == nil {
		return fmt.Errorf("import layer %d: %w", id, ErrNoLayer)
	}
	img, err := decodeNRGBA(data)
	if err != nil {
		return fmt.Errorf("import layer %d: %w", id, err)
	}
	if e.xf != nil && e.xfLayer == id {
		e.PointerCancel()
		e.commit("import")
	}
	clear(l.Surface.Pix)
	draw.Draw(l.Surface, l.Surface.Bounds(), img, image.Point{}, draw.Src)
	return nil
}

func decodeNRGBA(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rectangle{Max: b.Size()})
	xdraw.Copy(out, image.Point{}, img, b, xdraw.Src, nil)
	return out, nil
}
