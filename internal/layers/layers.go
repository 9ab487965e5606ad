// Package layers holds the ordered layer stack of a frame and flattens it
// into a single image.
package layers

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/example/framepaint/internal/pixelops"
)

// ErrSize is returned when a layer surface does not match the stack extent.
var ErrSize = errors.New("layer size does not match canvas")

// Layer is one raster layer of a frame.
type Layer struct {
	ID      int64
	Name    string
	Order   int
	Visible bool
	// Opacity is a percentage, 0..100.
	Opacity int
	Surface *image.NRGBA
}

// SetOpacity stores v clamped to 0..100.
func (l *Layer) SetOpacity(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	l.Opacity = v
}

// Floating is a pending overlay on the active layer, such as a lifted
// selection, drawn over that layer's surface before it is blended.
type Floating interface {
	Composite(base *image.NRGBA) *image.NRGBA
}

// Stack is the set of layers sharing one canvas extent.
type Stack struct {
	size   image.Point
	layers []*Layer
	nextID int64
}

// NewStack returns an empty stack for a w×h canvas.
func NewStack(w, h int) *Stack {
	return &Stack{size: image.Pt(w, h), nextID: 1}
}

// Size returns the canvas extent.
func (s *Stack) Size() image.Point { return s.size }

// Len returns the number of layers.
func (s *Stack) Len() int { return len(s.layers) }

// Create adds a visible, opaque, transparent-filled layer on top of the stack.
func (s *Stack) Create(name string) *Layer {
	order := 0
	for _, l := range s.layers {
		if l.Order >= order {
			order = l.Order + 1
		}
	}
	l := &Layer{
		ID:      s.nextID,
		Name:    name,
		Order:   order,
		Visible: true,
		Opacity: 100,
		Surface: image.NewNRGBA(image.Rectangle{Max: s.size}),
	}
	s.nextID++
	s.layers = append(s.layers, l)
	return l
}

// Add inserts a layer built elsewhere. A nil surface is allocated; a zero ID
// is assigned. Duplicate IDs and mismatched surfaces are rejected.
func (s *Stack) Add(l *Layer) error {
	if l.Surface == nil {
		l.Surface = image.NewNRGBA(image.Rectangle{Max: s.size})
	}
	if l.Surface.Bounds() != (image.Rectangle{Max: s.size}) {
		return fmt.Errorf("add layer %q: %w", l.Name, ErrSize)
	}
	if l.ID == 0 {
		l.ID = s.nextID
	}
	if s.Get(l.ID) != nil {
		return fmt.Errorf("add layer %q: duplicate id %d", l.Name, l.ID)
	}
	if l.ID >= s.nextID {
		s.nextID = l.ID + 1
	}
	l.SetOpacity(l.Opacity)
	s.layers = append(s.layers, l)
	return nil
}

// Remove deletes the layer with id and reports whether it existed.
func (s *Stack) Remove(id int64) bool {
	for i, l := range s.layers {
		if l.ID == id {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the layer with id or nil.
func (s *Stack) Get(id int64) *Layer {
	for _, l := range s.layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Sorted returns the layers bottom to top: ascending Order, ties by ID.
func (s *Stack) Sorted() []*Layer {
	out := append([]*Layer(nil), s.layers...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Composite flattens the visible layers bottom to top onto a transparent
// canvas. When floating is non-nil it is drawn over the layer activeID
// before that layer is blended.
func (s *Stack) Composite(activeID int64, floating Floating) *image.NRGBA {
	out := image.NewNRGBA(image.Rectangle{Max: s.size})
	for _, l := range s.Sorted() {
		if !l.Visible || l.Opacity == 0 || l.Surface == nil {
			continue
		}
		src := l.Surface
		if floating != nil && l.ID == activeID {
			src = floating.Composite(src)
		}
		blend(out, src, uint8(l.Opacity*255/100))
	}
	return out
}

func blend(dst, src *image.NRGBA, opacity uint8) {
	r := dst.Bounds().Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			dst.SetNRGBA(x, y, pixelops.Over(c, dst.NRGBAAt(x, y), opacity))
		}
	}
}
