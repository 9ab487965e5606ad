package selection

import "image"

// Mask is a bit-per-pixel membership grid.
type Mask struct {
	W, H int
	bits []uint64
}

// NewMask returns an empty mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{W: w, H: h, bits: make([]uint64, (w*h+63)/64)}
}

// Get reports whether (x, y) is set. Out of range coordinates are unset.
func (m *Mask) Get(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	i := y*m.W + x
	return m.bits[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set marks (x, y). Out of range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if m == nil || x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	i := y*m.W + x
	m.bits[i>>6] |= 1 << (uint(i) & 63)
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, w := range m.bits {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}

// Tight returns the smallest rectangle holding every set pixel.
func (m *Mask) Tight() image.Rectangle {
	var r image.Rectangle
	first := true
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.Get(x, y) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if first {
				r = px
				first = false
			} else {
				r = r.Union(px)
			}
		}
	}
	return r
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}
	out := &Mask{W: m.W, H: m.H, bits: make([]uint64, len(m.bits))}
	copy(out.bits, m.bits)
	return out
}

// Alpha converts the mask into an opaque/transparent alpha image.
func (m *Mask) Alpha() *image.Alpha {
	out := image.NewAlpha(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Get(x, y) {
				out.Pix[y*out.Stride+x] = 0xff
			}
		}
	}
	return out
}
