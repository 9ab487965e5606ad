package render

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const statusFontSize = 13

var (
	faceOnce sync.Once
	face     font.Face
)

// statusFace returns Go Regular at the status size, falling back to the
// fixed 7x13 face when the embedded font cannot be parsed.
func statusFace() font.Face {
	faceOnce.Do(func() {
		face = basicfont.Face7x13
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		ff, err := opentype.NewFace(f, &opentype.FaceOptions{Size: statusFontSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return
		}
		face = ff
	})
	return face
}

// drawText writes text left-aligned and vertically centred in rect.
func drawText(dst *image.RGBA, rect image.Rectangle, text string, col color.RGBA) {
	f := statusFace()
	m := f.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	y := rect.Min.Y + (rect.Dy()-h)/2 + m.Ascent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: f,
		Dot: fixed.P(rect.Min.X+6, y)}
	d.DrawString(text)
}

// TextWidth reports the advance of text in the status face.
func TextWidth(text string) int {
	return font.MeasureString(statusFace(), text).Ceil()
}
