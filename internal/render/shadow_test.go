package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowMaskPadsByRadius(t *testing.T) {
	var c shadowCache
	mask := c.get(image.Pt(20, 20), ShadowOptions{Radius: 4})
	expected := image.Rect(0, 0, 28, 28)
	if !mask.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", mask.Bounds(), expected)
	}
	if got := mask.GrayAt(14, 14).Y; got != 0xff {
		t.Fatalf("centre should stay opaque, got %d", got)
	}
	if got := mask.GrayAt(0, 0).Y; got >= 32 {
		t.Fatalf("far corner should stay nearly clear, got %d", got)
	}
	if got := mask.GrayAt(3, 14).Y; got == 0 || got == 0xff {
		t.Fatalf("edge should be blurred, got %d", got)
	}
}

func TestShadowCacheReuse(t *testing.T) {
	var c shadowCache
	opts := ShadowOptions{Radius: 2}
	a := c.get(image.Pt(5, 5), opts)
	if b := c.get(image.Pt(5, 5), opts); a != b {
		t.Fatal("expected cached mask")
	}
	if b := c.get(image.Pt(6, 5), opts); a == b {
		t.Fatal("expected new mask for a new size")
	}
}

func TestShadowDrawOffset(t *testing.T) {
	var c shadowCache
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	c.draw(dst, image.Rect(5, 5, 15, 15), ShadowOptions{Radius: 0, Offset: image.Pt(10, 10)}, color.RGBA{A: 200})
	if got := dst.RGBAAt(20, 20).A; got != 200 {
		t.Fatalf("expected shadow alpha at offset, got %d", got)
	}
	if got := dst.RGBAAt(6, 6).A; got != 0 {
		t.Fatalf("expected no shadow under the frame origin, got %d", got)
	}
}

func TestBlurGraySpreads(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 1))
	src.SetGray(2, 0, color.Gray{Y: 90})
	out := blurGray(src, 1)
	for x, want := range []uint8{0, 30, 30, 30, 0} {
		if got := out.GrayAt(x, 0).Y; got != want {
			t.Fatalf("pixel %d got %d want %d", x, got, want)
		}
	}
}
