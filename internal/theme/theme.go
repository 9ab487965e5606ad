package theme

import (
	"image/color"
)

// Theme defines the colours of the editor chrome and canvas overlays.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area around the canvas
	Foreground color.RGBA // Status text

	StatusBackground color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	FrameGuide   color.RGBA // Outline of the frame boundary
	Shadow       color.RGBA // Drop shadow under the frame; alpha sets strength

	// Selection overlays
	MarqueeA     color.RGBA // Marching ants, first dash colour
	MarqueeB     color.RGBA // Marching ants, second dash colour
	HandleFill   color.RGBA
	HandleBorder color.RGBA
	HandleHover  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{220, 220, 220, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		StatusBackground: color.RGBA{200, 200, 200, 255},
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
		FrameGuide:       color.RGBA{60, 60, 60, 255},
		Shadow:           color.RGBA{0, 0, 0, 140},
		MarqueeA:         color.RGBA{255, 255, 255, 255},
		MarqueeB:         color.RGBA{0, 0, 0, 255},
		HandleFill:       color.RGBA{255, 255, 255, 255},
		HandleBorder:     color.RGBA{0, 0, 0, 255},
		HandleHover:      color.RGBA{255, 160, 0, 255},
	}
}
