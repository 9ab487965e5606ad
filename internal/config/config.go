package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/framepaint/internal/theme"
)

// Canvas holds the project frame settings.
type Canvas struct {
	Width      int
	Height     int
	FPS        int
	Background color.NRGBA
}

// Brush holds the initial drawing style.
type Brush struct {
	Color color.NRGBA
	Width float64
}

// Wand holds magic wand settings.
type Wand struct {
	Tolerance int
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	ExportDir string
	Canvas    Canvas
	Brush     Brush
	Wand      Wand
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Canvas: Canvas{
			Width:      1280,
			Height:     720,
			FPS:        12,
			Background: color.NRGBA{255, 255, 255, 255},
		},
		Brush: Brush{
			Color: color.NRGBA{0, 0, 0, 255},
			Width: 4,
		},
		Wand:   Wand{Tolerance: 32},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "fps = %d\n", c.Canvas.FPS)
	fmt.Fprintf(&sb, "background = %s\n", toHex(c.Canvas.Background))
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "color = %s\n", toHex(c.Brush.Color))
	fmt.Fprintf(&sb, "width = %g\n", c.Brush.Width)
	sb.WriteString("\n")

	sb.WriteString("[wand]\n")
	fmt.Fprintf(&sb, "tolerance = %d\n", c.Wand.Tolerance)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Encode(&sb, c.Themes[name], " =")
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c color.NRGBA) string {
	return theme.Hex(color.RGBA(c))
}
