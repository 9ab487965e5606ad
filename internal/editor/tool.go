package editor

import (
	"github.com/example/framepaint/internal/pixelops"
	"github.com/example/framepaint/internal/selection"
)

// Tool selects what a pointer gesture on the canvas does.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolFill
	ToolWand
	ToolRectSelect
	ToolEllipseSelect
	ToolLasso
	ToolLine
	ToolRect
	ToolEllipse
	ToolTransform
	ToolPan
)

var toolNames = [...]string{
	"brush", "eraser", "fill", "wand", "rect-select", "ellipse-select",
	"lasso", "line", "rect", "ellipse", "transform", "pan",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "unknown"
	}
	return toolNames[t]
}

// ParseTool returns the tool with the given name.
func ParseTool(name string) (Tool, bool) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), true
		}
	}
	return 0, false
}

// Tools returns every tool in shortcut order.
func Tools() []Tool {
	out := make([]Tool, len(toolNames))
	for i := range out {
		out[i] = Tool(i)
	}
	return out
}

func (t Tool) paints() bool { return t == ToolBrush || t == ToolEraser }

func (t Tool) shape() (pixelops.Shape, bool) {
	switch t {
	case ToolLine:
		return pixelops.ShapeLine, true
	case ToolRect:
		return pixelops.ShapeRect, true
	case ToolEllipse:
		return pixelops.ShapeEllipse, true
	}
	return 0, false
}

func (t Tool) selectionKind() (selection.Kind, bool) {
	switch t {
	case ToolRectSelect:
		return selection.KindRect, true
	case ToolEllipseSelect:
		return selection.KindEllipse, true
	case ToolLasso:
		return selection.KindLasso, true
	}
	return 0, false
}

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	// ModShift constrains shapes and selections to squares, circles and 45°
	// lines.
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

func (m Modifiers) constrain() bool { return m&ModShift != 0 }
