package host

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/framepaint/internal/editor"
)

// KeyShortcut is a key combination bound to an action. Rune bindings ignore
// the shift modifier so symbols like '+' match on any layout.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var toolKeys = map[editor.Tool]rune{
	editor.ToolBrush:         'b',
	editor.ToolEraser:        'e',
	editor.ToolFill:          'f',
	editor.ToolWand:          'w',
	editor.ToolRectSelect:    'm',
	editor.ToolEllipseSelect: 'o',
	editor.ToolLasso:         'l',
	editor.ToolLine:          'i',
	editor.ToolRect:          'r',
	editor.ToolEllipse:       'c',
	editor.ToolTransform:     't',
	editor.ToolPan:           'h',
}

func defaultBindings() map[KeyShortcut]string {
	b := map[KeyShortcut]string{
		{Rune: 'c', Modifiers: key.ModControl}: "copy",
		{Rune: 'x', Modifiers: key.ModControl}: "cut",
		{Rune: 'v', Modifiers: key.ModControl}: "paste",
		{Rune: 's', Modifiers: key.ModControl}: "export",
		{Rune: 'a', Modifiers: key.ModControl}: "select-all",
		{Rune: 'd', Modifiers: key.ModControl}: "deselect",
		{Rune: 'n', Modifiers: key.ModControl}: "new-layer",
		{Rune: 'q', Modifiers: key.ModControl}: "quit",
		{Rune: ']', Modifiers: key.ModControl}: "raise-layer",
		{Rune: '[', Modifiers: key.ModControl}: "lower-layer",
		{Rune: '+'}:                            "zoom-in",
		{Rune: '='}:                            "zoom-in",
		{Rune: '-'}:                            "zoom-out",
		{Rune: '0'}:                            "fit",
		{Rune: '['}:                            "width-down",
		{Rune: ']'}:                            "width-up",
		{Rune: 'v'}:                            "toggle-layer",
		{Code: key.CodeEscape}:                 "deselect",
		{Code: key.CodeReturnEnter}:            "commit",
		{Code: key.CodePageUp}:                 "layer-up",
		{Code: key.CodePageDown}:               "layer-down",
		{Code: key.CodeLeftArrow}:              "pan-left",
		{Code: key.CodeRightArrow}:             "pan-right",
		{Code: key.CodeUpArrow}:                "pan-up",
		{Code: key.CodeDownArrow}:              "pan-down",
	}
	for t, r := range toolKeys {
		b[KeyShortcut{Rune: r}] = "tool:" + t.String()
	}
	return b
}

// lookup returns the action bound to a key press.
func lookup(bindings map[KeyShortcut]string, e key.Event) (string, bool) {
	if e.Rune > 0 {
		ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers &^ key.ModShift}
		if a, ok := bindings[ks]; ok {
			return a, true
		}
	}
	a, ok := bindings[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	return a, ok
}

// modifiers converts key modifiers for the editor.
func modifiers(m key.Modifiers) editor.Modifiers {
	var out editor.Modifiers
	if m&key.ModShift != 0 {
		out |= editor.ModShift
	}
	if m&key.ModControl != 0 {
		out |= editor.ModControl
	}
	if m&key.ModAlt != 0 {
		out |= editor.ModAlt
	}
	return out
}
