// Package clipboard moves PNG-encoded images between the editor and the
// system clipboard.
package clipboard

import (
	"errors"
	"os"
)

var (
	// ErrNoDisplay is returned on X11/Wayland systems without a display.
	ErrNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	// ErrUnsupported is returned where no clipboard backend is built in.
	ErrUnsupported = errors.New("clipboard image operations are not supported on this platform")
	// ErrEmpty is returned when the clipboard holds no image.
	ErrEmpty = errors.New("clipboard does not contain image data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
