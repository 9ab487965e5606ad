package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/example/framepaint/internal/editor"
	"github.com/example/framepaint/internal/host"
	"github.com/example/framepaint/internal/pixelops"
)

type editCmd struct {
	r         *root
	fs        *flag.FlagSet
	imagePath string
	width     int
	height    int
	fps       int
	exportDir string
	tool      string
}

func (e *editCmd) Program() string { return e.r.subcommand("edit") }

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	cfg := r.config
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{r: r, fs: fs}
	fs.StringVar(&e.imagePath, "image", "", "PNG, JPEG or GIF file loaded into the first layer; sets the canvas size")
	fs.IntVar(&e.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&e.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.IntVar(&e.fps, "fps", cfg.Canvas.FPS, "project frame rate")
	fs.StringVar(&e.exportDir, "export-dir", cfg.ExportDir, "directory exported frames are written to")
	fs.StringVar(&e.tool, "tool", editor.ToolBrush.String(), "initial tool")
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: e}
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", e.width, e.height)
	}
	if _, ok := editor.ParseTool(e.tool); !ok {
		return nil, fmt.Errorf("unknown tool %q", e.tool)
	}
	return e, nil
}

// newEditor builds the editor described by the flags and configuration,
// hydrating the first layer from the -image file.
func (e *editCmd) newEditor() (*editor.Editor, error) {
	cfg := e.r.config
	tool, _ := editor.ParseTool(e.tool)
	w, h := e.width, e.height
	var data []byte
	if e.imagePath != "" {
		var err error
		data, err = os.ReadFile(e.imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		ic, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", e.imagePath, err)
		}
		w, h = ic.Width, ic.Height
	}
	ed := editor.New(
		editor.WithCanvas(w, h),
		editor.WithBackground(cfg.Canvas.Background),
		editor.WithStyle(pixelops.Style{Color: cfg.Brush.Color, Width: cfg.Brush.Width}),
		editor.WithTolerance(cfg.Wand.Tolerance),
		editor.WithTheme(e.r.activeTheme),
		editor.WithTool(tool),
	)
	if data != nil {
		if err := ed.ImportImageIntoLayer(ed.ActiveLayer().ID, data); err != nil {
			return nil, err
		}
	}
	return ed, nil
}

func (e *editCmd) Run() error {
	ed, err := e.newEditor()
	if err != nil {
		return err
	}
	host.New(ed,
		host.WithTheme(e.r.activeTheme),
		host.WithNotifier(e.r.notifier),
		host.WithExportDir(e.exportDir),
		host.WithFPS(e.fps),
	).Run()
	return nil
}
