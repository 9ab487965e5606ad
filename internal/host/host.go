// Package host runs the interactive window that feeds pointer and key events
// into an editor and presents its frames.
package host

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/editor"
	"github.com/example/framepaint/internal/notify"
	"github.com/example/framepaint/internal/render"
	"github.com/example/framepaint/internal/theme"
)

const (
	statusHeight = 22
	windowMargin = 48
	maxWindowW   = 1600
	maxWindowH   = 1000

	// frameDropThreshold limits how many consecutive frames may be cancelled
	// in favour of newer ones before one is allowed to finish.
	frameDropThreshold = 10
	marqueeInterval    = 120 * time.Millisecond
)

// Host owns the window of one editor.
type Host struct {
	Editor    *editor.Editor
	Theme     *theme.Theme
	Notifier  *notify.Notifier
	ExportDir string
	Title     string
	FPS       int

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a Host during creation.
type Option func(*Host)

// WithTheme sets the window colours.
func WithTheme(th *theme.Theme) Option { return func(h *Host) { h.Theme = th } }

// WithNotifier sets the desktop notifier used for exports and copies.
func WithNotifier(n *notify.Notifier) Option { return func(h *Host) { h.Notifier = n } }

// WithExportDir sets the directory exports are written to.
func WithExportDir(dir string) Option { return func(h *Host) { h.ExportDir = dir } }

// WithTitle sets the window title.
func WithTitle(t string) Option { return func(h *Host) { h.Title = t } }

// WithFPS sets the project frame rate shown in the status bar.
func WithFPS(fps int) Option { return func(h *Host) { h.FPS = fps } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(h *Host) { h.onClose = fn } }

// New creates a Host for ed.
func New(ed *editor.Editor, opts ...Option) *Host {
	h := &Host{Editor: ed, Title: "framepaint", FPS: 12}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Host) notifyClose() {
	h.closeOnce.Do(func() {
		if h.onClose != nil {
			h.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (h *Host) Run() { driver.Main(h.Main) }

type tickEvent struct{}

type frame struct {
	width, height int
	scene         editor.Scene
	status        string
}

func canvasView(width, height int) image.Rectangle {
	return image.Rect(0, 0, width, max(0, height-statusHeight))
}

func statusRect(width, height int) image.Rectangle {
	return image.Rect(0, max(0, height-statusHeight), width, height)
}

// Main runs the event loop on s until the window closes.
func (h *Host) Main(s screen.Screen) {
	ed := h.Editor
	cs := ed.Size()
	width := min(cs.X+2*windowMargin, maxWindowW)
	height := min(cs.Y+2*windowMargin+statusHeight, maxWindowH)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: h.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer h.notifyClose()

	sess := newSession(ed, h.Notifier, h.ExportDir, h.FPS)
	bindings := defaultBindings()
	renderer := render.New(h.Theme)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(marqueeInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(tickEvent{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan frame, 1)
	defer close(paintCh)
	go func() {
		for fr := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, renderer, fr)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	fitted := false
	for {
		switch e := w.NextEvent().(type) {
		case tickEvent:
			if ed.WantsTick() {
				ed.Tick()
				w.Send(paint.Event{})
			}
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff && ed.Gesturing() {
				ed.PointerCancel()
				w.Send(paint.Event{})
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			sess.view = canvasView(width, height)
			if !fitted {
				ed.FitView(sess.view)
				fitted = true
			}
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			fr := frame{width: width, height: height, scene: ed.Scene(), status: sess.status()}
			select {
			case paintCh <- fr:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- fr
			}
		case mouse.Event:
			h.handleMouse(sess, e)
			w.Send(paint.Event{})
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			action, ok := lookup(bindings, e)
			if !ok {
				continue
			}
			if action == "quit" {
				stopPaint()
				return
			}
			if sess.do(action) {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (h *Host) handleMouse(sess *session, e mouse.Event) {
	ed := h.Editor
	p := r2.Vec{X: float64(e.X), Y: float64(e.Y)}
	sess.pointer = p
	mods := modifiers(e.Modifiers)
	inside := image.Pt(int(e.X), int(e.Y)).In(sess.view)

	if e.Button.IsWheel() {
		if e.Direction != mouse.DirStep || !inside {
			return
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			ed.ZoomAt(p, zoomStep)
		case mouse.ButtonWheelDown:
			ed.ZoomAt(p, 1/zoomStep)
		}
		return
	}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft || !inside {
			return
		}
		if err := ed.PointerDown(p, mods); err != nil {
			sess.flash(err.Error())
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			ed.PointerUp(p, mods)
		}
	case mouse.DirNone:
		if ed.Gesturing() && !inside {
			ed.PointerCancel()
			return
		}
		ed.PointerMove(p, mods)
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, r *render.Renderer, fr frame) {
	if fr.width <= 0 || fr.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{fr.width, fr.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	dst := b.RGBA()
	fr.scene.Draw(r, dst, canvasView(fr.width, fr.height))
	if ctx.Err() != nil {
		return
	}
	r.FillStatus(dst, statusRect(fr.width, fr.height), fr.status)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
