package host

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/framepaint/internal/clipboard"
	"github.com/example/framepaint/internal/editor"
	"github.com/example/framepaint/internal/notify"
	"github.com/example/framepaint/internal/pixelops"
)

const (
	messageDuration = 2 * time.Second
	panStep         = 20
	zoomStep        = 1.25
	maxBrushWidth   = 200
)

// session holds the host-side state around an editor: messages, the last
// pointer position and the window view. It is only used from the event
// goroutine.
type session struct {
	ed        *editor.Editor
	notifier  *notify.Notifier
	exportDir string
	fps       int

	now       func() time.Time
	clipWrite func([]byte) error
	clipRead  func() ([]byte, error)

	message      string
	messageUntil time.Time
	pointer      r2.Vec
	view         image.Rectangle

	actions map[string]func()
}

func newSession(ed *editor.Editor, n *notify.Notifier, exportDir string, fps int) *session {
	s := &session{
		ed:        ed,
		notifier:  n,
		exportDir: exportDir,
		fps:       fps,
		now:       time.Now,
		clipWrite: clipboard.WritePNG,
		clipRead:  clipboard.ReadPNG,
	}
	s.actions = s.register()
	return s
}

func (s *session) register() map[string]func() {
	actions := map[string]func(){
		"copy":       func() { s.copy(false) },
		"cut":        func() { s.copy(true) },
		"paste":      s.paste,
		"export":     s.export,
		"select-all": s.ed.SelectAll,
		"deselect": func() {
			if s.ed.Gesturing() {
				s.ed.PointerCancel()
				return
			}
			s.ed.ClearSelection()
		},
		"commit":       s.ed.CommitSelectionTransform,
		"new-layer":    func() { s.flash(fmt.Sprintf("added %s", s.ed.AddLayer("").Name)) },
		"layer-up":     func() { s.stepLayer(1) },
		"layer-down":   func() { s.stepLayer(-1) },
		"toggle-layer": s.toggleLayer,
		"raise-layer":  func() { s.moveLayer(1) },
		"lower-layer":  func() { s.moveLayer(-1) },
		"zoom-in":      func() { s.ed.ZoomAt(s.anchor(), zoomStep) },
		"zoom-out":     func() { s.ed.ZoomAt(s.anchor(), 1/zoomStep) },
		"fit":          func() { s.ed.FitView(s.view) },
		"width-up":     func() { s.stepWidth(1) },
		"width-down":   func() { s.stepWidth(-1) },
		"pan-left":     func() { s.pan(panStep, 0) },
		"pan-right":    func() { s.pan(-panStep, 0) },
		"pan-up":       func() { s.pan(0, panStep) },
		"pan-down":     func() { s.pan(0, -panStep) },
	}
	for _, t := range editor.Tools() {
		actions["tool:"+t.String()] = func() { s.ed.SetTool(t) }
	}
	return actions
}

// do runs a named action and reports whether it exists.
func (s *session) do(name string) bool {
	fn, ok := s.actions[name]
	if !ok {
		return false
	}
	fn()
	return true
}

func (s *session) flash(msg string) {
	s.message = msg
	log.Print(msg)
	s.messageUntil = s.now().Add(messageDuration)
}

// anchor is the device point zoom keys keep fixed.
func (s *session) anchor() r2.Vec {
	if s.view.Empty() {
		return s.pointer
	}
	c := s.view.Min.Add(s.view.Max).Div(2)
	return r2.Vec{X: float64(c.X), Y: float64(c.Y)}
}

func (s *session) pan(dx, dy float64) {
	v := s.ed.View()
	v.Pan(r2.Vec{X: dx, Y: dy})
	s.ed.SetView(v)
}

func (s *session) stepWidth(d float64) {
	st := s.ed.Style()
	st.Width = max(1, min(st.Width+d, maxBrushWidth))
	s.ed.SetStyle(st)
}

func (s *session) stepLayer(d int) {
	ls := s.ed.Layers()
	active := s.ed.ActiveLayer()
	if active == nil || len(ls) == 0 {
		return
	}
	for i, l := range ls {
		if l.ID != active.ID {
			continue
		}
		j := i + d
		if j < 0 || j >= len(ls) {
			return
		}
		if err := s.ed.SetActiveLayer(ls[j].ID); err != nil {
			log.Printf("layer: %v", err)
		}
		return
	}
}

// moveLayer swaps the active layer with its neighbour d steps up the stack
// and renumbers the stack order.
func (s *session) moveLayer(d int) {
	ls := s.ed.Layers()
	active := s.ed.ActiveLayer()
	if active == nil {
		return
	}
	for i, l := range ls {
		if l.ID != active.ID {
			continue
		}
		j := i + d
		if j < 0 || j >= len(ls) {
			return
		}
		ls[i], ls[j] = ls[j], ls[i]
		for k, o := range ls {
			if err := s.ed.SetLayerOrder(o.ID, k); err != nil {
				log.Printf("layer: %v", err)
			}
		}
		return
	}
}

func (s *session) toggleLayer() {
	l := s.ed.ActiveLayer()
	if l == nil {
		return
	}
	if err := s.ed.SetLayerVisible(l.ID, !l.Visible); err != nil {
		log.Printf("layer: %v", err)
	}
}

func (s *session) copy(cut bool) {
	var p *editor.Payload
	verb := "copied"
	if cut {
		p = s.ed.CutSelection()
		verb = "cut"
	} else {
		p = s.ed.CopySelection()
	}
	if p == nil {
		s.flash("nothing selected")
		return
	}
	detail := fmt.Sprintf("%dx%d selection", p.Image.Bounds().Dx(), p.Image.Bounds().Dy())
	data, err := p.PNG()
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	if err := s.clipWrite(data); err != nil {
		log.Printf("copy: %v", err)
		s.flash(fmt.Sprintf("%s %s (editor clipboard only)", verb, detail))
		return
	}
	s.notifier.Copy(detail, p.Image)
	s.flash(fmt.Sprintf("%s %s to clipboard", verb, detail))
}

// pasteTarget is the world point a paste is centred on: the pointer when it
// is over the canvas, the canvas centre otherwise.
func (s *session) pasteTarget() r2.Vec {
	w := s.ed.View().ToWorld(s.pointer)
	size := s.ed.Size()
	if w.X >= 0 && w.Y >= 0 && w.X < float64(size.X) && w.Y < float64(size.Y) {
		return w
	}
	return r2.Vec{X: float64(size.X) / 2, Y: float64(size.Y) / 2}
}

func (s *session) paste() {
	at := s.pasteTarget()
	// Switching tools commits floating pixels, so it has to happen before
	// the paste floats new ones.
	s.ed.SetTool(editor.ToolTransform)
	data, err := s.clipRead()
	if err == nil {
		var p *editor.Payload
		if p, err = editor.DecodePayload(data); err == nil && s.ed.PasteImageAt(p.Image, at) {
			return
		}
	}
	if err != nil {
		log.Printf("paste: %v", err)
	}
	if !s.ed.PasteAt(at) {
		s.flash("clipboard is empty")
	}
}

// exportPath names an export file by its timestamp.
func exportPath(dir string, t time.Time) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "frame-"+t.Format("20060102-150405")+".png")
}

func (s *session) export() {
	data, err := s.ed.ExportFlattenedImage()
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	path := exportPath(s.exportDir, s.now())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("export: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("export: %v", err)
		return
	}
	s.notifier.Export(path)
	s.flash(fmt.Sprintf("exported %s", path))
}

// status is the text of the status bar.
func (s *session) status() string {
	parts := []string{s.ed.Tool().String()}
	ls := s.ed.Layers()
	if l := s.ed.ActiveLayer(); l != nil {
		idx := 0
		for i, o := range ls {
			if o.ID == l.ID {
				idx = i
			}
		}
		vis := ""
		if !l.Visible {
			vis = " hidden"
		}
		parts = append(parts, fmt.Sprintf("layer %s %d/%d%s", l.Name, idx+1, len(ls), vis))
	} else {
		parts = append(parts, "no layer")
	}
	size := s.ed.Size()
	parts = append(parts,
		fmt.Sprintf("%dx%d @ %d fps", size.X, size.Y, s.fps),
		fmt.Sprintf("zoom %d%%", int(s.ed.View().Scale*100+0.5)),
		widthLabel(s.ed.Style()),
	)
	if s.message != "" && s.now().Before(s.messageUntil) {
		parts = append(parts, s.message)
	}
	return strings.Join(parts, "  ")
}

func widthLabel(st pixelops.Style) string {
	return fmt.Sprintf("width %g", st.Width)
}
