package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
# comment
Name: Custom
marqueea: #FF0000
Shadow: #00000080
Unknown: #123456
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Custom" {
		t.Errorf("name got %q want %q", th.Name, "Custom")
	}
	if got, want := th.MarqueeA, (color.RGBA{255, 0, 0, 255}); got != want {
		t.Errorf("MarqueeA got %v want %v", got, want)
	}
	if got, want := th.Shadow, (color.RGBA{0, 0, 0, 0x80}); got != want {
		t.Errorf("Shadow got %v want %v", got, want)
	}
	if th.HandleHover != Default().HandleHover {
		t.Errorf("unset key should keep the default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("FrameGuide: red")); err == nil {
		t.Fatal("expected error for colour without #")
	}
	if _, err := Parse(strings.NewReader("FrameGuide: #12345")); err == nil {
		t.Fatal("expected error for short hex")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	th := Default()
	th.Name = "rt"
	th.HandleFill = color.RGBA{1, 2, 3, 4}
	var sb strings.Builder
	if err := Encode(&sb, th, ":"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *got != *th {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, th)
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected embedded themes, got %v", names)
	}
	l := &Loader{}
	for _, n := range names {
		th, err := l.Load(n)
		if err != nil {
			t.Fatalf("load %s: %v", n, err)
		}
		if th.Name == "" {
			t.Errorf("theme %s has no name", n)
		}
	}
	dark, _ := l.Load("dark")
	if dark.Background == Default().Background {
		t.Errorf("dark theme should override the background")
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: FromDir\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Inline: map[string]*Theme{"inline": {Name: "Inline"}}}

	th, err := l.Load("mine")
	if err != nil || th.Name != "FromDir" {
		t.Fatalf("config dir theme: got %v, %v", th, err)
	}
	th, err = l.Load("inline")
	if err != nil || th.Name != "Inline" {
		t.Fatalf("inline theme: got %v, %v", th, err)
	}
	th, err = l.Load(filepath.Join(dir, "mine.theme"))
	if err != nil || th.Name != "FromDir" {
		t.Fatalf("path theme: got %v, %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for missing theme")
	}
	th, err = l.Load("")
	if err != nil || th.Name != "Default" {
		t.Fatalf("empty name: got %v, %v", th, err)
	}
}
