//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"testing"

	"github.com/jezek/xgb/xproto"
)

var testAtoms = atoms{clipboard: 10, targets: 11, png: 12, property: 13}

func TestAnswerTargets(t *testing.T) {
	typ, format, payload, ok := testAtoms.answer(testAtoms.targets, []byte{1})
	if !ok || typ != xproto.AtomAtom || format != 32 {
		t.Fatalf("targets answer got %v %v %v", typ, format, ok)
	}
	want := []byte{11, 0, 0, 0, 12, 0, 0, 0}
	if !bytes.Equal(payload, want) {
		t.Fatalf("targets payload got %v want %v", payload, want)
	}

	_, _, payload, _ = testAtoms.answer(testAtoms.targets, nil)
	if len(payload) != 4 {
		t.Fatalf("empty clipboard should only list TARGETS, got %v", payload)
	}
}

func TestAnswerPNG(t *testing.T) {
	data := []byte("png bytes")
	typ, format, payload, ok := testAtoms.answer(testAtoms.png, data)
	if !ok || typ != testAtoms.png || format != 8 || !bytes.Equal(payload, data) {
		t.Fatalf("png answer got %v %v %q %v", typ, format, payload, ok)
	}
	if _, _, _, ok := testAtoms.answer(testAtoms.png, nil); ok {
		t.Fatal("png target without data should be refused")
	}
	if _, _, _, ok := testAtoms.answer(xproto.AtomString, data); ok {
		t.Fatal("unknown target should be refused")
	}
}

func TestAtomBytesLittleEndian(t *testing.T) {
	got := atomBytes([]xproto.Atom{0x01020304})
	if !bytes.Equal(got, []byte{4, 3, 2, 1}) {
		t.Fatalf("got %v", got)
	}
}
