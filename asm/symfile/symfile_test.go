package symfile

import (
	"bytes"
	"path/filepath"
	"testing"

	"go.creack.net/gamebook/asm"
)

const src = `
CONSTANT gold 100;
ITEM lamp { name "lamp"; }
NODE start { label top; add-items gold lamp; jump top; do-node missing; }
`

func compile(t *testing.T) *Map {
	t.Helper()
	_, pr, err := asm.Compile("story.src", src, asm.Options{})
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	return FromProgram(pr)
}

func TestFromProgram(t *testing.T) {
	m := compile(t)
	if _, ok := m.Globals["gold"]; ok {
		t.Errorf("constant listed as an address")
	}
	if m.Constants["gold"] != 100 {
		t.Errorf("constants = %v", m.Constants)
	}
	start := m.Globals["start"]
	if name, ok := m.NameOf(start); !ok || name != "start" {
		t.Errorf("NameOf(0x%x) = %q, %v", start, name, ok)
	}
	if name, ok := m.LocalName("start", start+1); !ok || name != "top" {
		t.Errorf("LocalName = %q, %v", name, ok)
	}
	if len(m.Warnings) != 1 {
		t.Errorf("warnings = %v", m.Warnings)
	}
	var nilMap *Map
	if _, ok := nilMap.NameOf(start); ok {
		t.Errorf("nil map named an address")
	}
}

func TestFileRoundTrip(t *testing.T) {
	m := compile(t)
	path := filepath.Join(t.TempDir(), "story"+Ext)
	if err := WriteFile(path, m); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != "story.src" || got.Size != m.Size {
		t.Errorf("got source %q size %d", got.Source, got.Size)
	}
	if got.Globals["lamp"] != m.Globals["lamp"] || got.Locals["start"]["top"] != m.Locals["start"]["top"] {
		t.Errorf("symbols lost: %+v", got)
	}
}

func TestCanonical(t *testing.T) {
	a, err := Marshal(compile(t))
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		b, err := Marshal(compile(t))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Fatal("encoding is not deterministic")
		}
	}
	if _, err := Unmarshal([]byte{0xff}); err == nil {
		t.Error("expected error on garbage input")
	}
}
