package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.creack.net/gamebook/asm"
	"go.creack.net/gamebook/asm/symfile"
	"go.creack.net/gamebook/op"
)

const hello = `NODE start { say "Hello"; }`

func TestLoadBundled(t *testing.T) {
	s, err := LoadStory(DefaultStory, asm.Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if s.ShortName != "cellar" || s.Prog == nil || s.Symbols == nil {
		t.Errorf("story = %+v", s)
	}
	if _, err := op.DecodeHeader(s.Data); err != nil {
		t.Errorf("bad image: %s", err)
	}
}

func TestLoadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.src")
	if err := os.WriteFile(path, []byte(hello), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadStory(path, asm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s.ShortName != "hello" {
		t.Errorf("short name = %q", s.ShortName)
	}
	if _, ok := s.Symbols.Globals["start"]; !ok {
		t.Errorf("symbols = %+v", s.Symbols)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	buf, pr, err := asm.Compile("hello.src", hello, asm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	img := filepath.Join(dir, "hello.gbk")
	if err := os.WriteFile(img, buf, 0644); err != nil {
		t.Fatal(err)
	}

	// No sidecar, and no bundled story matches.
	s, err := LoadStory(img, asm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Symbols != nil || s.Prog != nil {
		t.Errorf("unexpected symbols %+v", s.Symbols)
	}

	if err := symfile.WriteFile(filepath.Join(dir, "hello"+symfile.Ext), symfile.FromProgram(pr)); err != nil {
		t.Fatal(err)
	}
	s, err = LoadStory(img, asm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if name, ok := s.Symbols.NameOf(pr.Labels()["start"]); !ok || name != "start" {
		t.Errorf("sidecar not used: %q %v", name, ok)
	}
}

func TestLoadBundledImage(t *testing.T) {
	bundled, err := LoadStory("@cellar", asm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	img := filepath.Join(t.TempDir(), "copy.gbk")
	if err := os.WriteFile(img, bundled.Data, 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadStory(img, asm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Symbols == nil || s.Symbols.Globals["fight-round"] != bundled.Symbols.Globals["fight-round"] {
		t.Errorf("bundled symbols not found")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "story.txt")
	if err := os.WriteFile(txt, []byte(hello), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.src")
	if err := os.WriteFile(bad, []byte("NODE start {"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadStory(txt, asm.Options{}); err == nil {
		t.Error("expected an extension error")
	}
	if _, err := LoadStory(bad, asm.Options{}); err == nil {
		t.Error("expected a compile error")
	}
	if _, err := LoadStory(filepath.Join(dir, "missing.src"), asm.Options{}); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := LoadStory("@missing", asm.Options{}); err == nil {
		t.Error("expected an unknown story error")
	}
}

func TestNewConfig(t *testing.T) {
	a := NewConfig(Options{Seed: 7, Limit: 10, Trace: true})
	b := NewConfig(Options{Seed: 7})
	if a.Rand.Uint64() != b.Rand.Uint64() {
		t.Errorf("same seed, different streams")
	}
	if a.OutputLimit != 10 || !a.Trace {
		t.Errorf("config = %+v", a)
	}
	if NewConfig(Options{}).Rand == nil {
		t.Errorf("clock seed not set")
	}
}
