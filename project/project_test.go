package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, `
[story]
name = "cellar"
source = "src/cellar.src"
output = "build/cellar.gbk"
symbols = "build/cellar.syms"

[build]
strict = true

[play]
seed = 42
output-limit = 4096
trace = true
`)
	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Story.Name != "cellar" {
		t.Errorf("story name = %q, want cellar", p.Story.Name)
	}
	if p.SourcePath() != filepath.Join(p.Dir, "src", "cellar.src") {
		t.Errorf("source path = %q", p.SourcePath())
	}
	if p.SymbolsPath() != filepath.Join(p.Dir, "build", "cellar.syms") {
		t.Errorf("symbols path = %q", p.SymbolsPath())
	}
	if !p.Build.Strict {
		t.Error("build strict = false, want true")
	}
	if p.Play.Seed != 42 || p.Play.OutputLimit != 4096 || !p.Play.Trace {
		t.Errorf("play = %+v", p.Play)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "attic")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	writeProject(t, dir, "")

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tests := []struct {
		name, got, want string
	}{
		{"name", p.Story.Name, "attic"},
		{"source", p.Story.Source, "attic.src"},
		{"output", p.Story.Output, "attic.gbk"},
		{"symbols", p.Story.Symbols, "attic.gbs"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if p.Build.Strict || p.Play.Seed != 0 || p.Play.OutputLimit != 0 {
		t.Errorf("zero values changed: %+v %+v", p.Build, p.Play)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected an error for a missing file")
	}
	dir := t.TempDir()
	writeProject(t, dir, "[story\nname = 1")
	if _, err := Load(dir); err == nil {
		t.Error("expected a parse error")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, `[story]
name = "found"`)
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}

	p, err := FindAndLoad(deep)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if p == nil || p.Story.Name != "found" {
		t.Fatalf("project = %+v", p)
	}
	abs, _ := filepath.Abs(root)
	if p.Dir != abs {
		t.Errorf("dir = %q, want %q", p.Dir, abs)
	}
}
