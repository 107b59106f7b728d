// Package project handles gamebook.toml project configuration.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the project file.
const FileName = "gamebook.toml"

// Image and symbol map extensions.
const (
	ImageExt   = ".gbk"
	SymbolsExt = ".gbs"
)

// Project represents a gamebook.toml file.
type Project struct {
	Story Story `toml:"story"`
	Build Build `toml:"build"`
	Play  Play  `toml:"play"`

	// Dir is the directory containing the gamebook.toml file (set at load time).
	Dir string `toml:"-"`
}

// Story locates the source and the build outputs, relative to Dir.
type Story struct {
	Name    string `toml:"name"`
	Source  string `toml:"source"`
	Output  string `toml:"output"`
	Symbols string `toml:"symbols"`
}

type Build struct {
	Strict bool `toml:"strict"`
}

type Play struct {
	Seed        uint64 `toml:"seed"` // 0 seeds from the clock.
	OutputLimit int    `toml:"output-limit"`
	Trace       bool   `toml:"trace"`
}

// Load parses the gamebook.toml file in dir.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	p.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	p.setDefaults()
	return &p, nil
}

// setDefaults derives the missing file names from the directory name.
func (p *Project) setDefaults() {
	if p.Story.Name == "" {
		p.Story.Name = filepath.Base(p.Dir)
	}
	if p.Story.Source == "" {
		p.Story.Source = p.Story.Name + ".src"
	}
	if p.Story.Output == "" {
		p.Story.Output = strings.TrimSuffix(p.Story.Source, filepath.Ext(p.Story.Source)) + ImageExt
	}
	if p.Story.Symbols == "" {
		p.Story.Symbols = strings.TrimSuffix(p.Story.Output, filepath.Ext(p.Story.Output)) + SymbolsExt
	}
}

// FindAndLoad walks up from startDir to find a gamebook.toml file.
// Returns nil if there is none.
func FindAndLoad(startDir string) (*Project, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (p *Project) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}

func (p *Project) SourcePath() string  { return p.path(p.Story.Source) }
func (p *Project) OutputPath() string  { return p.path(p.Story.Output) }
func (p *Project) SymbolsPath() string { return p.path(p.Story.Symbols) }
