// Package symfile reads and writes the symbol map sidecar of a compiled
// image, used by the disassembler and the players to name addresses.
package symfile

import (
	"fmt"
	"os"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"go.creack.net/gamebook/asm"
)

// Ext is the conventional extension of symbol map files.
const Ext = ".gbs"

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("symfile: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Map is the symbol map of one image.
type Map struct {
	Source    string                       `cbor:"1,keyasint"`
	Size      uint32                       `cbor:"2,keyasint"`
	Globals   map[string]uint32            `cbor:"3,keyasint"`           // Strings, objects and nodes.
	Constants map[string]uint32            `cbor:"4,keyasint,omitempty"` // Values, not addresses.
	Locals    map[string]map[string]uint32 `cbor:"5,keyasint,omitempty"` // Node name to its labels.
	Warnings  []string                     `cbor:"6,keyasint,omitempty"`
}

// FromProgram collects the symbols of an assembled program.
func FromProgram(pr *asm.Program) *Map {
	m := &Map{
		Source:    pr.Data.Name,
		Size:      uint32(pr.Size()),
		Globals:   pr.Labels(),
		Constants: map[string]uint32{},
		Locals:    map[string]map[string]uint32{},
	}
	for name, v := range pr.Data.Constants {
		m.Constants[name] = v
		delete(m.Globals, name)
	}
	for _, n := range pr.Data.Nodes {
		if labels := pr.LocalLabels(n.Name); len(labels) > 0 {
			m.Locals[n.Name] = labels
		}
	}
	for _, w := range pr.Warnings() {
		m.Warnings = append(m.Warnings, w.Error())
	}
	return m
}

// Marshal encodes the map. The encoding is canonical, so the same
// program always yields the same bytes.
func Marshal(m *Map) ([]byte, error) {
	return cborEncMode.Marshal(m)
}

func Unmarshal(data []byte) (*Map, error) {
	var m Map
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("symfile: unmarshal: %w", err)
	}
	return &m, nil
}

func WriteFile(path string, m *Map) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("symfile: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("symfile: write: %w", err)
	}
	return nil
}

func ReadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("symfile: read: %w", err)
	}
	return Unmarshal(data)
}

// NameOf returns the global name bound to addr. A nil map names nothing.
func (m *Map) NameOf(addr uint32) (string, bool) {
	if m == nil {
		return "", false
	}
	var names []string
	for name, a := range m.Globals {
		if a == addr {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return names[0], true
}

// LocalName returns the label of node bound to addr.
func (m *Map) LocalName(node string, addr uint32) (string, bool) {
	if m == nil {
		return "", false
	}
	var names []string
	for name, a := range m.Locals[node] {
		if a == addr {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return names[0], true
}
