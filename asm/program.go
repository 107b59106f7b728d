package asm

import (
	"fmt"

	"go.creack.net/gamebook/asm/parser"
)

// StartNode is the node the header points the VM at.
const StartNode = "start"

// Program is an assembled game: the parsed data plus every resolved label.
type Program struct {
	Data *parser.GameData

	global   *Scope
	nodes    map[string]*Scope
	warnings []error
	size     uint32
}

func newProgram(g *parser.GameData) *Program {
	global := NewScope(nil)
	for name, v := range parser.Builtins {
		global.define(name, v, parser.Origin{})
	}
	return &Program{
		Data:   g,
		global: global,
		nodes:  map[string]*Scope{},
	}
}

// Size returns the image size in bytes.
func (p *Program) Size() int {
	return int(p.size)
}

// Labels returns every global name with its address or value.
// Builtins are left out.
func (p *Program) Labels() map[string]uint32 {
	out := p.global.Local()
	for name := range parser.Builtins {
		delete(out, name)
	}
	return out
}

// LocalLabels returns the labels declared inside the given node.
func (p *Program) LocalLabels(node string) map[string]uint32 {
	s, ok := p.nodes[node]
	if !ok {
		return nil
	}
	return s.Local()
}

// Resolve looks a name up as the given node would, empty node for globals only.
func (p *Program) Resolve(node, name string) (uint32, bool) {
	if s, ok := p.nodes[node]; ok {
		return s.Resolve(name)
	}
	return p.global.Resolve(name)
}

// Warnings returns the non fatal problems found while assembling.
func (p *Program) Warnings() []error {
	return p.warnings
}

func (p *Program) defineGlobal(name string, addr uint32, o parser.Origin) error {
	if prev, ok := p.global.define(name, addr, o); !ok {
		var msg string
		switch _, builtin := parser.Builtins[name]; {
		case builtin:
			msg = fmt.Sprintf("%q is builtin", name)
		case prev.Line == 0:
			msg = fmt.Sprintf("%q is a generated string label", name)
		default:
			msg = fmt.Sprintf("%q already defined at %s", name, prev)
		}
		return &Error{Origin: o, Err: ErrDuplicateSymbol, Msg: msg}
	}
	return nil
}
