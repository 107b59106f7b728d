package asm

import "go.creack.net/gamebook/asm/parser"

type symbol struct {
	addr   uint32
	origin parser.Origin
}

// Scope maps names to words. Node scopes hold the node's labels and
// fall back to the global scope.
type Scope struct {
	parent *Scope
	names  map[string]symbol
}

func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: map[string]symbol{}}
}

// define binds name in this scope only. It returns the previous binding
// origin when the name is already taken here.
func (s *Scope) define(name string, addr uint32, o parser.Origin) (parser.Origin, bool) {
	if prev, ok := s.names[name]; ok {
		return prev.origin, false
	}
	s.names[name] = symbol{addr: addr, origin: o}
	return parser.Origin{}, true
}

// Resolve looks name up in this scope, then in its parents.
func (s *Scope) Resolve(name string) (uint32, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.names[name]; ok {
			return sym.addr, true
		}
	}
	return 0, false
}

// Local returns a copy of the bindings of this scope only.
func (s *Scope) Local() map[string]uint32 {
	out := make(map[string]uint32, len(s.names))
	for name, sym := range s.names {
		out[name] = sym.addr
	}
	return out
}
