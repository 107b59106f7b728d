package parser

import "go.creack.net/gamebook/op"

// SymbolKind enum type.
type SymbolKind int

// SymbolKind values.
const (
	KindNone SymbolKind = iota
	KindNode
	KindConstant
	KindItem
	KindSex
	KindSpecies
	KindSkill
	KindCharacter
	KindDamageType
	KindObjectDef
	KindInteger // Builtin numeric names (true, false, property ids).
	KindString
)

func (k SymbolKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindConstant:
		return "constant"
	case KindItem:
		return "item"
	case KindSex:
		return "sex"
	case KindSpecies:
		return "species"
	case KindSkill:
		return "skill"
	case KindCharacter:
		return "character"
	case KindDamageType:
		return "damage-type"
	case KindObjectDef:
		return "object"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	default:
		return "none"
	}
}

// ObjectKind maps a declared object symbol kind to its record kind.
func (k SymbolKind) ObjectKind() op.ObjectKind {
	switch k {
	case KindItem:
		return op.ObjItem
	case KindSex:
		return op.ObjSex
	case KindSpecies:
		return op.ObjSpecies
	case KindSkill:
		return op.ObjSkill
	case KindCharacter:
		return op.ObjCharacter
	case KindDamageType:
		return op.ObjDamageType
	case KindObjectDef:
		return op.ObjGeneric
	default:
		return op.ObjNone
	}
}

// SymbolDef is a declared name.
type SymbolDef struct {
	Name    string
	Kind    SymbolKind
	Origin  Origin
	Builtin bool
}

// SymbolTable holds every declared name. Names are unique across kinds.
type SymbolTable struct {
	defs  map[string]SymbolDef
	order []string
}

// StackKeyword is the operand name meaning "pop the stack".
const StackKeyword = "stack"

// Builtins are the names every program can reference, with their value.
var Builtins = func() map[string]uint32 {
	out := map[string]uint32{
		"false":      op.False,
		"true":       op.True,
		"continue":   op.Continue,
		StackKeyword: op.PopMarker,
	}
	for _, elem := range op.PropertyTable {
		if !elem.Keyed {
			out[elem.Name] = elem.ID
		}
	}
	return out
}()

func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{defs: map[string]SymbolDef{}}
	for name := range Builtins {
		st.defs[name] = SymbolDef{Name: name, Kind: KindInteger, Builtin: true}
	}
	return st
}

// Define records a new name. Redefinition of any name fails with
// ErrDuplicateSymbol pointing at the first definition.
func (st *SymbolTable) Define(name string, o Origin, kind SymbolKind) error {
	if prev, ok := st.defs[name]; ok {
		e := errorf(o, ErrDuplicateSymbol, "%s %q already defined as %s", kind, name, prev.Kind)
		if !prev.Builtin {
			e.Prev = &prev.Origin
		}
		return e
	}
	st.defs[name] = SymbolDef{Name: name, Kind: kind, Origin: o}
	st.order = append(st.order, name)
	return nil
}

// Lookup never fails, a miss returns false.
func (st *SymbolTable) Lookup(name string) (SymbolDef, bool) {
	def, ok := st.defs[name]
	return def, ok
}

// Kind returns the kind of name, KindNone if undefined.
func (st *SymbolTable) Kind(name string) SymbolKind {
	return st.defs[name].Kind
}

// Each iterates user defined symbols in definition order.
func (st *SymbolTable) Each(fn func(SymbolDef)) {
	for _, name := range st.order {
		fn(st.defs[name])
	}
}
