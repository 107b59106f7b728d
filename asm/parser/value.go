package parser

import (
	"strconv"
	"strings"

	"go.creack.net/gamebook/op"
)

// Value is a statement argument: either an Ident or an Int.
type Value interface {
	isValue()
	String() string
}

// Ident is a symbolic name, resolved by the assembler.
type Ident string

// Int is a literal word.
type Int uint32

func (Ident) isValue() {}
func (Int) isValue()   {}

func (i Ident) String() string { return string(i) }
func (i Int) String() string   { return strconv.FormatUint(uint64(i), 10) }

// Statement is a command followed by its arguments.
type Statement struct {
	Origin Origin
	Values []Value
	Pos    uint32 // Address, set by the assembler's first pass.
}

// Command returns the command name, empty if the first value is not an identifier.
func (s *Statement) Command() string {
	if len(s.Values) == 0 {
		return ""
	}
	id, _ := s.Values[0].(Ident)
	return string(id)
}

// Args returns the values following the command.
func (s *Statement) Args() []Value {
	if len(s.Values) == 0 {
		return nil
	}
	return s.Values[1:]
}

func (s *Statement) String() string {
	parts := make([]string, 0, len(s.Values))
	for _, elem := range s.Values {
		parts = append(parts, elem.String())
	}
	return strings.Join(parts, " ") + ";"
}

// Block is an ordered list of statements, always ending with an end statement.
type Block []*Statement

// Node is a named block.
type Node struct {
	Name   string
	Origin Origin
	Block  Block
}

// Property is one line of an object declaration.
// Key is only set for keyed properties (skill <skill> <n>).
type Property struct {
	Name   string
	Origin Origin
	Key    Value
	Value  Value
}

// Object is a declared game object (item, character, skill...).
type Object struct {
	Name   string
	Kind   op.ObjectKind
	Origin Origin
	Props  []Property
}
