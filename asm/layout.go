package asm

import (
	"fmt"

	"go.creack.net/gamebook/asm/parser"
	"go.creack.net/gamebook/op"
)

// layout is the first pass: it assigns an address to every string,
// object, node, label and statement without writing anything.
func (p *Program) layout() error {
	g := p.Data
	addr := uint32(op.HeaderSize)

	// Strings, in insertion order.
	var err error
	g.Strings.Each(func(label, text string) {
		if err != nil {
			return
		}
		err = p.defineGlobal(label, addr, parser.Origin{File: g.Name})
		addr += uint32(op.StringRecordSize(text))
	})
	if err != nil {
		return err
	}

	// Constants are plain values, they take no room in the image.
	g.Symbols.Each(func(def parser.SymbolDef) {
		if err != nil || def.Kind != parser.KindConstant {
			return
		}
		err = p.defineGlobal(def.Name, g.Constants[def.Name], def.Origin)
	})
	if err != nil {
		return err
	}

	for _, obj := range g.Objects {
		if err := p.defineGlobal(obj.Name, addr, obj.Origin); err != nil {
			return err
		}
		addr += uint32(op.ObjectRecordSize(len(obj.Props)))
	}

	for _, n := range g.Nodes {
		if err := p.defineGlobal(n.Name, addr, n.Origin); err != nil {
			return err
		}
		scope := NewScope(p.global)
		p.nodes[n.Name] = scope
		addr++ // Node tag.
		for _, st := range n.Block {
			st.Pos = addr
			size, err := layoutStatement(scope, st)
			if err != nil {
				return fmt.Errorf("node %q: %w", n.Name, err)
			}
			addr += size
		}
	}

	p.size = addr
	return nil
}

// layoutStatement validates a statement and returns its encoded size.
// Labels are bound in the node scope to the current address.
func layoutStatement(scope *Scope, st *parser.Statement) (uint32, error) {
	cmd := st.Command()
	if cmd == op.LabelCmd {
		if len(st.Values) != 2 {
			return 0, &Error{Origin: st.Origin, Err: ErrArityMismatch, Msg: fmt.Sprintf("label takes 1 argument, got %d", len(st.Values)-1)}
		}
		name, ok := st.Values[1].(parser.Ident)
		if !ok {
			return 0, &Error{Origin: st.Origin, Err: ErrArityMismatch, Msg: fmt.Sprintf("label name %s is not an identifier", st.Values[1])}
		}
		if _, ok := parser.Builtins[string(name)]; ok {
			return 0, &Error{Origin: st.Origin, Err: ErrDuplicateSymbol, Msg: fmt.Sprintf("label %q is builtin", name)}
		}
		if prev, ok := scope.define(string(name), st.Pos, st.Origin); !ok {
			return 0, &Error{Origin: st.Origin, Err: ErrDuplicateLabel, Msg: fmt.Sprintf("%q already defined at %s", name, prev)}
		}
		return 0, nil
	}

	oc, ok := op.Lookup(cmd)
	if !ok {
		return 0, &Error{Origin: st.Origin, Err: ErrUnknownCommand, Msg: st.Values[0].String()}
	}
	if got := len(st.Values) - 1; got != oc.Arity {
		return 0, &Error{Origin: st.Origin, Err: ErrArityMismatch, Msg: fmt.Sprintf("%s takes %d arguments, got %d", oc.Name, oc.Arity, got)}
	}
	return uint32(oc.Size()), nil
}
