package asm

import (
	"fmt"

	"github.com/tliron/commonlog"

	"go.creack.net/gamebook/asm/parser"
	"go.creack.net/gamebook/op"
)

var logger = commonlog.GetLogger("gamebook.asm")

// emit is the second pass: it writes every record at the address
// computed by layout and patches the header.
func (p *Program) emit() ([]byte, error) {
	g := p.Data
	out := make([]byte, op.HeaderSize, p.size)

	g.Strings.Each(func(_, text string) {
		out = append(out, op.IDString)
		out = append(out, text...)
		out = append(out, 0)
	})

	for _, obj := range g.Objects {
		out = append(out, op.IDObject, byte(obj.Kind))
		out = op.Endian.AppendUint32(out, uint32(len(obj.Props)))
		for _, prop := range obj.Props {
			key, err := p.propertyKey(prop)
			if err != nil {
				return nil, err
			}
			value, err := p.staticWord(prop.Value, prop.Origin)
			if err != nil {
				return nil, err
			}
			out = op.Endian.AppendUint32(out, key)
			out = op.Endian.AppendUint32(out, value)
		}
	}

	for _, n := range g.Nodes {
		scope := p.nodes[n.Name]
		out = append(out, op.IDNode)
		for _, st := range n.Block {
			if st.Command() == op.LabelCmd {
				continue
			}
			if uint32(len(out)) != st.Pos {
				return nil, fmt.Errorf("%s: statement laid out at 0x%04x, emitted at 0x%04x", st.Origin, st.Pos, len(out))
			}
			oc, _ := op.Lookup(st.Command())
			out = append(out, oc.Code)
			for _, arg := range st.Args() {
				w, err := p.word(scope, arg, st.Origin)
				if err != nil {
					return nil, fmt.Errorf("node %q: %w", n.Name, err)
				}
				out = op.Endian.AppendUint32(out, w)
			}
		}
	}
	if uint32(len(out)) != p.size {
		return nil, fmt.Errorf("emitted %d bytes, laid out %d", len(out), p.size)
	}

	h := op.NewHeader()
	h.StartNode, _ = p.global.Resolve(StartNode)
	h.Title, _ = p.global.Resolve(g.Title)
	h.Byline, _ = p.global.Resolve(g.Byline)
	h.Version, _ = p.global.Resolve(g.Version)
	if err := h.Encode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// operand resolves an argument, child scope first. Unknown names become
// the unresolved sentinel and a warning.
func (p *Program) operand(scope *Scope, v parser.Value, o parser.Origin) op.Operand {
	switch v := v.(type) {
	case parser.Int:
		return op.LiteralOperand(uint32(v))
	case parser.Ident:
		if v == parser.StackKeyword {
			return op.PopOperand()
		}
		if addr, ok := scope.Resolve(string(v)); ok {
			return op.LiteralOperand(addr)
		}
		w := &Error{Origin: o, Err: ErrUnresolvedSymbol, Msg: string(v)}
		p.warnings = append(p.warnings, w)
		logger.Warningf("%s", w)
		return op.LiteralOperand(op.Unresolved)
	default:
		panic(fmt.Sprintf("unexpected value type %T", v))
	}
}

func (p *Program) word(scope *Scope, v parser.Value, o parser.Origin) (uint32, error) {
	w, err := p.operand(scope, v, o).Word()
	if err != nil {
		return 0, &Error{Origin: o, Err: err, Msg: v.String()}
	}
	return w, nil
}

// staticWord resolves an object property word, where popping makes no sense.
func (p *Program) staticWord(v parser.Value, o parser.Origin) (uint32, error) {
	if v == parser.Ident(parser.StackKeyword) {
		return 0, &Error{Origin: o, Err: op.ErrReservedLiteral, Msg: "stack is only valid as an instruction operand"}
	}
	return p.word(p.global, v, o)
}

func (p *Program) propertyKey(prop parser.Property) (uint32, error) {
	if prop.Key != nil {
		return p.staticWord(prop.Key, prop.Origin)
	}
	def, _ := op.LookupProperty(prop.Name)
	return def.ID, nil
}
