// Package disasm turns a compiled image back into a readable listing.
package disasm

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.creack.net/gamebook/asm/symfile"
	"go.creack.net/gamebook/op"
)

// Instruction is one decoded instruction of a node.
type Instruction struct {
	Addr uint32
	Op   op.OpCode
	Args []op.Operand
}

// Record is one string, object or node record of the image.
type Record struct {
	Addr uint32
	Tag  byte
	Name string // From the symbol map, empty if unknown.
	Size uint32

	Text   string        // String records.
	Object *op.Object    // Object records.
	Code   []Instruction // Node records.
}

// Listing is the decoded image.
type Listing struct {
	Header  op.Header
	Size    int
	Records []*Record

	syms *symfile.Map
}

// Disassemble decodes every record of the image. The symbol map is
// optional: without it, a node ends at its first end instruction.
func Disassemble(data []byte, syms *symfile.Map) (*Listing, error) {
	h, err := op.DecodeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	l := &Listing{Header: h, Size: len(data), syms: syms}

	// Record starts known from the symbol map bound node bodies.
	var bounds []uint32
	if syms != nil {
		for _, addr := range syms.Globals {
			bounds = append(bounds, addr)
		}
		slices.Sort(bounds)
	}

	c := op.NewCursor(data, op.HeaderSize)
	for !c.EOF() {
		r := &Record{Addr: c.Pos()}
		r.Name, _ = syms.NameOf(r.Addr)
		tag, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		r.Tag = tag
		if err := c.SetPos(r.Addr); err != nil {
			return nil, err
		}

		switch tag {
		case op.IDString:
			if r.Text, err = op.ReadString(c); err != nil {
				return nil, fmt.Errorf("string at 0x%04x: %w", r.Addr, err)
			}
		case op.IDObject:
			if r.Object, err = op.ReadObject(c); err != nil {
				return nil, fmt.Errorf("object at 0x%04x: %w", r.Addr, err)
			}
		case op.IDNode:
			limit := uint32(len(data))
			if syms != nil {
				limit = nextBound(bounds, r.Addr, limit)
			}
			if r.Code, err = decodeNode(c, limit, syms == nil); err != nil {
				return nil, fmt.Errorf("node at 0x%04x: %w", r.Addr, err)
			}
		default:
			return nil, fmt.Errorf("unknown record tag 0x%02x at 0x%04x: %w", tag, r.Addr, op.ErrMalformedRecord)
		}
		r.Size = c.Pos() - r.Addr
		l.Records = append(l.Records, r)
	}
	return l, nil
}

func nextBound(bounds []uint32, addr, size uint32) uint32 {
	i, found := slices.BinarySearch(bounds, addr)
	if found {
		i++
	}
	if i < len(bounds) {
		return bounds[i]
	}
	return size
}

// decodeNode reads instructions up to limit, or up to the first end
// when stopAtEnd is set.
func decodeNode(c *op.Cursor, limit uint32, stopAtEnd bool) ([]Instruction, error) {
	if err := c.Expect(op.IDNode); err != nil {
		return nil, err
	}
	var out []Instruction
	for c.Pos() < limit {
		at := c.Pos()
		code, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		oc, ok := op.ByCode(code)
		if !ok {
			return nil, fmt.Errorf("unknown opcode 0x%02x at 0x%04x: %w", code, at, op.ErrMalformedRecord)
		}
		ins := Instruction{Addr: at, Op: oc}
		for range oc.Arity {
			w, err := c.ReadWord()
			if err != nil {
				return nil, err
			}
			ins.Args = append(ins.Args, op.DecodeOperand(w))
		}
		out = append(out, ins)
		if code == op.OpEnd && stopAtEnd {
			break
		}
	}
	return out, nil
}

// Find returns the record starting at addr.
func (l *Listing) Find(addr uint32) *Record {
	i, ok := slices.BinarySearchFunc(l.Records, addr, func(r *Record, addr uint32) int {
		return int(int64(r.Addr) - int64(addr))
	})
	if !ok {
		return nil
	}
	return l.Records[i]
}

// operand names a word when the symbol map binds it, local labels first.
func (l *Listing) operand(node string, o op.Operand) string {
	if o.Kind == op.Pop {
		return "stack"
	}
	if o.Value >= op.HeaderSize && int(o.Value) < l.Size {
		if name, ok := l.syms.LocalName(node, o.Value); ok {
			return name
		}
		if name, ok := l.syms.NameOf(o.Value); ok {
			return name
		}
	}
	return strconv.FormatUint(uint64(o.Value), 10)
}

func (l *Listing) recordName(r *Record) string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("_%04x", r.Addr)
}

func (l *Listing) headerField(name string, addr uint32) string {
	if addr == 0 {
		return fmt.Sprintf("; %-8s -\n", name)
	}
	s := fmt.Sprintf("; %-8s 0x%04x", name, addr)
	if n, ok := l.syms.NameOf(addr); ok {
		s += " (" + n + ")"
	}
	return s + "\n"
}

func (l *Listing) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; gamebook image, %d bytes, format %d\n", l.Size, l.Header.Format)
	sb.WriteString(l.headerField("start", l.Header.StartNode))
	sb.WriteString(l.headerField("title", l.Header.Title))
	sb.WriteString(l.headerField("byline", l.Header.Byline))
	sb.WriteString(l.headerField("version", l.Header.Version))

	for _, r := range l.Records {
		sb.WriteByte('\n')
		name := l.recordName(r)
		switch r.Tag {
		case op.IDString:
			fmt.Fprintf(&sb, "0x%04x  STRING %s %s\n", r.Addr, name, strconv.Quote(r.Text))
		case op.IDObject:
			fmt.Fprintf(&sb, "0x%04x  %s %s {\n", r.Addr, strings.ToUpper(r.Object.Kind.String()), name)
			for _, prop := range r.Object.Props {
				value := l.operand("", op.LiteralOperand(prop.Value))
				if key := op.PropertyName(prop.Key); key != "" {
					fmt.Fprintf(&sb, "            %s %s;\n", key, value)
					continue
				}
				fmt.Fprintf(&sb, "            %s %s %s;\n", op.SkillProperty, l.operand("", op.LiteralOperand(prop.Key)), value)
			}
			sb.WriteString("        }\n")
		case op.IDNode:
			fmt.Fprintf(&sb, "0x%04x  NODE %s {\n", r.Addr, name)
			for _, ins := range r.Code {
				if label, ok := l.syms.LocalName(r.Name, ins.Addr); ok {
					fmt.Fprintf(&sb, "0x%04x      label %s;\n", ins.Addr, label)
				}
				args := make([]string, 0, len(ins.Args)+1)
				args = append(args, ins.Op.Name)
				for _, elem := range ins.Args {
					args = append(args, l.operand(r.Name, elem))
				}
				fmt.Fprintf(&sb, "0x%04x      %s;\n", ins.Addr, strings.Join(args, " "))
			}
			sb.WriteString("        }\n")
		}
	}
	return sb.String()
}
