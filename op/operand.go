package op

import (
	"errors"
	"fmt"
)

var ErrReservedLiteral = errors.New("literal collides with the pop marker")

// OperandKind enum type.
type OperandKind int

// OperandKind values.
const (
	Literal OperandKind = iota // Word read verbatim.
	Pop                        // Value taken from the stack at run time.
)

func (ok OperandKind) String() string {
	switch ok {
	case Literal:
		return "literal"
	case Pop:
		return "pop"
	default:
		return "unknown"
	}
}

// Operand is one instruction argument, decided at assembly time.
type Operand struct {
	Kind  OperandKind
	Value uint32 // Only meaningful for Literal.
}

func LiteralOperand(v uint32) Operand { return Operand{Kind: Literal, Value: v} }

func PopOperand() Operand { return Operand{Kind: Pop} }

func (o Operand) String() string {
	if o.Kind == Pop {
		return "stack"
	}
	return fmt.Sprintf("%d", o.Value)
}

// Word returns the 4-byte encoding of the operand.
func (o Operand) Word() (uint32, error) {
	switch o.Kind {
	case Pop:
		return PopMarker, nil
	case Literal:
		if o.Value == PopMarker {
			return 0, fmt.Errorf("0x%08x: %w", o.Value, ErrReservedLiteral)
		}
		return o.Value, nil
	default:
		return 0, fmt.Errorf("unknown operand kind %d", o.Kind)
	}
}

// DecodeOperand reverses Word.
func DecodeOperand(w uint32) Operand {
	if w == PopMarker {
		return PopOperand()
	}
	return LiteralOperand(w)
}
