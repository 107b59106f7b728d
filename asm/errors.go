package asm

import (
	"errors"

	"go.creack.net/gamebook/asm/parser"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrArityMismatch    = errors.New("wrong number of arguments")
	ErrMissingStartNode = errors.New("missing start node")
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
	ErrDuplicateLabel   = errors.New("duplicate label")

	// ErrDuplicateSymbol is shared with the parser so callers test one value.
	ErrDuplicateSymbol = parser.ErrDuplicateSymbol
)

// Error is an assembly error attached to the statement or declaration
// that caused it.
type Error struct {
	Origin parser.Origin
	Err    error
	Msg    string
}

func (e *Error) Error() string {
	out := e.Origin.String() + ": " + e.Err.Error()
	if e.Msg != "" {
		out += ": " + e.Msg
	}
	return out
}

func (e *Error) Unwrap() error { return e.Err }
