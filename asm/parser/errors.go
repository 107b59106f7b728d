package parser

import (
	"errors"
	"fmt"
)

// Lexical errors.
var (
	ErrUnterminatedComment = errors.New("unterminated comment")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnknownEscape       = errors.New("unknown escape sequence")
	ErrMalformedNumber     = errors.New("malformed number")
	ErrUnexpectedCharacter = errors.New("unexpected character")
)

// Syntactic and semantic errors.
var (
	ErrUnexpectedToken           = errors.New("unexpected token")
	ErrExpectedTopLevelConstruct = errors.New("expected top level construct")
	ErrDuplicateNode             = errors.New("duplicate node")
	ErrDuplicateSymbol           = errors.New("duplicate symbol")
	ErrDuplicateDeclaration      = errors.New("duplicate declaration")
	ErrUnknownProperty           = errors.New("unknown property")
)

// Error is a compile error attached to a source position.
// Prev is set when the error refers to an earlier definition.
type Error struct {
	Origin Origin
	Err    error
	Msg    string
	Prev   *Origin
}

func (e *Error) Error() string {
	out := e.Origin.String() + ": " + e.Err.Error()
	if e.Msg != "" {
		out += ": " + e.Msg
	}
	if e.Prev != nil {
		out += fmt.Sprintf(" (first defined at %s)", e.Prev)
	}
	return out
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(o Origin, err error, format string, args ...any) *Error {
	return &Error{Origin: o, Err: err, Msg: fmt.Sprintf(format, args...)}
}
