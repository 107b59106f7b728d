package vm

import (
	"errors"
	"fmt"
)

// Run time errors. All of them stop the session.
var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrNotAString      = errors.New("not a string")
	ErrNotANode        = errors.New("not a node")
	ErrNotAnObject     = errors.New("not an object")
	ErrWrongObjectKind = errors.New("wrong object kind")
	ErrUnknownList     = errors.New("unknown list")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrDivideByZero    = errors.New("divide by zero")
	ErrCallDepth       = errors.New("call depth exceeded")
	ErrBadOption       = errors.New("no such option")
	ErrNotRunning      = errors.New("vm is not waiting for a choice")
	ErrNotInInventory  = errors.New("item not in inventory")
	ErrNotEquippable   = errors.New("item has no slot")
	ErrNotUsable       = errors.New("item has no on-use node")
)

// Error is a run time error with the address of the faulting instruction.
type Error struct {
	Addr uint32
	Op   string // Empty when not raised by an instruction.
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("0x%04x: %s", e.Addr, e.Err)
	}
	return fmt.Sprintf("0x%04x %s: %s", e.Addr, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
