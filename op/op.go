package op

import (
	"encoding/binary"
	"fmt"
)

var Endian = binary.LittleEndian

const WordSize = 4 // Size of each operand word in bytes.

// Record tags.
const (
	IDString byte = 0x01
	IDNode   byte = 0x02
	IDObject byte = 0x03
)

// Reserved operand values.
const (
	False      uint32 = 0
	True       uint32 = 1
	Continue   uint32 = 1          // Option name sentinel, displayed as "continue".
	PopMarker  uint32 = 0xFFFFFFFE // Operand word meaning "pop the stack".
	Unresolved uint32 = 0xFFFFFFFF // Emitted in place of an unknown symbol.
)

// Pseudo-instruction names, handled by the assembler only.
const (
	LabelCmd = "label"
	EndCmd   = "end"
)

// OpCode is the definition of instructions.
type OpCode struct {
	Name    string
	Code    byte
	Arity   int // Number of operand words following the opcode byte.
	Comment string
}

// Size returns the encoded size of the instruction in bytes.
func (oc OpCode) Size() int {
	return 1 + WordSize*oc.Arity
}

func (oc OpCode) String() string {
	return fmt.Sprintf("%s/%d", oc.Name, oc.Arity)
}

// Lookup returns the opcode for the given command name.
func Lookup(name string) (OpCode, bool) {
	oc, ok := byName[name]
	return oc, ok
}

// ByCode returns the opcode for the given byte.
func ByCode(code byte) (OpCode, bool) {
	oc := byCode[code]
	return oc, oc.Name != ""
}

// byName and byCode are built once from OpCodeTable and never mutated.
var byName, byCode = func() (map[string]OpCode, [256]OpCode) {
	names := make(map[string]OpCode, len(OpCodeTable))
	var codes [256]OpCode
	for _, elem := range OpCodeTable {
		if _, ok := names[elem.Name]; ok {
			panic("duplicate opcode name " + elem.Name)
		}
		if codes[elem.Code].Name != "" {
			panic(fmt.Sprintf("duplicate opcode 0x%02x", elem.Code))
		}
		names[elem.Name] = elem
		codes[elem.Code] = elem
	}
	return names, codes
}()
