package op

import (
	"errors"
	"testing"
)

func TestLookupMatchesTable(t *testing.T) {
	for _, elem := range OpCodeTable {
		byName, ok := Lookup(elem.Name)
		if !ok {
			t.Fatalf("Lookup(%q) missing", elem.Name)
		}
		byCode, ok := ByCode(elem.Code)
		if !ok {
			t.Fatalf("ByCode(0x%02x) missing", elem.Code)
		}
		if byName != byCode {
			t.Errorf("%q: name lookup %v, code lookup %v", elem.Name, byName, byCode)
		}
	}
	if _, ok := Lookup(LabelCmd); ok {
		t.Errorf("label must stay a pseudo instruction")
	}
	if _, ok := ByCode(0xff); ok {
		t.Errorf("0xff must not be a valid opcode")
	}
}

func TestInstructionSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"end", 1},
		{"push", 5},
		{"divide", 1},
		{"add-option", 9},
		{"jump-lt", 13},
	}
	for _, tt := range tests {
		oc, ok := Lookup(tt.name)
		if !ok {
			t.Fatalf("unknown opcode %q", tt.name)
		}
		if oc.Size() != tt.size {
			t.Errorf("%s size = %d, want %d", tt.name, oc.Size(), tt.size)
		}
	}
}

func TestOperandWord(t *testing.T) {
	w, err := PopOperand().Word()
	if err != nil || w != PopMarker {
		t.Fatalf("pop word = 0x%x, %v", w, err)
	}
	if _, err := LiteralOperand(PopMarker).Word(); !errors.Is(err, ErrReservedLiteral) {
		t.Fatalf("expected ErrReservedLiteral, got %v", err)
	}
	if got := DecodeOperand(PopMarker); got.Kind != Pop {
		t.Errorf("decode marker = %v, want pop", got)
	}
	if got := DecodeOperand(42); got != LiteralOperand(42) {
		t.Errorf("decode 42 = %v", got)
	}
}

func TestHeader(t *testing.T) {
	h := NewHeader()
	h.StartNode = 0x40
	h.Title = 0x20
	buf := make([]byte, HeaderSize)
	if err := h.Encode(buf); err != nil {
		t.Fatal(err)
	}
	if Endian.Uint32(buf[StartNodeOffset:]) != 0x40 {
		t.Fatalf("start node not at offset %d: % x", StartNodeOffset, buf)
	}
	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Errorf("decoded %+v, want %+v", got, h)
	}

	buf[0] = 'X'
	if _, err := DecodeHeader(buf); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("bad magic: expected ErrMalformedRecord, got %v", err)
	}
	if _, err := DecodeHeader(buf[:10]); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("short image: expected ErrMalformedRecord, got %v", err)
	}
}
