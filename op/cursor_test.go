package op

import (
	"errors"
	"testing"
)

func TestCursorReads(t *testing.T) {
	buf := []byte{IDString, 'h', 'i', 0, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12}
	c := NewCursor(buf, 0)

	s, err := ReadString(c)
	if err != nil || s != "hi" {
		t.Fatalf("ReadString = %q, %v", s, err)
	}
	sh, err := c.ReadShort()
	if err != nil || sh != 0x1234 {
		t.Fatalf("ReadShort = 0x%x, %v", sh, err)
	}
	w, err := c.ReadWord()
	if err != nil || w != 0x12345678 {
		t.Fatalf("ReadWord = 0x%x, %v", w, err)
	}
	if !c.EOF() {
		t.Fatalf("expected EOF at %d", c.Pos())
	}
	if _, err := c.ReadByte(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestCursorErrors(t *testing.T) {
	if _, err := NewCursor([]byte{1, 2}, 0).ReadWord(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("short word: %v", err)
	}
	if _, err := NewCursor([]byte{'a', 'b'}, 0).ReadCString(); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("unterminated string: %v", err)
	}
	if err := NewCursor([]byte{IDNode}, 0).Expect(IDString); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("wrong tag: %v", err)
	}
	if err := NewCursor(nil, 0).SetPos(4); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("set pos: %v", err)
	}
}

func TestReadObject(t *testing.T) {
	buf := []byte{IDObject, byte(ObjCharacter), 2, 0, 0, 0}
	buf = Endian.AppendUint32(buf, PropFaction)
	buf = Endian.AppendUint32(buf, 3)
	buf = Endian.AppendUint32(buf, 0x40)
	buf = Endian.AppendUint32(buf, 12)
	if len(buf) != ObjectRecordSize(2) {
		t.Fatalf("record size %d, want %d", len(buf), ObjectRecordSize(2))
	}

	obj, err := ReadObject(NewCursor(buf, 0))
	if err != nil {
		t.Fatal(err)
	}
	if obj.Kind != ObjCharacter {
		t.Errorf("kind = %s", obj.Kind)
	}
	if v, ok := obj.Get(PropFaction); !ok || v != 3 {
		t.Errorf("faction = %d, %v", v, ok)
	}
	if v, ok := obj.Get(0x40); !ok || v != 12 {
		t.Errorf("skill = %d, %v", v, ok)
	}
	if _, ok := obj.Get(PropName); ok {
		t.Errorf("unexpected name property")
	}

	buf[1] = 99
	if _, err := ReadObject(NewCursor(buf, 0)); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("bad kind: %v", err)
	}
}
