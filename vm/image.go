package vm

import (
	"fmt"

	"go.creack.net/gamebook/op"
)

// Image is a loaded, read only game image.
type Image struct {
	buf     []byte
	Header  op.Header
	objects map[uint32]*op.Object
}

// LoadImage validates the header and the start node.
func LoadImage(buf []byte) (*Image, error) {
	h, err := op.DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	img := &Image{buf: buf, Header: h, objects: map[uint32]*op.Object{}}
	if err := img.checkNode(h.StartNode); err != nil {
		return nil, fmt.Errorf("start node: %w", err)
	}
	return img, nil
}

// Bytes returns the raw image.
func (img *Image) Bytes() []byte { return img.buf }

func (img *Image) tagAt(addr uint32) (byte, error) {
	if addr < op.HeaderSize {
		return 0, fmt.Errorf("0x%04x is inside the header: %w", addr, op.ErrOutOfBounds)
	}
	return op.NewCursor(img.buf, addr).ReadByte()
}

func (img *Image) checkNode(addr uint32) error {
	tag, err := img.tagAt(addr)
	if err != nil {
		return fmt.Errorf("0x%04x: %w: %w", addr, ErrNotANode, err)
	}
	if tag != op.IDNode {
		return fmt.Errorf("0x%04x: %w", addr, ErrNotANode)
	}
	return nil
}

// Text returns the text of the string record at addr.
func (img *Image) Text(addr uint32) (string, error) {
	tag, err := img.tagAt(addr)
	if err != nil {
		return "", fmt.Errorf("0x%04x: %w: %w", addr, ErrNotAString, err)
	}
	if tag != op.IDString {
		return "", fmt.Errorf("0x%04x: %w", addr, ErrNotAString)
	}
	return op.ReadString(op.NewCursor(img.buf, addr))
}

// Object decodes the object record at addr. Records are cached.
func (img *Image) Object(addr uint32) (*op.Object, error) {
	if obj, ok := img.objects[addr]; ok {
		return obj, nil
	}
	tag, err := img.tagAt(addr)
	if err != nil {
		return nil, fmt.Errorf("0x%04x: %w: %w", addr, ErrNotAnObject, err)
	}
	if tag != op.IDObject {
		return nil, fmt.Errorf("0x%04x: %w", addr, ErrNotAnObject)
	}
	obj, err := op.ReadObject(op.NewCursor(img.buf, addr))
	if err != nil {
		return nil, err
	}
	img.objects[addr] = obj
	return obj, nil
}

// ObjectOf decodes the object at addr and checks its kind.
func (img *Image) ObjectOf(addr uint32, kind op.ObjectKind) (*op.Object, error) {
	obj, err := img.Object(addr)
	if err != nil {
		return nil, err
	}
	if obj.Kind != kind {
		return nil, fmt.Errorf("0x%04x is a %s, expected a %s: %w", addr, obj.Kind, kind, ErrWrongObjectKind)
	}
	return obj, nil
}
