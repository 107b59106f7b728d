package vm

import (
	"fmt"
	"math"
	"slices"

	"go.creack.net/gamebook/op"
)

// ItemStack is one inventory entry.
type ItemStack struct {
	Item uint32
	Qty  int32
}

// game is the mutable state, only touched by opcodes and host mutators.
type game struct {
	storage    map[uint32]uint32
	inventory  []ItemStack
	party      []uint32
	combat     Combat
	lists      map[uint32]*List
	nextList   uint32
	characters map[uint32]*Character
}

func newGame() game {
	return game{
		storage:    map[uint32]uint32{},
		lists:      map[uint32]*List{},
		nextList:   1,
		characters: map[uint32]*Character{},
	}
}

// store sets a storage cell, 0 deletes it.
func (g *game) store(key, value uint32) {
	if value == 0 {
		delete(g.storage, key)
		return
	}
	g.storage[key] = value
}

func (g *game) itemQty(item uint32) int32 {
	for _, elem := range g.inventory {
		if elem.Item == item {
			return elem.Qty
		}
	}
	return 0
}

// addItems adds qty (possibly negative) of item, dropping the entry once
// it reaches zero.
func (vm *VM) addItems(item uint32, qty int32) error {
	if _, err := vm.Image.ObjectOf(item, op.ObjItem); err != nil {
		return err
	}
	i := slices.IndexFunc(vm.inventory, func(s ItemStack) bool { return s.Item == item })
	if i == -1 {
		if qty > 0 {
			vm.inventory = append(vm.inventory, ItemStack{Item: item, Qty: qty})
		}
		return nil
	}
	vm.inventory[i].Qty = int32(min(max(int64(vm.inventory[i].Qty)+int64(qty), math.MinInt32), math.MaxInt32))
	if vm.inventory[i].Qty <= 0 {
		vm.inventory = slices.Delete(vm.inventory, i, i+1)
	}
	return nil
}

func (g *game) inParty(c uint32) bool {
	return slices.Contains(g.party, c)
}

func (g *game) removeFromParty(c uint32) {
	g.party = slices.DeleteFunc(g.party, func(elem uint32) bool { return elem == c })
}

// objectName returns the name string of an object.
func (vm *VM) objectName(addr uint32) (string, error) {
	obj, err := vm.Image.Object(addr)
	if err != nil {
		return "", err
	}
	name, ok := obj.Get(op.PropName)
	if !ok {
		return "", fmt.Errorf("%s 0x%04x has no name: %w", obj.Kind, addr, ErrNotAString)
	}
	return vm.Image.Text(name)
}

// pronoun looks up a pronoun property on the sex of a character.
func (vm *VM) pronoun(char, prop uint32) (string, error) {
	c, err := vm.character(char)
	if err != nil {
		return "", err
	}
	sex, err := vm.Image.ObjectOf(c.Sex, op.ObjSex)
	if err != nil {
		return "", err
	}
	s, ok := sex.Get(prop)
	if !ok {
		return "", fmt.Errorf("sex 0x%04x has no %s: %w", c.Sex, op.PropertyName(prop), ErrNotAString)
	}
	return vm.Image.Text(s)
}
