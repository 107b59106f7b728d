package vm

import (
	"slices"

	"go.creack.net/gamebook/op"
)

func (vm *VM) State() State { return vm.state }

// Err returns the error that stopped the session, if any.
func (vm *VM) Err() error { return vm.err }

// Started reports whether start-game ran.
func (vm *VM) Started() bool { return vm.started }

// Output returns the text produced so far.
func (vm *VM) Output() string { return string(vm.output) }

// TakeOutput returns the text produced so far and clears it.
func (vm *VM) TakeOutput() string {
	out := string(vm.output)
	vm.output = vm.output[:0]
	return out
}

// Options returns a copy of the current option list.
func (vm *VM) Options() []Option { return slices.Clone(vm.options) }

// Node returns the address of the top level node last entered.
func (vm *VM) Node() uint32 { return vm.current }

// Location returns the node set by set-location, 0 if none.
func (vm *VM) Location() uint32 { return vm.location }

func (vm *VM) headerString(addr uint32) string {
	if addr == 0 {
		return ""
	}
	s, _ := vm.Image.Text(addr)
	return s
}

func (vm *VM) Title() string   { return vm.headerString(vm.Image.Header.Title) }
func (vm *VM) Byline() string  { return vm.headerString(vm.Image.Header.Byline) }
func (vm *VM) Version() string { return vm.headerString(vm.Image.Header.Version) }

func (vm *VM) Inventory() []ItemStack { return slices.Clone(vm.inventory) }

func (vm *VM) Party() []uint32 { return slices.Clone(vm.party) }

// Storage reads a storage cell, 0 if unset.
func (vm *VM) Storage(key uint32) uint32 { return vm.storage[key] }

// Combat returns a copy of the combat roster.
func (vm *VM) Combat() Combat {
	out := vm.combat
	out.Combatants = slices.Clone(vm.combat.Combatants)
	return out
}

// List returns a copy of a dynamic list.
func (vm *VM) List(id uint32) (List, error) {
	l, err := vm.list(id)
	if err != nil {
		return List{}, err
	}
	return List{ID: l.ID, Entries: slices.Clone(l.Entries)}, nil
}

// Character returns a snapshot of a character, creating its state if needed.
func (vm *VM) Character(id uint32) (Character, error) {
	c, err := vm.character(id)
	if err != nil {
		return Character{}, err
	}
	return c.clone(), nil
}

// ObjectName returns the display name of an object, empty if it has none.
func (vm *VM) ObjectName(id uint32) string {
	s, err := vm.objectName(id)
	if err != nil {
		return ""
	}
	return s
}

// UseItem runs the on-use node of an inventory item. Options it adds
// join the current list.
func (vm *VM) UseItem(item uint32) error {
	if vm.state != AwaitingChoice {
		return ErrNotRunning
	}
	if vm.itemQty(item) <= 0 {
		return ErrNotInInventory
	}
	it, err := vm.Image.ObjectOf(item, op.ObjItem)
	if err != nil {
		return err
	}
	node, ok := it.Get(op.PropOnUse)
	if !ok || node == 0 {
		return ErrNotUsable
	}
	if _, err := vm.call(node, 0); err != nil {
		return vm.fail(err)
	}
	return nil
}

// EquipItem moves one item from the inventory to the character's slot.
func (vm *VM) EquipItem(char, item uint32) error {
	if vm.state != AwaitingChoice {
		return ErrNotRunning
	}
	return vm.equip(char, item)
}

// UnequipItem puts the item in slot back in the inventory.
func (vm *VM) UnequipItem(char, slot uint32) error {
	if vm.state != AwaitingChoice {
		return ErrNotRunning
	}
	return vm.unequip(char, slot)
}
