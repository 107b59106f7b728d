package vm

import (
	"maps"
	"slices"

	"go.creack.net/gamebook/op"
)

// Skill is the run time value of one skill of a character.
type Skill struct {
	Skill    uint32 // Skill object address.
	Cur      int32
	Max      int32
	Variable bool // Cur moves independently of Max.
	KO       bool // Reaching 0 knocks the character out.
}

// Current returns the current value; only variable skills have one of their own.
func (s *Skill) Current() int32 {
	if s.Variable {
		return s.Cur
	}
	return s.Max
}

func (s *Skill) adjustMax(d int32) {
	s.Max += d
	if !s.Variable || s.Cur > s.Max {
		s.Cur = s.Max
	}
}

func (s *Skill) adjustCur(d int32) {
	if !s.Variable {
		s.adjustMax(d)
		return
	}
	s.Cur = min(s.Cur+d, s.Max)
}

// Character is the run time state of a character object.
type Character struct {
	ID      uint32
	Sex     uint32
	Species uint32
	Faction uint32
	Skills  map[uint32]*Skill
	Gear    map[uint32]uint32 // Slot to item.
}

// SkillList returns the skills ordered by address.
func (c *Character) SkillList() []*Skill {
	out := make([]*Skill, 0, len(c.Skills))
	for _, k := range slices.Sorted(maps.Keys(c.Skills)) {
		out = append(out, c.Skills[k])
	}
	return out
}

func (c *Character) restore() {
	for _, elem := range c.Skills {
		elem.Cur = elem.Max
	}
}

func (c *Character) clone() Character {
	out := *c
	out.Skills = make(map[uint32]*Skill, len(c.Skills))
	for k, v := range c.Skills {
		s := *v
		out.Skills[k] = &s
	}
	out.Gear = maps.Clone(c.Gear)
	return out
}

// character returns the state of a character, creating it from its
// object record on first use.
func (vm *VM) character(id uint32) (*Character, error) {
	if c, ok := vm.characters[id]; ok {
		return c, nil
	}
	obj, err := vm.Image.ObjectOf(id, op.ObjCharacter)
	if err != nil {
		return nil, err
	}
	c := &Character{
		ID:     id,
		Skills: map[uint32]*Skill{},
		Gear:   map[uint32]uint32{},
	}
	for _, prop := range obj.Props {
		switch {
		case prop.Key == op.PropSex:
			c.Sex = prop.Value
		case prop.Key == op.PropSpecies:
			c.Species = prop.Value
		case prop.Key == op.PropFaction:
			c.Faction = prop.Value
		case prop.Key >= op.HeaderSize:
			sk, err := vm.newSkill(prop.Key)
			if err != nil {
				return nil, err
			}
			sk.Cur, sk.Max = int32(prop.Value), int32(prop.Value)
			c.Skills[prop.Key] = sk
		}
	}
	vm.characters[id] = c
	return c, nil
}

func (vm *VM) newSkill(addr uint32) (*Skill, error) {
	obj, err := vm.Image.ObjectOf(addr, op.ObjSkill)
	if err != nil {
		return nil, err
	}
	variable, _ := obj.Get(op.PropVariable)
	ko, _ := obj.Get(op.PropKO)
	return &Skill{Skill: addr, Variable: variable != 0, KO: ko != 0}, nil
}

// skill returns a skill of a character, at 0 if the character never had it.
func (vm *VM) skill(char, skill uint32) (*Skill, error) {
	c, err := vm.character(char)
	if err != nil {
		return nil, err
	}
	if sk, ok := c.Skills[skill]; ok {
		return sk, nil
	}
	sk, err := vm.newSkill(skill)
	if err != nil {
		return nil, err
	}
	c.Skills[skill] = sk
	return sk, nil
}

// setTrait sets the sex or species of a character after checking the
// object kind.
func (vm *VM) setTrait(char, value uint32, kind op.ObjectKind) error {
	c, err := vm.character(char)
	if err != nil {
		return err
	}
	if _, err := vm.Image.ObjectOf(value, kind); err != nil {
		return err
	}
	if kind == op.ObjSex {
		c.Sex = value
	} else {
		c.Species = value
	}
	return nil
}

// doDamage applies damage to every knock out skill of a character and
// reports whether one of them dropped to 0 or below.
func (vm *VM) doDamage(char uint32, amount int32, damageType uint32) (bool, error) {
	c, err := vm.character(char)
	if err != nil {
		return false, err
	}
	dt, err := vm.Image.ObjectOf(damageType, op.ObjDamageType)
	if err != nil {
		return false, err
	}
	var resist int32
	if rs, ok := dt.Get(op.PropResist); ok {
		if sk, ok := c.Skills[rs]; ok {
			resist = sk.Current()
		}
	}
	dmg := vm.Config.Rules.Damage(amount, resist)

	ko := false
	for _, sk := range c.SkillList() {
		if !sk.KO {
			continue
		}
		sk.adjustCur(-dmg)
		if sk.Current() <= 0 {
			ko = true
		}
	}
	return ko, nil
}

func (vm *VM) equip(char, item uint32) error {
	c, err := vm.character(char)
	if err != nil {
		return err
	}
	it, err := vm.Image.ObjectOf(item, op.ObjItem)
	if err != nil {
		return err
	}
	slot, _ := it.Get(op.PropSlot)
	if slot == 0 {
		return ErrNotEquippable
	}
	if vm.itemQty(item) <= 0 {
		return ErrNotInInventory
	}
	if err := vm.addItems(item, -1); err != nil {
		return err
	}
	if prev := c.Gear[slot]; prev != 0 {
		if err := vm.addItems(prev, 1); err != nil {
			return err
		}
	}
	c.Gear[slot] = item
	return nil
}

func (vm *VM) unequip(char, slot uint32) error {
	c, err := vm.character(char)
	if err != nil {
		return err
	}
	prev, ok := c.Gear[slot]
	if !ok {
		return nil
	}
	delete(c.Gear, slot)
	return vm.addItems(prev, 1)
}
