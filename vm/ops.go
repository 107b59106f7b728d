package vm

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.creack.net/gamebook/op"
)

type opFunc func(vm *VM, f *frame, args []uint32) error

func boolWord(b bool) uint32 {
	if b {
		return op.True
	}
	return op.False
}

func opAdd(a, b int32) (int32, error) { return b + a, nil }
func opSub(a, b int32) (int32, error) { return b - a, nil }
func opMul(a, b int32) (int32, error) { return b * a, nil }

func opDiv(a, b int32) (int32, error) {
	if a == 0 {
		return 0, ErrDivideByZero
	}
	return b / a, nil
}

func opMod(a, b int32) (int32, error) {
	if a == 0 {
		return 0, ErrDivideByZero
	}
	return b % a, nil
}

// opPow raises b to the a, wrapping on overflow. Negative exponents give 0.
func opPow(a, b int32) (int32, error) {
	if a < 0 {
		return 0, nil
	}
	out, base := int32(1), b
	for e := a; e > 0; e >>= 1 {
		if e&1 == 1 {
			out *= base
		}
		base *= base
	}
	return out, nil
}

// mathOp returns the op function for binary operations:
// a = pop, b = pop, push b op a.
func mathOp(operation func(a, b int32) (int32, error)) opFunc {
	return func(vm *VM, f *frame, _ []uint32) error {
		a, err := f.pop()
		if err != nil {
			return err
		}
		b, err := f.pop()
		if err != nil {
			return err
		}
		v, err := operation(int32(a), int32(b))
		if err != nil {
			return err
		}
		f.push(uint32(v))
		return nil
	}
}

// jumpIf returns the op function for comparison jumps on (x, y, dest):
// jump when y cmp x.
func jumpIf(cmp func(y, x int32) bool) opFunc {
	return func(vm *VM, f *frame, args []uint32) error {
		if cmp(int32(args[1]), int32(args[0])) {
			return f.jump(args[2])
		}
		return nil
	}
}

func upperFirst(s string) string {
	r, w := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[w:]
}

func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, elem := range words {
		words[i] = upperFirst(elem)
	}
	return strings.Join(words, " ")
}

func sayString(transform func(string) string) opFunc {
	return func(vm *VM, f *frame, args []uint32) error {
		s, err := vm.Image.Text(args[0])
		if err != nil {
			return err
		}
		vm.say(transform(s))
		return nil
	}
}

func sayPronoun(transform func(string) string) opFunc {
	return func(vm *VM, f *frame, args []uint32) error {
		s, err := vm.pronoun(args[0], args[1])
		if err != nil {
			return err
		}
		vm.say(transform(s))
		return nil
	}
}

func identity(s string) string { return s }

// ops is filled by init: the table refers to vm.call, which dispatches
// through it.
var ops map[byte]opFunc

func init() {
	ops = map[byte]opFunc{}

	// Control.
	// end is handled by the run loop.
	ops[op.OpDoNode] = func(vm *VM, f *frame, args []uint32) error {
		v, err := vm.call(args[0], f.depth+1)
		if err != nil {
			return err
		}
		f.push(v)
		return nil
	}
	ops[op.OpStartGame] = func(vm *VM, f *frame, _ []uint32) error {
		vm.started = true
		return nil
	}
	ops[op.OpJump] = func(vm *VM, f *frame, args []uint32) error {
		return f.jump(args[0])
	}
	ops[op.OpJumpTrue] = func(vm *VM, f *frame, args []uint32) error {
		cond, err := f.pop()
		if err != nil {
			return err
		}
		if cond != 0 {
			return f.jump(args[0])
		}
		return nil
	}
	ops[op.OpJumpFalse] = func(vm *VM, f *frame, args []uint32) error {
		cond, err := f.pop()
		if err != nil {
			return err
		}
		if cond == 0 {
			return f.jump(args[0])
		}
		return nil
	}
	ops[op.OpJumpEq] = jumpIf(func(y, x int32) bool { return y == x })
	ops[op.OpJumpNeq] = jumpIf(func(y, x int32) bool { return y != x })
	ops[op.OpJumpLt] = jumpIf(func(y, x int32) bool { return y < x })
	ops[op.OpJumpLte] = jumpIf(func(y, x int32) bool { return y <= x })
	ops[op.OpJumpGt] = jumpIf(func(y, x int32) bool { return y > x })
	ops[op.OpJumpGte] = jumpIf(func(y, x int32) bool { return y >= x })

	// Stack and arithmetic.
	ops[op.OpPush] = func(vm *VM, f *frame, args []uint32) error {
		f.push(args[0])
		return nil
	}
	ops[op.OpPop] = func(vm *VM, f *frame, _ []uint32) error {
		_, err := f.pop()
		return err
	}
	ops[op.OpAdd] = mathOp(opAdd)
	ops[op.OpSubtract] = mathOp(opSub)
	ops[op.OpMultiply] = mathOp(opMul)
	ops[op.OpDivide] = mathOp(opDiv)
	ops[op.OpModulo] = mathOp(opMod)
	ops[op.OpPower] = mathOp(opPow)
	ops[op.OpIncrement] = func(vm *VM, f *frame, _ []uint32) error {
		v, err := f.pop()
		if err != nil {
			return err
		}
		f.push(v + 1)
		return nil
	}
	ops[op.OpDecrement] = func(vm *VM, f *frame, _ []uint32) error {
		v, err := f.pop()
		if err != nil {
			return err
		}
		f.push(v - 1)
		return nil
	}
	ops[op.OpStackSwap] = func(vm *VM, f *frame, _ []uint32) error {
		n := len(f.stack)
		if n < 2 {
			return ErrStackUnderflow
		}
		f.stack[n-1], f.stack[n-2] = f.stack[n-2], f.stack[n-1]
		return nil
	}
	ops[op.OpStackDup] = func(vm *VM, f *frame, _ []uint32) error {
		if len(f.stack) == 0 {
			return ErrStackUnderflow
		}
		f.push(f.stack[len(f.stack)-1])
		return nil
	}
	ops[op.OpStackCount] = func(vm *VM, f *frame, _ []uint32) error {
		f.push(uint32(len(f.stack)))
		return nil
	}
	ops[op.OpRandom] = func(vm *VM, f *frame, _ []uint32) error {
		n, err := f.pop()
		if err != nil {
			return err
		}
		if int32(n) <= 0 {
			f.push(0)
			return nil
		}
		f.push(uint32(vm.Config.Rand.Int32N(int32(n))))
		return nil
	}

	// Narrative output.
	ops[op.OpSay] = sayString(identity)
	ops[op.OpSayUF] = sayString(upperFirst)
	ops[op.OpSayTC] = sayString(titleCase)
	ops[op.OpSayNumber] = func(vm *VM, f *frame, args []uint32) error {
		vm.say(strconv.Itoa(int(int32(args[0]))))
		return nil
	}
	ops[op.OpSayPronoun] = sayPronoun(identity)
	ops[op.OpSayPronounUF] = sayPronoun(upperFirst)
	ops[op.OpSayName] = func(vm *VM, f *frame, args []uint32) error {
		s, err := vm.objectName(args[0])
		if err != nil {
			return err
		}
		vm.say(s)
		return nil
	}

	// Options.
	ops[op.OpAddOption] = func(vm *VM, f *frame, args []uint32) error {
		return vm.addOption(args[0], args[1], 0)
	}
	ops[op.OpAddOptionXtra] = func(vm *VM, f *frame, args []uint32) error {
		return vm.addOption(args[0], args[1], args[2])
	}
	ops[op.OpAddContinue] = func(vm *VM, f *frame, args []uint32) error {
		return vm.addOption(op.Continue, args[0], 0)
	}
	ops[op.OpAddReturn] = func(vm *VM, f *frame, _ []uint32) error {
		if vm.location == 0 {
			vm.send(MsgWarning, f.node, "add-return without a location")
			logger.Warningf("0x%04x: add-return without a location", f.node)
			return nil
		}
		vm.options = append(vm.options, Option{Text: "return", Dest: vm.location})
		return nil
	}
	ops[op.OpSetLocation] = func(vm *VM, f *frame, _ []uint32) error {
		vm.location = vm.current
		return nil
	}

	// Storage.
	ops[op.OpStore] = func(vm *VM, f *frame, args []uint32) error {
		vm.store(args[0], args[1])
		return nil
	}
	ops[op.OpFetch] = func(vm *VM, f *frame, args []uint32) error {
		f.push(vm.storage[args[0]])
		return nil
	}

	// Inventory.
	ops[op.OpAddItems] = func(vm *VM, f *frame, args []uint32) error {
		return vm.addItems(args[1], int32(args[0]))
	}
	ops[op.OpRemoveItems] = func(vm *VM, f *frame, args []uint32) error {
		return vm.addItems(args[1], -int32(args[0]))
	}
	ops[op.OpItemQty] = func(vm *VM, f *frame, args []uint32) error {
		f.push(uint32(vm.itemQty(args[0])))
		return nil
	}

	// Dynamic lists.
	ops[op.OpCreateList] = func(vm *VM, f *frame, args []uint32) error {
		vm.store(args[0], vm.createList())
		return nil
	}
	ops[op.OpAddToList] = func(vm *VM, f *frame, args []uint32) error {
		return vm.addToList(args[0], args[1], 1)
	}
	ops[op.OpAddToListChance] = func(vm *VM, f *frame, args []uint32) error {
		return vm.addToList(args[0], args[1], int32(args[2]))
	}
	ops[op.OpRemoveFromList] = func(vm *VM, f *frame, args []uint32) error {
		l, err := vm.list(args[0])
		if err != nil {
			return err
		}
		l.remove(args[1])
		return nil
	}
	ops[op.OpIsInList] = func(vm *VM, f *frame, args []uint32) error {
		l, err := vm.list(args[0])
		if err != nil {
			return err
		}
		f.push(boolWord(l.contains(args[1])))
		return nil
	}
	ops[op.OpRandomFromList] = func(vm *VM, f *frame, args []uint32) error {
		l, err := vm.list(args[0])
		if err != nil {
			return err
		}
		f.push(l.draw(vm.Config.Rand))
		return nil
	}

	// Party.
	ops[op.OpAddToParty] = func(vm *VM, f *frame, args []uint32) error {
		if _, err := vm.character(args[0]); err != nil {
			return err
		}
		vm.party = append(vm.party, args[0])
		return nil
	}
	ops[op.OpIsInParty] = func(vm *VM, f *frame, args []uint32) error {
		f.push(boolWord(vm.inParty(args[0])))
		return nil
	}
	ops[op.OpRemoveFromParty] = func(vm *VM, f *frame, args []uint32) error {
		vm.removeFromParty(args[0])
		return nil
	}
	ops[op.OpPartySize] = func(vm *VM, f *frame, _ []uint32) error {
		f.push(uint32(len(vm.party)))
		return nil
	}

	// Combat.
	ops[op.OpResetCombat] = func(vm *VM, f *frame, _ []uint32) error {
		vm.resetCombat()
		return nil
	}
	ops[op.OpAddToCombat] = func(vm *VM, f *frame, args []uint32) error {
		if _, err := vm.character(args[0]); err != nil {
			return err
		}
		vm.combat.Combatants = append(vm.combat.Combatants, args[0])
		return nil
	}
	ops[op.OpCombatant] = func(vm *VM, f *frame, args []uint32) error {
		f.push(vm.combatant(int32(args[0])))
		return nil
	}
	ops[op.OpRandomOfFaction] = func(vm *VM, f *frame, args []uint32) error {
		v, err := vm.randomByFaction(args[0], true)
		if err != nil {
			return err
		}
		f.push(v)
		return nil
	}
	ops[op.OpRandomNotFaction] = func(vm *VM, f *frame, args []uint32) error {
		v, err := vm.randomByFaction(args[0], false)
		if err != nil {
			return err
		}
		f.push(v)
		return nil
	}
	ops[op.OpCombatSize] = func(vm *VM, f *frame, _ []uint32) error {
		f.push(uint32(len(vm.combat.Combatants)))
		return nil
	}
	ops[op.OpCombatRound] = func(vm *VM, f *frame, _ []uint32) error {
		f.push(uint32(vm.combat.Round))
		return nil
	}
	ops[op.OpNextCombatant] = func(vm *VM, f *frame, _ []uint32) error {
		f.push(vm.nextCombatant())
		return nil
	}
	ops[op.OpEndCombat] = func(vm *VM, f *frame, _ []uint32) error {
		return vm.endCombat()
	}
	ops[op.OpAfterCombat] = func(vm *VM, f *frame, args []uint32) error {
		if err := vm.Image.checkNode(args[0]); err != nil {
			return err
		}
		vm.combat.After = args[0]
		return nil
	}
	ops[op.OpInCombat] = func(vm *VM, f *frame, _ []uint32) error {
		f.push(boolWord(vm.combat.Active))
		return nil
	}

	// Characters.
	ops[op.OpGetSex] = func(vm *VM, f *frame, args []uint32) error {
		c, err := vm.character(args[0])
		if err != nil {
			return err
		}
		f.push(c.Sex)
		return nil
	}
	ops[op.OpSetSex] = func(vm *VM, f *frame, args []uint32) error {
		return vm.setTrait(args[0], args[1], op.ObjSex)
	}
	ops[op.OpGetSpecies] = func(vm *VM, f *frame, args []uint32) error {
		c, err := vm.character(args[0])
		if err != nil {
			return err
		}
		f.push(c.Species)
		return nil
	}
	ops[op.OpSetSpecies] = func(vm *VM, f *frame, args []uint32) error {
		return vm.setTrait(args[0], args[1], op.ObjSpecies)
	}
	ops[op.OpGetSkill] = func(vm *VM, f *frame, args []uint32) error {
		sk, err := vm.skill(args[0], args[1])
		if err != nil {
			return err
		}
		f.push(uint32(sk.Max))
		return nil
	}
	ops[op.OpAdjSkill] = func(vm *VM, f *frame, args []uint32) error {
		sk, err := vm.skill(args[0], args[1])
		if err != nil {
			return err
		}
		sk.adjustMax(int32(args[2]))
		return nil
	}
	ops[op.OpGetSkillCur] = func(vm *VM, f *frame, args []uint32) error {
		sk, err := vm.skill(args[0], args[1])
		if err != nil {
			return err
		}
		f.push(uint32(sk.Current()))
		return nil
	}
	ops[op.OpAdjSkillCur] = func(vm *VM, f *frame, args []uint32) error {
		sk, err := vm.skill(args[0], args[1])
		if err != nil {
			return err
		}
		sk.adjustCur(int32(args[2]))
		return nil
	}
	ops[op.OpSkillCheck] = func(vm *VM, f *frame, args []uint32) error {
		sk, err := vm.skill(args[0], args[1])
		if err != nil {
			return err
		}
		f.push(boolWord(vm.Config.Rules.SkillCheck(vm.Config.Rand, sk.Current(), int32(args[2]))))
		return nil
	}
	ops[op.OpDoDamage] = func(vm *VM, f *frame, args []uint32) error {
		ko, err := vm.doDamage(args[0], int32(args[1]), args[2])
		if err != nil {
			return err
		}
		f.push(boolWord(ko))
		return nil
	}
	ops[op.OpResetCharacter] = func(vm *VM, f *frame, args []uint32) error {
		delete(vm.characters, args[0])
		_, err := vm.character(args[0])
		return err
	}
	ops[op.OpRestoreCharacter] = func(vm *VM, f *frame, args []uint32) error {
		c, err := vm.character(args[0])
		if err != nil {
			return err
		}
		c.restore()
		return nil
	}

	// Objects and gear.
	ops[op.OpGetProperty] = func(vm *VM, f *frame, args []uint32) error {
		obj, err := vm.Image.Object(args[0])
		if err != nil {
			return err
		}
		v, _ := obj.Get(args[1])
		f.push(v)
		return nil
	}
	ops[op.OpEquipItem] = func(vm *VM, f *frame, args []uint32) error {
		return vm.equip(args[0], args[1])
	}
	ops[op.OpUnequipItem] = func(vm *VM, f *frame, args []uint32) error {
		return vm.unequip(args[0], args[1])
	}
	ops[op.OpGetEquipped] = func(vm *VM, f *frame, args []uint32) error {
		c, err := vm.character(args[0])
		if err != nil {
			return err
		}
		f.push(c.Gear[args[1]])
		return nil
	}
}
