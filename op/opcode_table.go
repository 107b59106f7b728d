package op

// Opcode bytes referenced directly by the assembler and the VM.
const (
	OpEnd              byte = 0x00
	OpDoNode           byte = 0x01
	OpStartGame        byte = 0x02
	OpJump             byte = 0x03
	OpJumpTrue         byte = 0x04
	OpJumpFalse        byte = 0x05
	OpJumpEq           byte = 0x06
	OpJumpNeq          byte = 0x07
	OpJumpLt           byte = 0x08
	OpJumpLte          byte = 0x09
	OpJumpGt           byte = 0x0a
	OpJumpGte          byte = 0x0b
	OpPush             byte = 0x10
	OpPop              byte = 0x11
	OpAdd              byte = 0x12
	OpSubtract         byte = 0x13
	OpMultiply         byte = 0x14
	OpDivide           byte = 0x15
	OpModulo           byte = 0x16
	OpPower            byte = 0x17
	OpIncrement        byte = 0x18
	OpDecrement        byte = 0x19
	OpStackSwap        byte = 0x1a
	OpStackDup         byte = 0x1b
	OpStackCount       byte = 0x1c
	OpRandom           byte = 0x1d
	OpSay              byte = 0x20
	OpSayUF            byte = 0x21
	OpSayTC            byte = 0x22
	OpSayNumber        byte = 0x23
	OpSayPronoun       byte = 0x24
	OpSayPronounUF     byte = 0x25
	OpSayName          byte = 0x26
	OpAddOption        byte = 0x28
	OpAddOptionXtra    byte = 0x29
	OpAddContinue      byte = 0x2a
	OpAddReturn        byte = 0x2b
	OpSetLocation      byte = 0x2c
	OpStore            byte = 0x30
	OpFetch            byte = 0x31
	OpAddItems         byte = 0x38
	OpRemoveItems      byte = 0x39
	OpItemQty          byte = 0x3a
	OpCreateList       byte = 0x40
	OpAddToList        byte = 0x41
	OpAddToListChance  byte = 0x42
	OpRemoveFromList   byte = 0x43
	OpIsInList         byte = 0x44
	OpRandomFromList   byte = 0x45
	OpAddToParty       byte = 0x48
	OpIsInParty        byte = 0x49
	OpRemoveFromParty  byte = 0x4a
	OpPartySize        byte = 0x4b
	OpResetCombat      byte = 0x50
	OpAddToCombat      byte = 0x51
	OpCombatant        byte = 0x52
	OpRandomOfFaction  byte = 0x53
	OpRandomNotFaction byte = 0x54
	OpCombatSize       byte = 0x55
	OpCombatRound      byte = 0x56
	OpNextCombatant    byte = 0x57
	OpEndCombat        byte = 0x58
	OpAfterCombat      byte = 0x59
	OpInCombat         byte = 0x5a
	OpGetSex           byte = 0x60
	OpSetSex           byte = 0x61
	OpGetSpecies       byte = 0x62
	OpSetSpecies       byte = 0x63
	OpGetSkill         byte = 0x64
	OpAdjSkill         byte = 0x65
	OpGetSkillCur      byte = 0x66
	OpAdjSkillCur      byte = 0x67
	OpSkillCheck       byte = 0x68
	OpDoDamage         byte = 0x69
	OpResetCharacter   byte = 0x6a
	OpRestoreCharacter byte = 0x6b
	OpGetProperty      byte = 0x70
	OpEquipItem        byte = 0x71
	OpUnequipItem      byte = 0x72
	OpGetEquipped      byte = 0x73
)

var OpCodeTable = []OpCode{
	{"end", OpEnd, 0, "return top of stack, 0 if empty"},
	{"do-node", OpDoNode, 1, "call node, push its result"},
	{"start-game", OpStartGame, 0, "mark the game as started"},
	{"jump", OpJump, 1, "jump to dest"},
	{"jump-true", OpJumpTrue, 1, "pop cond, jump to dest if non zero"},
	{"jump-false", OpJumpFalse, 1, "pop cond, jump to dest if zero"},
	{"jump-eq", OpJumpEq, 3, "x y dest: jump if y == x"},
	{"jump-neq", OpJumpNeq, 3, "x y dest: jump if y != x"},
	{"jump-lt", OpJumpLt, 3, "x y dest: jump if y < x"},
	{"jump-lte", OpJumpLte, 3, "x y dest: jump if y <= x"},
	{"jump-gt", OpJumpGt, 3, "x y dest: jump if y > x"},
	{"jump-gte", OpJumpGte, 3, "x y dest: jump if y >= x"},

	{"push", OpPush, 1, "push value"},
	{"pop", OpPop, 0, "discard top of stack"},
	{"add", OpAdd, 0, "a=pop b=pop push b+a"},
	{"subtract", OpSubtract, 0, "a=pop b=pop push b-a"},
	{"multiply", OpMultiply, 0, "a=pop b=pop push b*a"},
	{"divide", OpDivide, 0, "a=pop b=pop push b/a"},
	{"modulo", OpModulo, 0, "a=pop b=pop push b%a"},
	{"power", OpPower, 0, "a=pop b=pop push b**a"},
	{"increment", OpIncrement, 0, "top+1"},
	{"decrement", OpDecrement, 0, "top-1"},
	{"stack-swap", OpStackSwap, 0, "swap the two top values"},
	{"stack-dup", OpStackDup, 0, "duplicate top of stack"},
	{"stack-count", OpStackCount, 0, "push stack depth"},
	{"random", OpRandom, 0, "n=pop push [0,n)"},

	{"say", OpSay, 1, "emit string"},
	{"say-uf", OpSayUF, 1, "emit string, upper first letter"},
	{"say-tc", OpSayTC, 1, "emit string, title case"},
	{"say-number", OpSayNumber, 1, "emit signed decimal"},
	{"say-pronoun", OpSayPronoun, 2, "character pronoun: emit pronoun"},
	{"say-pronoun-uf", OpSayPronounUF, 2, "character pronoun: emit pronoun, upper first letter"},
	{"say-name", OpSayName, 1, "emit object name"},

	{"add-option", OpAddOption, 2, "name dest"},
	{"add-option-xtra", OpAddOptionXtra, 3, "name dest extra"},
	{"add-continue", OpAddContinue, 1, "dest, named continue"},
	{"add-return", OpAddReturn, 0, "offer the location node again"},
	{"set-location", OpSetLocation, 0, "current node becomes the location"},

	{"store", OpStore, 2, "key value, 0 deletes"},
	{"fetch", OpFetch, 1, "key: push value, 0 if absent"},

	{"add-items", OpAddItems, 2, "qty item"},
	{"remove-items", OpRemoveItems, 2, "qty item"},
	{"item-qty", OpItemQty, 1, "item: push qty"},

	{"create-list", OpCreateList, 1, "key: store a new list ident"},
	{"add-to-list", OpAddToList, 2, "list item"},
	{"add-to-list-chance", OpAddToListChance, 3, "list item weight"},
	{"remove-from-list", OpRemoveFromList, 2, "list item"},
	{"is-in-list", OpIsInList, 2, "list item: push bool"},
	{"random-from-list", OpRandomFromList, 1, "list: push weighted pick"},

	{"add-to-party", OpAddToParty, 1, "character"},
	{"is-in-party", OpIsInParty, 1, "character: push bool"},
	{"remove-from-party", OpRemoveFromParty, 1, "character, every occurrence"},
	{"party-size", OpPartySize, 0, "push party size"},

	{"reset-combat", OpResetCombat, 0, "combatants from party, round 1"},
	{"add-to-combat", OpAddToCombat, 1, "character"},
	{"combatant", OpCombatant, 1, "index: push ident, 0 if out of range"},
	{"random-of-faction", OpRandomOfFaction, 1, "faction: push random member"},
	{"random-not-faction", OpRandomNotFaction, 1, "faction: push random non member"},
	{"combat-size", OpCombatSize, 0, "push roster size"},
	{"combat-round", OpCombatRound, 0, "push round counter"},
	{"next-combatant", OpNextCombatant, 0, "advance turn, push ident"},
	{"end-combat", OpEndCombat, 0, "clear roster, continue to after-combat node"},
	{"after-combat", OpAfterCombat, 1, "node to continue to after combat"},
	{"in-combat", OpInCombat, 0, "push bool"},

	{"get-sex", OpGetSex, 1, "character: push sex"},
	{"set-sex", OpSetSex, 2, "character sex"},
	{"get-species", OpGetSpecies, 1, "character: push species"},
	{"set-species", OpSetSpecies, 2, "character species"},
	{"get-skill", OpGetSkill, 2, "character skill: push max"},
	{"adj-skill", OpAdjSkill, 3, "character skill delta"},
	{"get-skill-cur", OpGetSkillCur, 2, "character skill: push current"},
	{"adj-skill-cur", OpAdjSkillCur, 3, "character skill delta"},
	{"skill-check", OpSkillCheck, 3, "character skill target: push bool"},
	{"do-damage", OpDoDamage, 3, "character amount type: push knocked out"},
	{"reset-character", OpResetCharacter, 1, "character"},
	{"restore-character", OpRestoreCharacter, 1, "character"},

	{"get-property", OpGetProperty, 2, "object property: push value"},
	{"equip-item", OpEquipItem, 2, "character item"},
	{"unequip-item", OpUnequipItem, 2, "character slot"},
	{"get-equipped", OpGetEquipped, 2, "character slot: push item"},
}
