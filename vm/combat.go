package vm

import (
	"slices"

	"go.creack.net/gamebook/op"
)

// Combat is the combat roster. Turn is the index of the next combatant
// to act.
type Combat struct {
	Combatants []uint32
	Turn       int
	Round      int
	After      uint32 // Node offered with a continue option once combat ends.
	Active     bool
}

// resetCombat seeds the roster from the party and starts round 1.
func (g *game) resetCombat() {
	g.combat.Combatants = slices.Clone(g.party)
	g.combat.Turn = 0
	g.combat.Round = 1
	g.combat.Active = true
}

func (g *game) combatant(i int32) uint32 {
	if i < 0 || int(i) >= len(g.combat.Combatants) {
		return 0
	}
	return g.combat.Combatants[i]
}

// nextCombatant returns whose turn it is and moves the turn along,
// starting a new round after the last combatant.
func (g *game) nextCombatant() uint32 {
	n := len(g.combat.Combatants)
	if n == 0 {
		return 0
	}
	if g.combat.Turn >= n {
		g.combat.Turn = 0
		g.combat.Round++
	}
	id := g.combat.Combatants[g.combat.Turn]
	g.combat.Turn++
	return id
}

// randomByFaction picks a combatant whose faction matches (or not), 0 if none.
func (vm *VM) randomByFaction(faction uint32, match bool) (uint32, error) {
	var candidates []uint32
	for _, id := range vm.combat.Combatants {
		c, err := vm.character(id)
		if err != nil {
			return 0, err
		}
		if (c.Faction == faction) == match {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return 0, nil
	}
	return candidates[vm.Config.Rand.IntN(len(candidates))], nil
}

func (vm *VM) endCombat() error {
	after := vm.combat.After
	vm.combat = Combat{}
	if after == 0 {
		return nil
	}
	return vm.addOption(op.Continue, after, 0)
}
