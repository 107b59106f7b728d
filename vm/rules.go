package vm

import "math/rand/v2"

// Rules is the character arithmetic used by skill-check and do-damage.
type Rules interface {
	// SkillCheck reports whether a character with the given current
	// skill value beats target.
	SkillCheck(rng *rand.Rand, cur, target int32) bool
	// Damage returns how much is taken off knock out skills.
	Damage(amount, resist int32) int32
}

// DefaultRules rolls 1d20 + skill against the target and lets resistance
// absorb damage.
type DefaultRules struct{}

func (DefaultRules) SkillCheck(rng *rand.Rand, cur, target int32) bool {
	return rng.Int32N(20)+1+cur >= target
}

func (DefaultRules) Damage(amount, resist int32) int32 {
	return max(0, amount-resist)
}
