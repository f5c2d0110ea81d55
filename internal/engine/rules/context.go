package rules

import (
	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/tables"
)

// Context carries all the information a rule needs to evaluate its condition
// and apply its effect. Fields are populated depending on the trigger point;
// not every field is set for every trigger.
type Context struct {
	Attacker *core.GameWarrior
	Defender *core.GameWarrior

	// Weapon is the weapon profile in play for combat-pipeline triggers.
	Weapon *tables.WeaponProfile

	PhaseType core.Phase

	// Distance is the abstract (coordinate-free) movement distance being
	// finalized for a BeforeMove trigger.
	Distance int

	// Modifiers is the accumulator rules write into. The resolution
	// pipeline reads this back after evaluating a trigger.
	Modifiers Modifiers

	// Blocked and BlockMessage are available for a rule to set. The combat
	// resolution pipeline does not read them, so setting Blocked does not
	// stop a resolution.
	Blocked      bool
	BlockMessage string
}

// Modifiers holds the accumulated effect of every rule fired for one
// trigger. The resolution pipeline (§4.6, §4.7) folds these into the roll
// thresholds and outcome it computes.
type Modifiers struct {
	HitMod   int // added to the to-hit threshold need (negative = easier)
	WoundMod int // added to the to-wound threshold need
	SaveMod  int // subtracted from the armor save threshold need (negative = harder to save)

	CriticalIgnoresArmor bool // weapon's critical bypasses armor save entirely
	CriticalInjuryBonus  int  // added to the injury roll on a critical wound

	// InjuryMinimum floors the injury roll (e.g. concussion weapons force
	// at least a stunned result). Zero means no floor.
	InjuryMinimum int

	MoveMod int // added to the finalized movement distance
}

// Merge combines two modifier sets by adding the numeric fields, taking the
// larger of the two floors, and OR-ing the boolean ones.
func (m *Modifiers) Merge(other Modifiers) {
	m.HitMod += other.HitMod
	m.WoundMod += other.WoundMod
	m.SaveMod += other.SaveMod
	m.CriticalIgnoresArmor = m.CriticalIgnoresArmor || other.CriticalIgnoresArmor
	m.CriticalInjuryBonus += other.CriticalInjuryBonus
	if other.InjuryMinimum > m.InjuryMinimum {
		m.InjuryMinimum = other.InjuryMinimum
	}
	m.MoveMod += other.MoveMod
}
