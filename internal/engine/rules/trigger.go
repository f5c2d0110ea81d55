package rules

// Trigger identifies the point in the combat resolution pipeline (§4.6,
// §4.7) where a rule is evaluated.
type Trigger int

const (
	// BeforeToHit fires before the to-hit roll, letting weapon/shooting
	// modifier rules adjust the hit threshold.
	BeforeToHit Trigger = iota
	// BeforeToWound fires before the to-wound roll.
	BeforeToWound
	// BeforeCritical fires once a natural 6 to-wound has been confirmed,
	// letting weapon rules pick the critical's kind (ignoresArmor vs
	// injuryBonus).
	BeforeCritical
	// BeforeSave fires before the armor save roll.
	BeforeSave
	// BeforeInjury fires before the injury roll, letting concussion
	// weapons (maces/hammers) convert the result.
	BeforeInjury

	// BeforeMove is the hook point for movement-family distance rules. The
	// engine's own movement handler never evaluates it.
	BeforeMove
)
