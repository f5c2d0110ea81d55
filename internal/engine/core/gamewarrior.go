package core

// GameStatus is the per-match condition of a warrior.
type GameStatus string

const (
	StatusStanding     GameStatus = "standing"
	StatusKnockedDown  GameStatus = "knockedDown"
	StatusStunned      GameStatus = "stunned"
	StatusFleeing      GameStatus = "fleeing"
	StatusOutOfAction  GameStatus = "outOfAction"
)

// CombatState tracks which enemies a warrior is engaged with. EngagedWith is
// always maintained as a symmetric relation by the helpers below.
type CombatState struct {
	InCombat    bool
	EngagedWith map[WarriorID]bool
}

// NewCombatState returns an empty, not-in-combat state.
func NewCombatState() CombatState {
	return CombatState{EngagedWith: make(map[WarriorID]bool)}
}

// GameWarrior is the per-match dynamic overlay on an immutable Warrior.
type GameWarrior struct {
	Warrior *Warrior

	GameStatus      GameStatus
	WoundsRemaining int

	HasActed     bool
	HasMoved     bool
	HasRun       bool
	HasCharged   bool
	HasShot      bool
	HasRecovered bool

	CombatState CombatState

	// Per-turn-only modifier flags, cleared on movement-phase entry.
	HalfMovement bool
	StrikesLast  bool

	// Current combat-round attack budget, valid only while phase == combat.
	AttacksRemaining int
	AttacksTotal     int

	// ShootingModifiers toggled by the active player during the shooting
	// phase for the currently selected warrior (§4.6). Cleared once the
	// warrior shoots or skips shooting; deselecting leaves them in place.
	ShootingModifiers map[string]bool
}

// NewGameWarrior builds the initial per-match overlay for a freshly rostered
// Warrior: standing, full wounds, nothing acted yet.
func NewGameWarrior(w *Warrior) *GameWarrior {
	return &GameWarrior{
		Warrior:           w,
		GameStatus:        StatusStanding,
		WoundsRemaining:   w.Profile.W,
		CombatState:       NewCombatState(),
		ShootingModifiers: make(map[string]bool),
	}
}

// ID is a convenience accessor for the underlying static warrior's id.
func (gw *GameWarrior) ID() WarriorID { return gw.Warrior.ID }

// IsActive reports whether the warrior can voluntarily act: standing, and
// not already out of the fight.
func (gw *GameWarrior) IsActive() bool {
	return gw.GameStatus == StatusStanding
}

// IsOutOfAction reports whether this warrior has been removed from play.
func (gw *GameWarrior) IsOutOfAction() bool {
	return gw.GameStatus == StatusOutOfAction
}

// Engage establishes the symmetric engagedWith relation between a and b and
// marks both inCombat. Calling it when already engaged is a no-op.
func Engage(a, b *GameWarrior) {
	a.CombatState.EngagedWith[b.ID()] = true
	b.CombatState.EngagedWith[a.ID()] = true
	a.CombatState.InCombat = true
	b.CombatState.InCombat = true
}

// Disengage removes the symmetric engagedWith relation between a and b,
// updating inCombat for both sides. Used when a defender goes out of action
// or combat otherwise ends between a specific pair.
func Disengage(a, b *GameWarrior) {
	delete(a.CombatState.EngagedWith, b.ID())
	delete(b.CombatState.EngagedWith, a.ID())
	a.CombatState.InCombat = len(a.CombatState.EngagedWith) > 0
	b.CombatState.InCombat = len(b.CombatState.EngagedWith) > 0
}

// RemoveFromAllEngagements clears gw from every warrior engaged with it
// (used when gw goes out of action) given the full roster to search.
func RemoveFromAllEngagements(gw *GameWarrior, all map[WarriorID]*GameWarrior) {
	for id := range gw.CombatState.EngagedWith {
		if other, ok := all[id]; ok {
			delete(other.CombatState.EngagedWith, gw.ID())
			other.CombatState.InCombat = len(other.CombatState.EngagedWith) > 0
		}
	}
	gw.CombatState.EngagedWith = make(map[WarriorID]bool)
	gw.CombatState.InCombat = false
}

// ResetMovementFlags clears the per-turn movement-family flags and the
// this-turn-only modifiers, applied on movement-phase entry for warriors
// whose turn is beginning (§4.1).
func (gw *GameWarrior) ResetMovementFlags() {
	gw.HasMoved = false
	gw.HasRun = false
	gw.HasCharged = false
	gw.HalfMovement = false
	gw.StrikesLast = false
}

// ApplyDamage reduces WoundsRemaining by n, clamping at zero, and flips
// GameStatus to outOfAction exactly when it reaches zero (invariant in §3).
func (gw *GameWarrior) ApplyDamage(n int) {
	gw.WoundsRemaining -= n
	if gw.WoundsRemaining <= 0 {
		gw.WoundsRemaining = 0
		gw.GameStatus = StatusOutOfAction
	}
}
