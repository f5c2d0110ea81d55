package core

// StrikeOrderEntry is one warrior's place in the combat phase's strike order
// (§4.7): chargers first (descending Initiative), then non-chargers
// (descending Initiative), with strikesLast warriors forced to the tail
// regardless of the above.
type StrikeOrderEntry struct {
	WarriorID        WarriorID
	Charged          bool
	StrikesLast      bool
	Initiative       int
	AttacksRemaining int
	AttacksTotal     int
	Completed        bool
}

// ResolutionOutcome is the final, display-facing classification of a
// completed shooting or melee resolution (§4.6).
type ResolutionOutcome string

const (
	OutcomeMiss         ResolutionOutcome = "miss"
	OutcomeNoWound      ResolutionOutcome = "noWound"
	OutcomeSaved        ResolutionOutcome = "saved"
	OutcomeKnockedDown  ResolutionOutcome = "knockedDown"
	OutcomeStunned      ResolutionOutcome = "stunned"
	OutcomeOutOfAction  ResolutionOutcome = "outOfAction"
)

// CombatResolution is the full roll breakdown of one shooting or melee
// attack, attached to GameState.PendingResolution until ACKNOWLEDGEd (§4.6,
// §4.7, design note §9: represented as a plain optional field, not a nested
// state machine).
type CombatResolution struct {
	AttackerID WarriorID
	DefenderID WarriorID
	WeaponKey  string
	IsShooting bool

	HitThreshold int
	HitRoll      int
	Hit          bool
	AutoHit      bool

	WoundThreshold int
	WoundRoll      int
	Wounded        bool

	Critical     bool
	CriticalKind string // "ignoresArmor" | "injuryBonus" | ""

	Parried      bool
	ParryRoll    int

	SaveThreshold int // > 6 means no save possible
	SaveRoll      int
	Saved         bool

	UsedWoundsBuffer bool // hero "wounds remaining" buffer applied before injury
	InjuryRoll       int
	InjuryRolled     bool

	Outcome ResolutionOutcome
}

// PendingRoutTest is a queued leadership test for a warband that crossed the
// rout threshold (§4.8). Multiple tests are processed strictly in the order
// they were inserted.
type PendingRoutTest struct {
	WarbandIndex int // 0 or 1, index into GameState.Warbands
	LeaderID     WarriorID
}

// GameState is the canonical in-memory match state (§3).
type GameState struct {
	Turn          int
	CurrentPlayer int // 1 or 2
	Phase         Phase
	Warbands      [2]*Warband
	Ended         bool
	Winner        int // 0 = none yet, 1 or 2 = winning player, -1 = draw

	StrikeOrder         []StrikeOrderEntry
	CurrentFighterIndex int

	PendingResolution *CombatResolution
	PendingRoutTests  []PendingRoutTest
}

// ActiveWarband returns the warband belonging to CurrentPlayer.
func (gs *GameState) ActiveWarband() *Warband {
	return gs.Warbands[gs.CurrentPlayer-1]
}

// OpponentWarband returns the warband belonging to the non-active player.
func (gs *GameState) OpponentWarband() *Warband {
	return gs.Warbands[2-gs.CurrentPlayer]
}

// WarbandIndexOf returns the 0-based warband index for a player id (1 or 2).
func WarbandIndexOf(playerID int) int { return playerID - 1 }

// FindWarrior searches both warbands for a warrior id.
func (gs *GameState) FindWarrior(id WarriorID) (*GameWarrior, int) {
	for i, wb := range gs.Warbands {
		if gw := wb.Find(id); gw != nil {
			return gw, i
		}
	}
	return nil, -1
}

// AllWarriors returns a lookup map of every warrior in the match, used by
// symmetry-maintenance helpers that need to search across both rosters.
func (gs *GameState) AllWarriors() map[WarriorID]*GameWarrior {
	all := make(map[WarriorID]*GameWarrior)
	for _, wb := range gs.Warbands {
		for _, gw := range wb.Warriors {
			all[gw.ID()] = gw
		}
	}
	return all
}
