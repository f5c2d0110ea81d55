package core

// Phase identifies the current top-level segment of a turn.
type Phase string

const (
	PhaseSetup     Phase = "setup"
	PhaseRecovery  Phase = "recovery"
	PhaseMovement  Phase = "movement"
	PhaseShooting  Phase = "shooting"
	PhaseCombat    Phase = "combat"
)
