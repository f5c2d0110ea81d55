// Package phase describes each top-level turn segment's allowed events and
// the standard setup→recovery→movement→shooting→combat sequence (§4.1).
package phase

import (
	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
)

// Descriptor pairs a Phase with the events a handler accepts while it is
// current.
type Descriptor struct {
	Type          core.Phase
	AllowedEvents []event.Type
}

// IsEventAllowed reports whether et may be submitted while this phase is
// current. ADVANCE_PHASE, UNDO and END_GAME are always allowed; their
// handler-level preconditions (pending sub-states, history bounds) decide
// the rest.
func (d Descriptor) IsEventAllowed(et event.Type) bool {
	if et == event.AdvancePhase || et == event.Undo || et == event.EndGame {
		return true
	}
	for _, allowed := range d.AllowedEvents {
		if allowed == et {
			return true
		}
	}
	return false
}

func setupDescriptor() Descriptor {
	return Descriptor{
		Type: core.PhaseSetup,
		AllowedEvents: []event.Type{
			event.SelectWarrior, event.Deselect, event.ConfirmPosition,
		},
	}
}

func recoveryDescriptor() Descriptor {
	return Descriptor{
		Type: core.PhaseRecovery,
		AllowedEvents: []event.Type{
			event.RecoveryAction,
		},
	}
}

func movementDescriptor() Descriptor {
	return Descriptor{
		Type: core.PhaseMovement,
		AllowedEvents: []event.Type{
			event.SelectWarrior, event.Deselect, event.ConfirmMove,
		},
	}
}

func shootingDescriptor() Descriptor {
	return Descriptor{
		Type: core.PhaseShooting,
		AllowedEvents: []event.Type{
			event.SelectWarrior, event.Deselect, event.ToggleModifier,
			event.ConfirmShot, event.SkipShooting, event.Acknowledge,
		},
	}
}

func combatDescriptor() Descriptor {
	return Descriptor{
		Type: core.PhaseCombat,
		AllowedEvents: []event.Type{
			event.ConfirmMelee, event.Acknowledge,
		},
	}
}

// StandardTurnSequence returns the five phase descriptors in the fixed
// per-turn order (§4.1). Setup is only entered on turn 1; the engine facade
// is responsible for skipping it on subsequent turns.
func StandardTurnSequence() []Descriptor {
	return []Descriptor{
		setupDescriptor(),
		recoveryDescriptor(),
		movementDescriptor(),
		shootingDescriptor(),
		combatDescriptor(),
	}
}

// Next returns the phase that follows p within the standard sequence. The
// combat -> recovery wraparound always means a turn increment and a player
// flip, which the caller (the facade) is responsible for applying.
func Next(p core.Phase) core.Phase {
	switch p {
	case core.PhaseSetup:
		return core.PhaseRecovery
	case core.PhaseRecovery:
		return core.PhaseMovement
	case core.PhaseMovement:
		return core.PhaseShooting
	case core.PhaseShooting:
		return core.PhaseCombat
	case core.PhaseCombat:
		return core.PhaseRecovery
	default:
		return core.PhaseRecovery
	}
}

// DescriptorFor returns the Descriptor for a given phase type.
func DescriptorFor(p core.Phase) Descriptor {
	for _, d := range StandardTurnSequence() {
		if d.Type == p {
			return d
		}
	}
	return Descriptor{Type: p}
}

// ResetFlagsOnEntry clears the per-turn action flags that reset when w's
// owner enters phase p (§4.1).
func ResetFlagsOnEntry(p core.Phase, w *core.GameWarrior) {
	switch p {
	case core.PhaseRecovery:
		w.HasRecovered = false
	case core.PhaseMovement:
		w.ResetMovementFlags()
	case core.PhaseShooting:
		w.HasShot = false
	}
}
