// Package screen implements the Screen Projector (§4.9): a pure function
// from engine state to a discriminated descriptor telling a host which
// events it may currently submit and what data to show for them.
package screen

import (
	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
	"github.com/jruiznavarro/skirmishengine/internal/engine/phase"
)

// Name is the discriminated screen kind.
type Name string

const (
	Error             Name = "ERROR"
	GameSetup         Name = "GAME_SETUP"
	RecoveryPhase     Name = "RECOVERY_PHASE"
	MovementPhase     Name = "MOVEMENT_PHASE"
	ShootingPhase     Name = "SHOOTING_PHASE"
	CombatPhase       Name = "COMBAT_PHASE"
	CombatResolution  Name = "COMBAT_RESOLUTION"
	RoutTest          Name = "ROUT_TEST"
	GameOver          Name = "GAME_OVER"
)

// MovementData is the screen-specific payload for MOVEMENT_PHASE.
type MovementData struct {
	ActableWarriors []core.WarriorID
	ChargeTargets   []core.WarriorID
	CanCharge       bool
}

// CombatResolutionData mirrors the pending resolution record for display.
type CombatResolutionData struct {
	Resolution core.CombatResolution
}

// RoutTestData carries the leader facing the rout test.
type RoutTestData struct {
	WarbandIndex int
	LeaderID     core.WarriorID
}

// GameOverData names the winner, or -1 for a draw.
type GameOverData struct {
	Winner int
}

// Descriptor is the projected view a host drives its UI from (§4.9). It is
// the sole source of truth for which events are currently legal.
type Descriptor struct {
	Screen          Name
	Phase           core.Phase
	CurrentPlayer   int
	Turn            int
	AvailableEvents []event.Type
	Data            any
	ErrorMessage    string
}

// EngineState is the minimal read surface the projector needs. The facade
// fills one in from its live state and selection on each GetScreen call, so
// this package never imports the facade, avoiding an import cycle.
type EngineState struct {
	Game             *core.GameState
	SelectedWarrior  core.WarriorID
}

// Project computes the current Descriptor (§4.9). Project is a pure
// function: it never mutates es.Game and performs no I/O, so a host may
// call it as often as it likes without caching.
func Project(es EngineState) Descriptor {
	if es.Game == nil {
		return Descriptor{Screen: Error, ErrorMessage: "no active game"}
	}
	gs := es.Game

	if gs.Ended {
		winner := gs.Winner
		return Descriptor{
			Screen:          GameOver,
			Phase:           gs.Phase,
			CurrentPlayer:   gs.CurrentPlayer,
			Turn:            gs.Turn,
			AvailableEvents: []event.Type{event.Undo},
			Data:            GameOverData{Winner: winner},
		}
	}

	if len(gs.PendingRoutTests) > 0 {
		rt := gs.PendingRoutTests[0]
		return Descriptor{
			Screen:          RoutTest,
			Phase:           gs.Phase,
			CurrentPlayer:   gs.CurrentPlayer,
			Turn:            gs.Turn,
			AvailableEvents: []event.Type{event.Acknowledge, event.Undo, event.EndGame},
			Data:            RoutTestData{WarbandIndex: rt.WarbandIndex, LeaderID: rt.LeaderID},
		}
	}

	if gs.PendingResolution != nil {
		return Descriptor{
			Screen:          CombatResolution,
			Phase:           gs.Phase,
			CurrentPlayer:   gs.CurrentPlayer,
			Turn:            gs.Turn,
			AvailableEvents: []event.Type{event.Acknowledge, event.Undo, event.EndGame},
			Data:            CombatResolutionData{Resolution: *gs.PendingResolution},
		}
	}

	descriptor := phase.DescriptorFor(gs.Phase)
	base := Descriptor{
		Phase:           gs.Phase,
		CurrentPlayer:   gs.CurrentPlayer,
		Turn:            gs.Turn,
		AvailableEvents: append([]event.Type{event.AdvancePhase, event.Undo, event.EndGame}, descriptor.AllowedEvents...),
	}

	switch gs.Phase {
	case core.PhaseSetup:
		base.Screen = GameSetup
	case core.PhaseRecovery:
		base.Screen = RecoveryPhase
	case core.PhaseMovement:
		base.Screen = MovementPhase
		base.Data = movementData(gs, es.SelectedWarrior)
	case core.PhaseShooting:
		base.Screen = ShootingPhase
	case core.PhaseCombat:
		base.Screen = CombatPhase
	default:
		return Descriptor{Screen: Error, ErrorMessage: "unknown phase"}
	}

	return base
}

func movementData(gs *core.GameState, selected core.WarriorID) MovementData {
	active := gs.ActiveWarband()
	data := MovementData{}

	for _, gw := range active.Warriors {
		if gw.IsActive() && !gw.HasMoved && !gw.CombatState.InCombat {
			data.ActableWarriors = append(data.ActableWarriors, gw.ID())
		}
	}

	if selected == "" {
		return data
	}
	selectedWarrior := active.Find(selected)
	if selectedWarrior == nil || selectedWarrior.HasMoved || selectedWarrior.CombatState.InCombat {
		return data
	}

	opponent := gs.OpponentWarband()
	for _, enemy := range opponent.Warriors {
		if !enemy.IsOutOfAction() {
			data.ChargeTargets = append(data.ChargeTargets, enemy.ID())
		}
	}
	data.CanCharge = len(data.ChargeTargets) > 0
	return data
}
