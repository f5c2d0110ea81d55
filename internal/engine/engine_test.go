package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
	"github.com/jruiznavarro/skirmishengine/internal/engine/history"
	"github.com/jruiznavarro/skirmishengine/pkg/dice"
)

func newWarrior(name string, profile core.Profile, category core.Category) *core.GameWarrior {
	return core.NewGameWarrior(&core.Warrior{
		ID:        core.NewWarriorID(),
		Name:      name,
		Category:  category,
		Profile:   profile,
		Equipment: core.Equipment{MeleeWeapons: []string{"dagger"}},
	})
}

func newWarband(name string, warriors ...*core.GameWarrior) *core.Warband {
	return &core.Warband{ID: core.NewWarbandID(), Name: name, Warriors: warriors}
}

func twoWarbandGame(src dice.Source) *Engine {
	e := New(WithRandomSource(src))
	w1 := newWarband("Reavers",
		newWarrior("Grim", core.Profile{Movement: 4, WS: 4, BS: 3, S: 3, T: 3, W: 1, I: 5, A: 1, Ld: 7}, ""),
	)
	w2 := newWarband("Cultists",
		newWarrior("Morg", core.Profile{Movement: 4, WS: 3, BS: 3, S: 3, T: 5, W: 1, I: 3, A: 1, Ld: 7}, ""),
	)
	e.CreateGame(w1, w2, "skirmish", 1)
	return e
}

// advancePastSetup drives ADVANCE_PHASE through both setup steps, landing on
// recovery with CurrentPlayer back at 1.
func advancePastSetup(t *testing.T, e *Engine) {
	t.Helper()
	res := e.ProcessEvent(event.Event{Type: event.AdvancePhase})
	require.True(t, res.Success)
	res = e.ProcessEvent(event.Event{Type: event.AdvancePhase})
	require.True(t, res.Success)
	require.Equal(t, core.PhaseRecovery, e.GetState().Phase)
	require.Equal(t, 1, e.GetState().CurrentPlayer)
}

func TestSelectWarriorRejectsOpponentWarrior(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))
	opponent := e.GetState().Warbands[1].Warriors[0]

	res := e.ProcessEvent(event.Event{Type: event.SelectWarrior, Payload: event.Payload{WarriorID: opponent.ID()}})

	require.False(t, res.Success)
	require.Equal(t, event.KindCannotSelectOpponent, res.Error.Kind)
	require.Equal(t, core.WarriorID(""), e.GetSelectedWarriorID())
}

func TestAdvancePhaseSetupTogglesPlayerThenEntersRecovery(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))
	require.Equal(t, core.PhaseSetup, e.GetState().Phase)
	require.Equal(t, 1, e.GetState().CurrentPlayer)

	res := e.ProcessEvent(event.Event{Type: event.AdvancePhase})
	require.True(t, res.Success)
	require.Equal(t, core.PhaseSetup, e.GetState().Phase)
	require.Equal(t, 2, e.GetState().CurrentPlayer)

	res = e.ProcessEvent(event.Event{Type: event.AdvancePhase})
	require.True(t, res.Success)
	require.Equal(t, core.PhaseRecovery, e.GetState().Phase)
	require.Equal(t, 1, e.GetState().CurrentPlayer)
}

func TestRecoveryActionStandUpSetsHalfMovementAndStrikesLast(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))
	advancePastSetup(t, e)

	warrior := e.GetState().Warbands[0].Warriors[0]
	warrior.GameStatus = core.StatusKnockedDown

	res := e.ProcessEvent(event.Event{
		Type:    event.RecoveryAction,
		Payload: event.Payload{WarriorID: warrior.ID(), RecoveryAction: event.StandUp},
	})

	require.True(t, res.Success)
	require.Equal(t, core.StatusStanding, warrior.GameStatus)
	require.True(t, warrior.HalfMovement)
	require.True(t, warrior.StrikesLast)
	require.True(t, warrior.HasRecovered)
}

func TestRecoveryActionRejectsSecondAttemptSameTurn(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))
	advancePastSetup(t, e)
	warrior := e.GetState().Warbands[0].Warriors[0]
	warrior.GameStatus = core.StatusKnockedDown

	res := e.ProcessEvent(event.Event{
		Type:    event.RecoveryAction,
		Payload: event.Payload{WarriorID: warrior.ID(), RecoveryAction: event.StandUp},
	})
	require.True(t, res.Success)

	res = e.ProcessEvent(event.Event{
		Type:    event.RecoveryAction,
		Payload: event.Payload{WarriorID: warrior.ID(), RecoveryAction: event.Rally},
	})
	require.False(t, res.Success)
	require.Equal(t, event.KindAlreadyActed, res.Error.Kind)
}

// runToCombatWithCharge drives the engine from setup through a charge in the
// movement phase and into the combat phase, returning the charger and the
// warrior it charged (now mutually engaged).
func runToCombatWithCharge(t *testing.T, e *Engine) (attacker, defender *core.GameWarrior) {
	t.Helper()
	advancePastSetup(t, e)

	attacker = e.GetState().Warbands[0].Warriors[0]
	defender = e.GetState().Warbands[1].Warriors[0]

	// Simulate both warriors having confirmed their starting position during
	// setup, which also sets HasActed -- the flag buildStrikeOrder must
	// clear again once combat is entered.
	attacker.HasActed = true
	defender.HasActed = true

	res := e.ProcessEvent(event.Event{Type: event.AdvancePhase}) // recovery -> movement
	require.True(t, res.Success)
	require.Equal(t, core.PhaseMovement, e.GetState().Phase)

	res = e.ProcessEvent(event.Event{Type: event.SelectWarrior, Payload: event.Payload{WarriorID: attacker.ID()}})
	require.True(t, res.Success)

	res = e.ProcessEvent(event.Event{
		Type: event.ConfirmMove,
		Payload: event.Payload{
			MoveType: event.MoveTypeCharge,
			TargetID: defender.ID(),
		},
	})
	require.True(t, res.Success)
	require.True(t, attacker.HasCharged)
	require.True(t, attacker.CombatState.EngagedWith[defender.ID()])

	res = e.ProcessEvent(event.Event{Type: event.AdvancePhase}) // movement -> shooting
	require.True(t, res.Success)
	res = e.ProcessEvent(event.Event{Type: event.AdvancePhase}) // shooting -> combat
	require.True(t, res.Success)
	require.Equal(t, core.PhaseCombat, e.GetState().Phase)

	return attacker, defender
}

func TestBuildStrikeOrderPutsChargerFirstAndResetsHasActed(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))
	attacker, _ := runToCombatWithCharge(t, e)

	require.NotEmpty(t, e.GetState().StrikeOrder)
	require.Equal(t, attacker.ID(), e.GetState().StrikeOrder[0].WarriorID)
	require.True(t, e.GetState().StrikeOrder[0].Charged)

	// CONFIRM_POSITION in setup left HasActed set; entering combat must
	// clear it again so a weapon rule keyed on "hasn't swung this phase
	// yet" (the flail's first-round bonus) can see an accurate flag.
	require.False(t, attacker.HasActed)
}

func TestFlailFirstSwingWoundsEasierThanSubsequentSwings(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1, 1))
	attacker, defender := runToCombatWithCharge(t, e)
	defender.GameStatus = core.StatusKnockedDown // auto-hit, no parry roll consumed

	res := e.ProcessEvent(event.Event{
		Type: event.ConfirmMelee,
		Payload: event.Payload{
			TargetID:  defender.ID(),
			WeaponKey: "flail",
		},
	})
	require.True(t, res.Success)
	firstThreshold := res.Data.(*core.CombatResolution).WoundThreshold
	require.True(t, attacker.HasActed)

	ack := e.ProcessEvent(event.Event{Type: event.Acknowledge})
	require.True(t, ack.Success)

	res = e.ProcessEvent(event.Event{
		Type: event.ConfirmMelee,
		Payload: event.Payload{
			TargetID:  defender.ID(),
			WeaponKey: "flail",
		},
	})
	require.True(t, res.Success)
	secondThreshold := res.Data.(*core.CombatResolution).WoundThreshold

	require.Less(t, firstThreshold, secondThreshold)
}

func TestRoutTestQueuedAndFailureEndsGame(t *testing.T) {
	src := dice.NewScripted(6, 6) // woundRoll=6 (crit), injuryRoll=6 -> outOfAction; then rout-test roll 6+6=12
	e := New(WithRandomSource(src))

	leader := newWarrior("Leader", core.Profile{Movement: 4, WS: 3, BS: 3, S: 10, T: 3, W: 1, I: 4, A: 1, Ld: 7}, "")
	doomed := newWarrior("Doomed", core.Profile{Movement: 4, WS: 3, BS: 3, S: 3, T: 3, W: 1, I: 4, A: 1, Ld: 5}, "")
	ally1 := newWarrior("Ally1", core.Profile{Movement: 4, WS: 3, BS: 3, S: 3, T: 3, W: 1, I: 4, A: 1, Ld: 5}, "")
	ally2 := newWarrior("Ally2", core.Profile{Movement: 4, WS: 3, BS: 3, S: 3, T: 3, W: 1, I: 4, A: 1, Ld: 5}, "")
	attacker := newWarrior("Attacker", core.Profile{Movement: 4, WS: 6, BS: 3, S: 10, T: 3, W: 1, I: 4, A: 1, Ld: 7}, "")

	w1 := newWarband("Defenders", leader, doomed, ally1, ally2)
	w2 := newWarband("Raiders", attacker)
	e.CreateGame(w1, w2, "rout-check", 1)

	doomed.GameStatus = core.StatusKnockedDown
	core.Engage(attacker, doomed)
	e.GetState().Phase = core.PhaseCombat
	e.GetState().StrikeOrder = []core.StrikeOrderEntry{
		{WarriorID: attacker.ID(), AttacksRemaining: 1, AttacksTotal: 1},
	}
	e.GetState().CurrentFighterIndex = 0

	res := e.ProcessEvent(event.Event{
		Type:    event.ConfirmMelee,
		Payload: event.Payload{TargetID: doomed.ID(), WeaponKey: "dagger"},
	})
	require.True(t, res.Success)
	require.Equal(t, core.OutcomeOutOfAction, res.Data.(*core.CombatResolution).Outcome)
	require.Equal(t, core.StatusOutOfAction, doomed.GameStatus)

	ack := e.ProcessEvent(event.Event{Type: event.Acknowledge})
	require.True(t, ack.Success)
	require.Len(t, e.GetState().PendingRoutTests, 1)

	ack = e.ProcessEvent(event.Event{Type: event.Acknowledge})
	require.True(t, ack.Success)
	result := ack.Data.(RoutTestResult)
	require.False(t, result.Passed)
	require.True(t, e.GetState().Ended)
	require.Equal(t, 2, e.GetState().Winner)
}

func TestUndoLastEventsRestoresPriorState(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))

	e.ProcessEvent(event.Event{Type: event.AdvancePhase}) // setup: player 1 -> 2
	require.Equal(t, 2, e.GetState().CurrentPlayer)
	require.Len(t, e.GetHistory(), 1)

	res := e.UndoLastEvents(1)
	require.True(t, res.Success)
	require.Equal(t, 1, e.GetState().CurrentPlayer)
	require.Equal(t, core.PhaseSetup, e.GetState().Phase)
	require.Empty(t, e.GetHistory())
}

func TestSerializeLoadRoundTrip(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))
	e.ProcessEvent(event.Event{Type: event.AdvancePhase})
	e.ProcessEvent(event.Event{Type: event.AdvancePhase})

	data, err := e.Serialize()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	loaded := New(WithRandomSource(dice.NewScripted(1)))
	err = loaded.Load(data)
	require.NoError(t, err)

	require.Equal(t, e.GetState().Phase, loaded.GetState().Phase)
	require.Equal(t, e.GetState().CurrentPlayer, loaded.GetState().CurrentPlayer)
	require.Len(t, loaded.GetHistory(), len(e.GetHistory()))
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	e := twoWarbandGame(dice.NewScripted(1))
	data, err := e.Serialize()
	require.NoError(t, err)

	doc, err := history.Unmarshal(data)
	require.NoError(t, err)
	doc.Version = "v999"
	badData, err := history.Marshal(doc)
	require.NoError(t, err)

	loaded := New()
	err = loaded.Load(badData)
	require.Error(t, err)
}
