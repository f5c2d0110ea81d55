package screen

import (
	"testing"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
	"github.com/stretchr/testify/require"
)

func sampleGame() *core.GameState {
	w1 := core.NewGameWarrior(&core.Warrior{ID: core.NewWarriorID(), Profile: core.Profile{Movement: 4}})
	wb1 := &core.Warband{ID: core.NewWarbandID(), Warriors: []*core.GameWarrior{w1}}
	w2 := core.NewGameWarrior(&core.Warrior{ID: core.NewWarriorID(), Profile: core.Profile{Movement: 4}})
	wb2 := &core.Warband{ID: core.NewWarbandID(), Warriors: []*core.GameWarrior{w2}}
	return &core.GameState{
		Turn: 1, CurrentPlayer: 1, Phase: core.PhaseMovement,
		Warbands: [2]*core.Warband{wb1, wb2},
	}
}

func TestProjectNoGame(t *testing.T) {
	d := Project(EngineState{})
	require.Equal(t, Error, d.Screen)
}

func TestProjectGameOver(t *testing.T) {
	gs := sampleGame()
	gs.Ended = true
	gs.Winner = 1
	d := Project(EngineState{Game: gs})
	require.Equal(t, GameOver, d.Screen)
	require.Equal(t, GameOverData{Winner: 1}, d.Data)
}

func TestProjectPendingRoutTestBeforePhaseScreen(t *testing.T) {
	gs := sampleGame()
	gs.PendingRoutTests = []core.PendingRoutTest{{WarbandIndex: 0, LeaderID: "leader-1"}}
	d := Project(EngineState{Game: gs})
	require.Equal(t, RoutTest, d.Screen)
}

func TestProjectMovementPhaseListsActableWarriors(t *testing.T) {
	gs := sampleGame()
	d := Project(EngineState{Game: gs})
	require.Equal(t, MovementPhase, d.Screen)
	data, ok := d.Data.(MovementData)
	require.True(t, ok)
	require.Len(t, data.ActableWarriors, 1)
}

func TestProjectAlwaysAllowedEventsAreListed(t *testing.T) {
	gs := sampleGame()
	d := Project(EngineState{Game: gs})
	require.Contains(t, d.AvailableEvents, event.AdvancePhase)
	require.Contains(t, d.AvailableEvents, event.Undo)
	require.Contains(t, d.AvailableEvents, event.EndGame)

	gs = sampleGame()
	gs.PendingRoutTests = []core.PendingRoutTest{{WarbandIndex: 0, LeaderID: "leader-1"}}
	d = Project(EngineState{Game: gs})
	require.Contains(t, d.AvailableEvents, event.Undo)
	require.Contains(t, d.AvailableEvents, event.EndGame)

	gs = sampleGame()
	gs.Ended = true
	d = Project(EngineState{Game: gs})
	require.Equal(t, []event.Type{event.Undo}, d.AvailableEvents)
}
