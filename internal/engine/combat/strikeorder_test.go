package combat

import (
	"testing"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/stretchr/testify/require"
)

func warriorWithInitiative(name string, initiative int) *core.GameWarrior {
	w := core.NewGameWarrior(&core.Warrior{
		ID:      core.NewWarriorID(),
		Name:    name,
		Profile: core.Profile{I: initiative, A: 1},
	})
	return w
}

func TestBuildStrikeOrderChargerFirstDespiteLowerInitiative(t *testing.T) {
	a := warriorWithInitiative("A", 3)
	a.HasCharged = true
	b := warriorWithInitiative("B", 6)

	order := BuildStrikeOrder([]*core.GameWarrior{b, a})

	require.Len(t, order, 2)
	require.Equal(t, a.ID(), order[0].WarriorID)
	require.Equal(t, b.ID(), order[1].WarriorID)
}

func TestBuildStrikeOrderStrikesLastForcedToTail(t *testing.T) {
	charger := warriorWithInitiative("charger", 2)
	charger.HasCharged = true
	stoodUp := warriorWithInitiative("stoodUp", 9)
	stoodUp.StrikesLast = true

	order := BuildStrikeOrder([]*core.GameWarrior{stoodUp, charger})

	require.Equal(t, charger.ID(), order[0].WarriorID)
	require.Equal(t, stoodUp.ID(), order[1].WarriorID)
}

func TestBuildStrikeOrderAttackBudgetIncludesChargerBonus(t *testing.T) {
	charger := warriorWithInitiative("charger", 4)
	charger.HasCharged = true
	charger.Warrior.Profile.A = 2

	order := BuildStrikeOrder([]*core.GameWarrior{charger})
	require.Equal(t, 3, order[0].AttacksTotal)
	require.Equal(t, 3, order[0].AttacksRemaining)
}

func TestNextFighterIndexSkipsCompletedAndOutOfAction(t *testing.T) {
	gwA := warriorWithInitiative("a", 5)
	gwB := warriorWithInitiative("b", 4)
	gwB.GameStatus = core.StatusOutOfAction
	all := map[core.WarriorID]*core.GameWarrior{gwA.ID(): gwA, gwB.ID(): gwB}

	order := []core.StrikeOrderEntry{
		{WarriorID: gwA.ID(), Completed: true},
		{WarriorID: gwB.ID()},
	}
	require.Equal(t, -1, NextFighterIndex(order, all, 0))
	require.True(t, AllFightersComplete(order, all))
}
