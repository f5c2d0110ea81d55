package phase

import (
	"testing"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
	"github.com/stretchr/testify/require"
)

func TestStandardTurnSequenceOrder(t *testing.T) {
	seq := StandardTurnSequence()
	require.Len(t, seq, 5)
	require.Equal(t, core.PhaseSetup, seq[0].Type)
	require.Equal(t, core.PhaseCombat, seq[4].Type)
}

func TestNextWrapsCombatToRecovery(t *testing.T) {
	require.Equal(t, core.PhaseRecovery, Next(core.PhaseCombat))
	require.Equal(t, core.PhaseMovement, Next(core.PhaseRecovery))
}

func TestIsEventAllowed(t *testing.T) {
	d := DescriptorFor(core.PhaseMovement)
	require.True(t, d.IsEventAllowed(event.ConfirmMove))
	require.True(t, d.IsEventAllowed(event.AdvancePhase))
	require.False(t, d.IsEventAllowed(event.ConfirmShot))
}

func TestResetFlagsOnEntryMovement(t *testing.T) {
	w := core.NewGameWarrior(&core.Warrior{})
	w.HasMoved, w.HasRun, w.HasCharged = true, true, true
	w.HalfMovement, w.StrikesLast = true, true

	ResetFlagsOnEntry(core.PhaseMovement, w)

	require.False(t, w.HasMoved)
	require.False(t, w.HasRun)
	require.False(t, w.HasCharged)
	require.False(t, w.HalfMovement)
	require.False(t, w.StrikesLast)
}

func TestResetFlagsOnEntryShooting(t *testing.T) {
	w := core.NewGameWarrior(&core.Warrior{})
	w.HasShot = true
	ResetFlagsOnEntry(core.PhaseShooting, w)
	require.False(t, w.HasShot)
}
