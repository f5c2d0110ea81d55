package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOkFail(t *testing.T) {
	ok := Ok("data")
	require.True(t, ok.Success)
	require.Nil(t, ok.Error)
	require.Equal(t, "data", ok.Data)

	err := NewError(KindWrongPhase, "event not allowed in this phase")
	failed := Fail(err)
	require.False(t, failed.Success)
	require.Equal(t, KindWrongPhase, failed.Error.Kind)
}

func TestErrorStableKind(t *testing.T) {
	err := NewErrorf(KindInvalidRecoveryAction, "Warrior is not %s", "stunned")
	require.Equal(t, KindInvalidRecoveryAction, err.Kind)
	require.Equal(t, "Warrior is not stunned", err.Error())
}
