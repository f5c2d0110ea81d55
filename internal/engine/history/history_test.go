package history

import (
	"testing"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	l := New(42, core.GameState{Turn: 1})

	e1 := l.Append(event.Event{Type: event.AdvancePhase})
	e2 := l.Append(event.Event{Type: event.AdvancePhase})

	require.Equal(t, int64(1), e1.ID)
	require.Equal(t, int64(2), e2.ID)
	require.Len(t, l.All(), 2)
}

func TestTruncateAfterDropsSuffixAndResetsCounter(t *testing.T) {
	l := New(1, core.GameState{})
	l.Append(event.Event{Type: event.SelectWarrior})
	l.Append(event.Event{Type: event.Deselect})
	l.Append(event.Event{Type: event.AdvancePhase})

	idx := l.IndexOfEvent(2)
	require.Equal(t, 1, idx)

	l.TruncateAfter(idx)
	require.Len(t, l.All(), 2)

	next := l.Append(event.Event{Type: event.ConfirmPosition})
	require.Equal(t, int64(3), next.ID)
}

func TestResetClearsEvents(t *testing.T) {
	l := New(1, core.GameState{})
	l.Append(event.Event{Type: event.AdvancePhase})
	l.Reset()
	require.Empty(t, l.All())

	e := l.Append(event.Event{Type: event.AdvancePhase})
	require.Equal(t, int64(1), e.ID)
}

func TestSerializeRoundTrip(t *testing.T) {
	l := New(99, core.GameState{Turn: 1, CurrentPlayer: 1})
	l.Append(event.Event{Type: event.AdvancePhase, Meta: event.Meta{PlayerID: 1}})

	doc := Serialize(l, core.GameState{Turn: 2, CurrentPlayer: 2})
	b, err := Marshal(doc)
	require.NoError(t, err)

	decoded, err := Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, doc.Seed, decoded.Seed)
	require.Equal(t, doc.State, decoded.State)
	require.Len(t, decoded.History, 1)

	reloaded := Load(decoded)
	require.Equal(t, int64(99), reloaded.Seed)
	next := reloaded.Append(event.Event{Type: event.Deselect})
	require.Equal(t, int64(2), next.ID)
}
