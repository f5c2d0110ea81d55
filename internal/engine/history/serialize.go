package history

import (
	"fmt"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
	"github.com/vmihailenco/msgpack/v5"
)

// DocumentVersion is bumped whenever the serialized shape changes
// incompatibly. Callers reject a document whose version they don't
// recognize rather than guessing at a migration.
const DocumentVersion = "v1"

// Document is the single structured format serialize()/load() round-trip
// through (§6): version, seed, the live GameState, and the full event
// history needed to replay it. Initial additionally carries the snapshot
// taken at createGame, so a loaded game can still undo all the way back to
// its start rather than only to the moment it was saved.
type Document struct {
	Version string
	Seed    int64
	State   core.GameState
	History []event.Event
	Initial core.GameState
}

// Serialize builds the document for the current log and live state.
func Serialize(l *Log, state core.GameState) Document {
	return Document{
		Version: DocumentVersion,
		Seed:    l.Seed,
		State:   state,
		History: l.All(),
		Initial: l.Initial,
	}
}

// Marshal encodes a Document as msgpack bytes.
func Marshal(doc Document) ([]byte, error) {
	b, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("history: marshal document: %w", err)
	}
	return b, nil
}

// Unmarshal decodes msgpack bytes into a Document.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("history: unmarshal document: %w", err)
	}
	return doc, nil
}

// Load rebuilds a Log from a decoded Document, preserving event ids and the
// original seed so a subsequent replay stays deterministic.
func Load(doc Document) *Log {
	l := &Log{Seed: doc.Seed, Initial: doc.Initial, Events: doc.History, nextID: 1}
	if len(doc.History) > 0 {
		l.nextID = doc.History[len(doc.History)-1].ID + 1
	}
	return l
}
