package core

import gonanoid "github.com/matoous/go-nanoid/v2"

// WarriorID opaquely identifies a Warrior across a match.
type WarriorID string

// WarbandID opaquely identifies a Warband across a match.
type WarbandID string

// newID mints an opaque id. Panics only if the system entropy source is
// broken, which gonanoid treats as unrecoverable.
func newID() string {
	id, err := gonanoid.New()
	if err != nil {
		panic("core: failed to generate id: " + err.Error())
	}
	return id
}

// NewWarriorID mints a fresh opaque warrior id.
func NewWarriorID() WarriorID {
	return WarriorID(newID())
}

// NewWarbandID mints a fresh opaque warband id.
func NewWarbandID() WarbandID {
	return WarbandID(newID())
}
