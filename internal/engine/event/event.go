// Package event defines the engine's closed event taxonomy (§6): the
// typed intents a caller may submit to the facade, and the result shape
// every handler returns.
package event

import "github.com/jruiznavarro/skirmishengine/internal/engine/core"

// Type is the closed set of event tags a caller may submit.
type Type string

const (
	SelectWarrior   Type = "SELECT_WARRIOR"
	Deselect        Type = "DESELECT"
	ConfirmPosition Type = "CONFIRM_POSITION"
	AdvancePhase    Type = "ADVANCE_PHASE"
	RecoveryAction  Type = "RECOVERY_ACTION"
	ConfirmMove     Type = "CONFIRM_MOVE"
	ToggleModifier  Type = "TOGGLE_MODIFIER"
	ConfirmShot     Type = "CONFIRM_SHOT"
	SkipShooting    Type = "SKIP_SHOOTING"
	ConfirmMelee    Type = "CONFIRM_MELEE"
	Acknowledge     Type = "ACKNOWLEDGE"
	Undo            Type = "UNDO"
	EndGame         Type = "END_GAME"
)

// MoveType is the CONFIRM_MOVE payload's moveType field.
type MoveType string

const (
	MoveTypeMove   MoveType = "move"
	MoveTypeRun    MoveType = "run"
	MoveTypeCharge MoveType = "charge"
)

// RecoveryActionKind is the RECOVERY_ACTION payload's action field.
type RecoveryActionKind string

const (
	RecoverFromStunned RecoveryActionKind = "recoverFromStunned"
	StandUp            RecoveryActionKind = "standUp"
	Rally              RecoveryActionKind = "rally"
)

// Meta carries the submitting player and a wall-clock-free sequencing
// timestamp. Timestamp is caller-supplied so replay stays deterministic.
type Meta struct {
	PlayerID  int
	Timestamp int64
}

// Payload is the tag-specific data carried by an Event. Only the fields
// relevant to Type are populated; it is intentionally a flat struct rather
// than an interface so Events serialize directly via msgpack.
type Payload struct {
	WarriorID      core.WarriorID
	TargetID       core.WarriorID
	MoveType       MoveType
	RecoveryAction RecoveryActionKind
	ModifierKey    string
	WeaponKey      string
	ToEventID      int64
}

// Event is one applied (or attempted) intent (§3).
type Event struct {
	ID      int64
	Type    Type
	Payload Payload
	Meta    Meta
}

// Result is what processEvent returns for every submitted event (§4.2).
type Result struct {
	Success bool
	Error   *Error
	Data    any
}

// Ok builds a successful Result, optionally carrying derived data (e.g. a
// combat resolution breakdown).
func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a failing Result from an engine error.
func Fail(err *Error) Result {
	return Result{Success: false, Error: err}
}
