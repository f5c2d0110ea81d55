package event

import "github.com/KirkDiggler/rpg-toolkit/rpgerr"

// Kind is the engine's stable, test-facing error identity (§7). Kind is
// distinct from the underlying rpgerr.Code: Code classifies the error for
// generic handling (not-allowed, invalid-target, ...), Kind is the exact
// string a test or host asserts against.
type Kind string

const (
	KindNoActiveGame  Kind = "NoActiveGame"
	KindGameEnded     Kind = "GameEnded"

	KindWrongPhase  Kind = "WrongPhase"
	KindWrongPlayer Kind = "WrongPlayer"
	KindNotSelected Kind = "NotSelected"

	KindWarriorNotFound     Kind = "WarriorNotFound"
	KindCannotSelectOpponent Kind = "CannotSelectOpponent"

	KindInvalidRecoveryAction Kind = "InvalidRecoveryAction"

	KindInvalidMoveTarget   Kind = "InvalidMoveTarget"
	KindCannotRunEnemiesNear Kind = "CannotRunEnemiesNear"
	KindAlreadyActed        Kind = "AlreadyActed"

	KindInvalidShootingTarget Kind = "InvalidShootingTarget"
	KindNoRangedWeapon        Kind = "NoRangedWeapon"
	KindTargetOutOfRange      Kind = "TargetOutOfRange"

	KindInvalidMeleeTarget Kind = "InvalidMeleeTarget"

	KindPendingResolution Kind = "PendingResolution"
	KindPendingRoutTest   Kind = "PendingRoutTest"
	KindCombatNotComplete Kind = "CombatNotComplete"

	KindUndoTargetNotFound     Kind = "UndoTargetNotFound"
	KindUndoCountExceedsHistory Kind = "UndoCountExceedsHistory"
)

// kindCode maps each stable Kind onto the closest rpgerr.Code, so callers
// that only understand the generic taxonomy (logging, metrics) still get a
// sensible classification.
var kindCode = map[Kind]rpgerr.Code{
	KindNoActiveGame:            rpgerr.CodeInvalidState,
	KindGameEnded:                rpgerr.CodeInvalidState,
	KindWrongPhase:               rpgerr.CodeTimingRestriction,
	KindWrongPlayer:               rpgerr.CodeNotAllowed,
	KindNotSelected:               rpgerr.CodePrerequisiteNotMet,
	KindWarriorNotFound:           rpgerr.CodeNotFound,
	KindCannotSelectOpponent:      rpgerr.CodeNotAllowed,
	KindInvalidRecoveryAction:     rpgerr.CodeInvalidState,
	KindInvalidMoveTarget:         rpgerr.CodeInvalidTarget,
	KindCannotRunEnemiesNear:      rpgerr.CodeNotAllowed,
	KindAlreadyActed:              rpgerr.CodeConflictingState,
	KindInvalidShootingTarget:     rpgerr.CodeInvalidTarget,
	KindNoRangedWeapon:            rpgerr.CodePrerequisiteNotMet,
	KindTargetOutOfRange:          rpgerr.CodeOutOfRange,
	KindInvalidMeleeTarget:        rpgerr.CodeInvalidTarget,
	KindPendingResolution:         rpgerr.CodeConflictingState,
	KindPendingRoutTest:           rpgerr.CodeConflictingState,
	KindCombatNotComplete:         rpgerr.CodeTimingRestriction,
	KindUndoTargetNotFound:        rpgerr.CodeNotFound,
	KindUndoCountExceedsHistory:   rpgerr.CodeInvalidArgument,
}

// Error is the engine's error shape: a stable Kind plus the rpgerr payload
// (message, metadata, wrapped cause) that richer callers can inspect.
type Error struct {
	Kind Kind
	Err  *rpgerr.Error
}

func (e *Error) Error() string {
	if e == nil || e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying rpgerr.Error to errors.As/errors.Is.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Meta returns the rpgerr metadata attached to this error, if any.
func (e *Error) Meta() map[string]any {
	if e == nil || e.Err == nil {
		return nil
	}
	return e.Err.Meta
}

// NewError builds a stable-kinded engine error with a human message.
func NewError(kind Kind, message string, opts ...rpgerr.Option) *Error {
	return &Error{
		Kind: kind,
		Err:  rpgerr.New(kindCode[kind], message, opts...),
	}
}

// NewErrorf builds a stable-kinded engine error with a formatted message.
func NewErrorf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Err:  rpgerr.Newf(kindCode[kind], format, args...),
	}
}
