package rules

// Source identifies where a rule comes from.
type Source int

const (
	SourceWeapon  Source = iota // rule from a weapon profile (axe, flail, ...)
	SourceWarrior               // rule from a warrior's own traits
	SourceGlobal                // global rule applying to every warrior
)

// Rule defines a single game rule that hooks into the engine.
type Rule struct {
	// Name is a human-readable identifier for logging/debugging.
	Name string

	// Trigger is the hook point where this rule is evaluated.
	Trigger Trigger

	// Source identifies where this rule comes from.
	Source Source

	// Condition returns true if this rule should apply given the current
	// context. A nil Condition always applies.
	Condition func(ctx *Context) bool

	// Apply modifies the context (typically ctx.Modifiers or ctx.Blocked).
	Apply func(ctx *Context)
}
