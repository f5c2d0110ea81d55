package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/jruiznavarro/skirmishengine/internal/engine/tables"
	"github.com/jruiznavarro/skirmishengine/pkg/dice"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the default *logrus.Logger used for diagnostic
// logging (game lifecycle, rejected events, invariant violations).
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRandomSource overrides the Randomness Source. Tests use this to
// inject a dice.Scripted sequence; production leaves it unset and
// CreateGame seeds a *dice.Roller.
func WithRandomSource(src dice.Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithTables overrides the embedded default Rules Tables, letting a host
// supply an alternate rule set (e.g. a different scenario's variant table).
func WithTables(rt *tables.RulesTables) Option {
	return func(e *Engine) { e.tables = rt }
}
