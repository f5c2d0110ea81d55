package rules

import (
	"testing"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/tables"
	"github.com/stretchr/testify/require"
)

func TestEngineAddAndEvaluate(t *testing.T) {
	e := NewEngine()

	e.AddRule(Rule{
		Name:    "Shield Wall",
		Trigger: BeforeSave,
		Source:  SourceGlobal,
		Condition: func(ctx *Context) bool {
			return ctx.Defender != nil && ctx.Defender.Warrior.Equipment.Shield
		},
		Apply: func(ctx *Context) {
			ctx.Modifiers.SaveMod += 1
		},
	})
	require.Equal(t, 1, e.RuleCount())

	shielded := core.NewGameWarrior(&core.Warrior{Equipment: core.Equipment{Shield: true}})
	ctx := &Context{Defender: shielded}
	e.Evaluate(BeforeSave, ctx)
	require.Equal(t, 1, ctx.Modifiers.SaveMod)

	unshielded := core.NewGameWarrior(&core.Warrior{})
	ctx2 := &Context{Defender: unshielded}
	e.Evaluate(BeforeSave, ctx2)
	require.Equal(t, 0, ctx2.Modifiers.SaveMod)
}

func TestEngineMultipleRulesStack(t *testing.T) {
	e := NewEngine()

	e.AddRule(Rule{
		Name:    "Aggressive Charge",
		Trigger: BeforeToHit,
		Source:  SourceGlobal,
		Apply:   func(ctx *Context) { ctx.Modifiers.HitMod += 1 },
	})
	e.AddRule(Rule{
		Name:    "Blinding Dust",
		Trigger: BeforeToHit,
		Source:  SourceGlobal,
		Apply:   func(ctx *Context) { ctx.Modifiers.HitMod -= 1 },
	})

	ctx := &Context{}
	e.Evaluate(BeforeToHit, ctx)
	require.Equal(t, 0, ctx.Modifiers.HitMod)
}

func TestEngineRemoveBySource(t *testing.T) {
	e := NewEngine()

	e.AddRule(Rule{
		Name:    "axe-save-penalty",
		Trigger: BeforeSave,
		Source:  SourceWeapon,
		Apply:   func(ctx *Context) { ctx.Modifiers.SaveMod -= 1 },
	})
	e.AddRule(Rule{
		Name:    "Tough Skin",
		Trigger: BeforeSave,
		Source:  SourceWarrior,
		Apply:   func(ctx *Context) { ctx.Modifiers.SaveMod += 1 },
	})
	require.Equal(t, 2, e.RuleCount())

	e.RemoveRulesBySource(SourceWeapon, "axe-save-penalty")
	require.Equal(t, 1, e.RuleCount())

	ctx := &Context{}
	e.Evaluate(BeforeSave, ctx)
	require.Equal(t, 1, ctx.Modifiers.SaveMod)
}

func TestEngineNoRulesForTrigger(t *testing.T) {
	e := NewEngine()
	require.False(t, e.HasRulesFor(BeforeToHit))

	ctx := &Context{}
	result := e.Evaluate(BeforeToHit, ctx)
	require.Equal(t, 0, result.Modifiers.HitMod)
}

func TestRegisterWeaponRules_AxeSavePenalty(t *testing.T) {
	e := NewEngine()
	RegisterWeaponRules(e)

	axe := tables.WeaponProfile{Key: "axe", Kind: "melee", SaveMod: -1}
	ctx := &Context{Weapon: &axe}
	e.Evaluate(BeforeSave, ctx)
	require.Equal(t, -1, ctx.Modifiers.SaveMod)
}

func TestRegisterWeaponRules_MaceConcussion(t *testing.T) {
	e := NewEngine()
	RegisterWeaponRules(e)

	mace := tables.WeaponProfile{Key: "mace", Kind: "melee", Concussion: true}
	ctx := &Context{Weapon: &mace}
	e.Evaluate(BeforeInjury, ctx)
	require.Equal(t, 3, ctx.Modifiers.InjuryMinimum)
}

func TestRegisterWeaponRules_FlailFirstRoundOnly(t *testing.T) {
	e := NewEngine()
	RegisterWeaponRules(e)

	flail := tables.WeaponProfile{Key: "flail", Kind: "melee", StrengthBonus: 2, FirstRoundOnly: true}
	attacker := core.NewGameWarrior(&core.Warrior{})

	ctx := &Context{Weapon: &flail, Attacker: attacker}
	e.Evaluate(BeforeToWound, ctx)
	require.Equal(t, -2, ctx.Modifiers.WoundMod)

	attacker.HasActed = true
	ctx2 := &Context{Weapon: &flail, Attacker: attacker}
	e.Evaluate(BeforeToWound, ctx2)
	require.Equal(t, 0, ctx2.Modifiers.WoundMod)
}

func TestRegisterWeaponRules_PistolCriticalIgnoresArmor(t *testing.T) {
	e := NewEngine()
	RegisterWeaponRules(e)

	pistol := tables.WeaponProfile{Key: "pistol", Kind: "ranged", CriticalIgnoresArmor: true}
	ctx := &Context{Weapon: &pistol}
	e.Evaluate(BeforeCritical, ctx)
	require.True(t, ctx.Modifiers.CriticalIgnoresArmor)
}
