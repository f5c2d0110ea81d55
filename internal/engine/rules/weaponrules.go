package rules

// RegisterWeaponRules wires the fixed set of weapon-keyed behaviors into the
// engine. It should be called once per game, after the engine is created.
func RegisterWeaponRules(engine *Engine) {
	// Axe: -1 to the defender's armor save.
	engine.AddRule(Rule{
		Name:    "axe-save-penalty",
		Trigger: BeforeSave,
		Source:  SourceWeapon,
		Condition: func(ctx *Context) bool {
			return ctx.Weapon != nil && ctx.Weapon.Key == "axe"
		},
		Apply: func(ctx *Context) {
			ctx.Modifiers.SaveMod += ctx.Weapon.SaveMod
		},
	})

	// Halberd: -1 to the defender's armor save, same mechanism as the axe.
	engine.AddRule(Rule{
		Name:    "halberd-save-penalty",
		Trigger: BeforeSave,
		Source:  SourceWeapon,
		Condition: func(ctx *Context) bool {
			return ctx.Weapon != nil && ctx.Weapon.Key == "halberd"
		},
		Apply: func(ctx *Context) {
			ctx.Modifiers.SaveMod += ctx.Weapon.SaveMod
		},
	})

	// Crossbow: -1 to the defender's armor save at range.
	engine.AddRule(Rule{
		Name:    "crossbow-save-penalty",
		Trigger: BeforeSave,
		Source:  SourceWeapon,
		Condition: func(ctx *Context) bool {
			return ctx.Weapon != nil && ctx.Weapon.Key == "crossbow"
		},
		Apply: func(ctx *Context) {
			ctx.Modifiers.SaveMod += ctx.Weapon.SaveMod
		},
	})

	// Mace and hammer: concussion. The injury roll is floored at 3, so a
	// knocked-down result is upgraded to at least stunned.
	concussion := func(ctx *Context) {
		ctx.Modifiers.InjuryMinimum = 3
	}
	for _, key := range []string{"mace", "hammer"} {
		key := key
		engine.AddRule(Rule{
			Name:    key + "-concussion",
			Trigger: BeforeInjury,
			Source:  SourceWeapon,
			Condition: func(ctx *Context) bool {
				return ctx.Weapon != nil && ctx.Weapon.Key == key && ctx.Weapon.Concussion
			},
			Apply: concussion,
		})
	}

	// Pistol: critical hits ignore armor entirely.
	engine.AddRule(Rule{
		Name:    "pistol-critical-ignores-armor",
		Trigger: BeforeCritical,
		Source:  SourceWeapon,
		Condition: func(ctx *Context) bool {
			return ctx.Weapon != nil && ctx.Weapon.Key == "pistol" && ctx.Weapon.CriticalIgnoresArmor
		},
		Apply: func(ctx *Context) {
			ctx.Modifiers.CriticalIgnoresArmor = true
		},
	})

	// Flail: +2 Strength on the first round of combat only. A FirstRoundOnly
	// weapon's StrengthBonus is not added to Strength for the wound-chart
	// lookup, so the rule applies it as a wound-threshold reduction instead,
	// only while the attacker has not yet swung this combat phase.
	engine.AddRule(Rule{
		Name:    "flail-first-round-strength",
		Trigger: BeforeToWound,
		Source:  SourceWeapon,
		Condition: func(ctx *Context) bool {
			return ctx.Weapon != nil && ctx.Weapon.Key == "flail" && ctx.Weapon.FirstRoundOnly &&
				ctx.Attacker != nil && !ctx.Attacker.HasActed
		},
		Apply: func(ctx *Context) {
			ctx.Modifiers.WoundMod -= ctx.Weapon.StrengthBonus
		},
	})
}
