package combat

import (
	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/rules"
	"github.com/jruiznavarro/skirmishengine/internal/engine/tables"
	"github.com/jruiznavarro/skirmishengine/pkg/dice"
)

func clampThreshold(v int) int {
	if v < 2 {
		return 2
	}
	if v > 6 {
		return 6
	}
	return v
}

// ShotParams describes one CONFIRM_SHOT resolution (§4.6).
type ShotParams struct {
	Attacker    *core.GameWarrior
	Defender    *core.GameWarrior
	Weapon      tables.WeaponProfile
	ModifierSum int // sum of toggled shooting modifiers (cover -1, longRange -1, moved -1, largeTarget +1)
}

// ResolveShot runs the ranged resolution pipeline: to-hit, to-wound,
// critical, armor save, injury (§4.6).
func ResolveShot(p ShotParams, rt *tables.RulesTables, re *rules.Engine, src dice.Source) *core.CombatResolution {
	res := &core.CombatResolution{
		AttackerID: p.Attacker.ID(),
		DefenderID: p.Defender.ID(),
		WeaponKey:  p.Weapon.Key,
		IsShooting: true,
	}

	ctx := &rules.Context{Attacker: p.Attacker, Defender: p.Defender, Weapon: &p.Weapon}
	re.Evaluate(rules.BeforeToHit, ctx)

	threshold := clampThreshold(7 - p.Attacker.Warrior.Profile.BS + p.ModifierSum + ctx.Modifiers.HitMod)
	res.HitThreshold = threshold

	if p.Defender.GameStatus == core.StatusKnockedDown {
		res.AutoHit = true
		res.Hit = true
	} else {
		roll, hit := src.RollWithThreshold(threshold)
		res.HitRoll = roll
		res.Hit = hit
	}

	if !res.Hit {
		res.Outcome = core.OutcomeMiss
		return res
	}

	resolveWoundOnward(res, p.Attacker, p.Defender, &p.Weapon, rt, re, src)
	return res
}

// MeleeParams describes one CONFIRM_MELEE resolution (§4.7).
type MeleeParams struct {
	Attacker *core.GameWarrior
	Defender *core.GameWarrior
	Weapon   tables.WeaponProfile
}

// ResolveMelee runs the melee resolution pipeline: to-hit, parry, to-wound,
// critical, armor save, injury (§4.7).
func ResolveMelee(p MeleeParams, rt *tables.RulesTables, re *rules.Engine, src dice.Source) *core.CombatResolution {
	res := &core.CombatResolution{
		AttackerID: p.Attacker.ID(),
		DefenderID: p.Defender.ID(),
		WeaponKey:  p.Weapon.Key,
		IsShooting: false,
	}

	ctx := &rules.Context{Attacker: p.Attacker, Defender: p.Defender, Weapon: &p.Weapon}
	re.Evaluate(rules.BeforeToHit, ctx)

	threshold := clampThreshold(7 - p.Attacker.Warrior.Profile.WS + weaponSkillCorrection(p.Attacker, p.Defender) + ctx.Modifiers.HitMod)
	res.HitThreshold = threshold

	autoHitStatus := p.Defender.GameStatus == core.StatusKnockedDown || p.Defender.GameStatus == core.StatusStunned
	if autoHitStatus {
		res.AutoHit = true
		res.Hit = true
	} else {
		roll, hit := src.RollWithThreshold(threshold)
		res.HitRoll = roll
		res.Hit = hit
	}

	if !res.Hit {
		res.Outcome = core.OutcomeMiss
		return res
	}

	if canParry(p.Defender, res.HitRoll, autoHitStatus) {
		parryRoll := src.RollD6()
		res.ParryRoll = parryRoll
		if parryRoll > res.HitRoll {
			res.Parried = true
			res.Outcome = core.OutcomeMiss
			return res
		}
	}

	resolveWoundOnward(res, p.Attacker, p.Defender, &p.Weapon, rt, re, src)
	return res
}

// weaponSkillCorrection applies the standard skirmish WS-vs-WS adjustment:
// a defender with higher WS than the attacker makes the attacker's hit one
// harder, and an attacker with at least double the defender's (nonzero) WS
// makes it one easier.
func weaponSkillCorrection(attacker, defender *core.GameWarrior) int {
	aws, dws := attacker.Warrior.Profile.WS, defender.Warrior.Profile.WS
	switch {
	case dws > aws:
		return 1
	case aws >= 2*dws && dws > 0:
		return -1
	default:
		return 0
	}
}

func canParry(defender *core.GameWarrior, attackerHitRoll int, autoHit bool) bool {
	if autoHit {
		return false
	}
	if attackerHitRoll == 6 {
		return false
	}
	if defender.GameStatus == core.StatusKnockedDown || defender.GameStatus == core.StatusStunned {
		return false
	}
	for _, key := range defender.Warrior.Equipment.MeleeWeapons {
		if key == "sword" || key == "spear" {
			return true
		}
	}
	return false
}

// resolveWoundOnward runs the shared to-wound -> critical -> save -> injury
// tail shared by both shooting and melee (§4.6 steps 2-5).
func resolveWoundOnward(res *core.CombatResolution, attacker, defender *core.GameWarrior, weapon *tables.WeaponProfile, rt *tables.RulesTables, re *rules.Engine, src dice.Source) {
	woundCtx := &rules.Context{Attacker: attacker, Defender: defender, Weapon: weapon}
	re.Evaluate(rules.BeforeToWound, woundCtx)

	strength := attacker.Warrior.Profile.S
	if !weapon.FirstRoundOnly {
		strength += weapon.StrengthBonus
	}
	woundThreshold := rt.WoundRollNeeded(strength, defender.Warrior.Profile.T) + woundCtx.Modifiers.WoundMod
	woundThreshold = clampThreshold(woundThreshold)
	res.WoundThreshold = woundThreshold

	woundRoll := src.RollD6()
	res.WoundRoll = woundRoll
	res.Wounded = woundRoll >= woundThreshold && woundRoll != 1

	if !res.Wounded {
		res.Outcome = core.OutcomeNoWound
		return
	}

	critCtx := &rules.Context{Attacker: attacker, Defender: defender, Weapon: weapon}
	if woundRoll == 6 && woundThreshold < 6 {
		res.Critical = true
		re.Evaluate(rules.BeforeCritical, critCtx)
		if critCtx.Modifiers.CriticalIgnoresArmor {
			res.CriticalKind = "ignoresArmor"
		} else {
			res.CriticalKind = "injuryBonus"
			critCtx.Modifiers.CriticalInjuryBonus += weapon.CriticalInjuryBonus + 2
		}
	}

	if res.Critical && res.CriticalKind == "ignoresArmor" {
		res.SaveThreshold = 7 // no save possible
	} else {
		saveCtx := &rules.Context{Attacker: attacker, Defender: defender, Weapon: weapon}
		re.Evaluate(rules.BeforeSave, saveCtx)

		baseSave := 7
		if defender.Warrior.Equipment.Armor {
			baseSave = 5
		}
		if defender.Warrior.Equipment.Shield {
			baseSave--
		}
		saveThreshold := baseSave - saveCtx.Modifiers.SaveMod
		res.SaveThreshold = saveThreshold

		if saveThreshold <= 6 {
			saveRoll := src.RollD6()
			res.SaveRoll = saveRoll
			res.Saved = saveRoll >= saveThreshold
		}
	}

	if res.Saved {
		res.Outcome = core.OutcomeSaved
		return
	}

	resolveInjury(res, attacker, defender, weapon, re, src, critCtx.Modifiers.CriticalInjuryBonus)
}

func resolveInjury(res *core.CombatResolution, attacker, defender *core.GameWarrior, weapon *tables.WeaponProfile, re *rules.Engine, src dice.Source, criticalBonus int) {
	consumedFinalBuffer := false
	if defender.Warrior.Category == core.CategoryHero && defender.WoundsRemaining > 0 {
		defender.WoundsRemaining--
		res.UsedWoundsBuffer = true
		if defender.WoundsRemaining > 0 {
			res.Outcome = core.OutcomeNoWound
			return
		}
		consumedFinalBuffer = true
	}

	injuryCtx := &rules.Context{Attacker: attacker, Defender: defender, Weapon: weapon}
	re.Evaluate(rules.BeforeInjury, injuryCtx)

	roll := src.RollD6()
	res.InjuryRoll = roll
	res.InjuryRolled = true

	adjusted := roll + criticalBonus
	if adjusted > 6 {
		adjusted = 6
	}
	if injuryCtx.Modifiers.InjuryMinimum > adjusted {
		adjusted = injuryCtx.Modifiers.InjuryMinimum
	}

	switch tables.Injury(adjusted) {
	case tables.InjuryKnockedDown:
		// A hero surviving on the last point of its wounds buffer is still on
		// its feet, not out of action; woundsRemaining==0 must imply
		// outOfAction, so restore the buffer's last point here.
		if consumedFinalBuffer {
			defender.WoundsRemaining = 1
		}
		defender.GameStatus = core.StatusKnockedDown
		res.Outcome = core.OutcomeKnockedDown
	case tables.InjuryStunned:
		if consumedFinalBuffer {
			defender.WoundsRemaining = 1
		}
		defender.GameStatus = core.StatusStunned
		res.Outcome = core.OutcomeStunned
	default:
		defender.ApplyDamage(defender.WoundsRemaining + 1)
		res.Outcome = core.OutcomeOutOfAction
	}
}
