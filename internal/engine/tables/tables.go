// Package tables holds the static, read-only Rules Tables (§3 component 3):
// the wound chart, injury table, weapon profiles, movement limits and rout
// threshold. The data is externalized and version-tagged so a host can swap
// in a different rule set without recompiling.
package tables

import (
	"embed"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultFS embed.FS

// WeaponProfile is one weapon's fixed properties (§6: "weapon table (key ->
// {S bonus, save mod, parry?, critical mods, concussion?, firstRoundOnly?})").
type WeaponProfile struct {
	Key                  string `toml:"key"`
	Kind                 string `toml:"kind"` // "melee" | "ranged"
	Range                int    `toml:"range"`
	StrengthBonus        int    `toml:"strength_bonus"`
	SaveMod              int    `toml:"save_mod"`
	Parry                bool   `toml:"parry"`
	Concussion           bool   `toml:"concussion"`
	FirstRoundOnly       bool   `toml:"first_round_only"`
	CriticalIgnoresArmor bool   `toml:"critical_ignores_armor"`
	CriticalInjuryBonus  int    `toml:"critical_injury_bonus"`
}

// IsMelee reports whether this weapon resolves through the combat phase.
func (w WeaponProfile) IsMelee() bool { return w.Kind == "melee" }

// IsRanged reports whether this weapon resolves through the shooting phase.
func (w WeaponProfile) IsRanged() bool { return w.Kind == "ranged" }

// MovementLimits are the abstract (coordinate-free) movement constants (§4.5).
type MovementLimits struct {
	RunEnemyProximity int `toml:"run_enemy_proximity"`
	ChargeMultiplier  int `toml:"charge_multiplier"`
}

// RoutThreshold is kept as a rational (numerator/denominator) rather than a
// float so the rout check (§4.8) can cross-multiply and avoid rounding
// ambiguity (SPEC_FULL §4, decision 2).
type RoutThreshold struct {
	Numerator   int `toml:"numerator"`
	Denominator int `toml:"denominator"`
}

// Crossed reports whether outOfAction/total >= threshold, compared as
// rationals: outOfAction*Denominator >= total*Numerator.
func (rt RoutThreshold) Crossed(outOfAction, total int) bool {
	if total <= 0 {
		return false
	}
	return outOfAction*rt.Denominator >= total*rt.Numerator
}

// RulesTables is the full externalized, version-tagged rule set.
type RulesTables struct {
	Version       string                   `toml:"version"`
	WoundChart    [][]int                  `toml:"wound_chart"`
	MovementLimits MovementLimits          `toml:"movement_limits"`
	RoutThreshold RoutThreshold            `toml:"rout_threshold"`
	Weapons       []WeaponProfile          `toml:"weapons"`

	weaponIndex map[string]WeaponProfile
}

// index builds the weapon-key lookup after decoding.
func (rt *RulesTables) index() {
	rt.weaponIndex = make(map[string]WeaponProfile, len(rt.Weapons))
	for _, w := range rt.Weapons {
		rt.weaponIndex[w.Key] = w
	}
}

// Weapon looks up a weapon profile by key. The second return value is false
// for an unknown key, in which case callers should treat it as a plain
// weapon with no special properties.
func (rt *RulesTables) Weapon(key string) (WeaponProfile, bool) {
	w, ok := rt.weaponIndex[key]
	return w, ok
}

// WoundRollNeeded returns the minimum D6 roll needed to wound a target of
// Toughness t with an attack of Strength s (§4.6 step 2, §3 wound chart),
// clamped to the table's bounds.
func (rt *RulesTables) WoundRollNeeded(s, t int) int {
	si := clampIndex(s, len(rt.WoundChart))
	row := rt.WoundChart[si]
	ti := clampIndex(t, len(row))
	return row[ti]
}

func clampIndex(v, length int) int {
	i := v - 1
	if i < 0 {
		i = 0
	}
	if i >= length {
		i = length - 1
	}
	return i
}

// InjuryResult is the outcome of the fixed 1-6 injury table (§3, §4.6 step 5).
type InjuryResult string

const (
	InjuryKnockedDown InjuryResult = "knockedDown"
	InjuryStunned     InjuryResult = "stunned"
	InjuryOutOfAction InjuryResult = "outOfAction"
)

// Injury maps a D6 roll to its fixed injury result: 1-2 knocked down, 3-4
// stunned, 5-6 out of action. This table is fixed per spec §3 and is not
// externalized.
func Injury(roll int) InjuryResult {
	switch {
	case roll <= 2:
		return InjuryKnockedDown
	case roll <= 4:
		return InjuryStunned
	default:
		return InjuryOutOfAction
	}
}

// LoadDefault decodes the engine's embedded default rules table set.
func LoadDefault() (*RulesTables, error) {
	f, err := defaultFS.Open("default.toml")
	if err != nil {
		return nil, fmt.Errorf("tables: open embedded default.toml: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a RulesTables document from r (typically a TOML file matching
// default.toml's shape, allowing a host to supply an alternate rule set).
func Load(r io.Reader) (*RulesTables, error) {
	var rt RulesTables
	if _, err := toml.NewDecoder(r).Decode(&rt); err != nil {
		return nil, fmt.Errorf("tables: decode rules tables: %w", err)
	}
	rt.index()
	return &rt, nil
}
