// Package combat implements the combat resolution pipeline (§4.6, §4.7):
// strike-order construction, ranged and melee resolution, and the rout
// test that an out-of-action result may trigger (§4.8).
package combat

import (
	"sort"

	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
)

// BuildStrikeOrder computes the combat phase's strike order from the full
// set of in-combat warriors (§4.7): chargers first by descending
// Initiative, then non-chargers by descending Initiative, with
// strikesLast warriors forced to the tail regardless of the other rules.
// Ties are broken by the warriors' order in the input slice (stable sort).
func BuildStrikeOrder(warriors []*core.GameWarrior) []core.StrikeOrderEntry {
	group := func(w *core.GameWarrior) int {
		switch {
		case w.StrikesLast:
			return 2
		case w.HasCharged:
			return 0
		default:
			return 1
		}
	}

	ordered := make([]*core.GameWarrior, len(warriors))
	copy(ordered, warriors)

	sort.SliceStable(ordered, func(i, j int) bool {
		gi, gj := group(ordered[i]), group(ordered[j])
		if gi != gj {
			return gi < gj
		}
		return ordered[i].Warrior.Profile.I > ordered[j].Warrior.Profile.I
	})

	entries := make([]core.StrikeOrderEntry, 0, len(ordered))
	for _, w := range ordered {
		attacks := w.Warrior.Profile.A
		if w.HasCharged {
			attacks++
		}
		if attacks < 1 {
			attacks = 1
		}
		entries = append(entries, core.StrikeOrderEntry{
			WarriorID:        w.ID(),
			Charged:          w.HasCharged,
			StrikesLast:      w.StrikesLast,
			Initiative:       w.Warrior.Profile.I,
			AttacksRemaining: attacks,
			AttacksTotal:     attacks,
		})
	}
	return entries
}

// InCombatWarriors returns every warrior from both warbands currently
// inCombat and not outOfAction, in warband-then-roster order — the input
// BuildStrikeOrder expects.
func InCombatWarriors(gs *core.GameState) []*core.GameWarrior {
	var result []*core.GameWarrior
	for _, wb := range gs.Warbands {
		for _, gw := range wb.Warriors {
			if gw.CombatState.InCombat && !gw.IsOutOfAction() {
				result = append(result, gw)
			}
		}
	}
	return result
}

// NextFighterIndex returns the index of the next strike order entry that is
// neither completed nor outOfAction, starting the search at from. Returns
// -1 if none remain.
func NextFighterIndex(order []core.StrikeOrderEntry, all map[core.WarriorID]*core.GameWarrior, from int) int {
	for i := from; i < len(order); i++ {
		e := order[i]
		if e.Completed {
			continue
		}
		if gw, ok := all[e.WarriorID]; ok && gw.IsOutOfAction() {
			continue
		}
		return i
	}
	return -1
}

// AllFightersComplete reports whether every strike order entry is either
// completed or belongs to a warrior who is outOfAction.
func AllFightersComplete(order []core.StrikeOrderEntry, all map[core.WarriorID]*core.GameWarrior) bool {
	return NextFighterIndex(order, all, 0) == -1
}
