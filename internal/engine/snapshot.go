package engine

import "github.com/jruiznavarro/skirmishengine/internal/engine/core"

// cloneGameState deep-copies everything GameState holds by pointer or map,
// so the log's Initial snapshot (and any earlier undo/replay snapshot)
// never aliases the live mutable state. The static *core.Warrior each
// GameWarrior points at is immutable for the match and is shared, not
// copied.
func cloneGameState(gs *core.GameState) core.GameState {
	clone := core.GameState{
		Turn:                gs.Turn,
		CurrentPlayer:        gs.CurrentPlayer,
		Phase:                gs.Phase,
		Ended:                gs.Ended,
		Winner:               gs.Winner,
		CurrentFighterIndex:  gs.CurrentFighterIndex,
	}

	for i, wb := range gs.Warbands {
		if wb == nil {
			continue
		}
		clone.Warbands[i] = cloneWarband(wb)
	}

	if gs.PendingResolution != nil {
		res := *gs.PendingResolution
		clone.PendingResolution = &res
	}
	clone.PendingRoutTests = append([]core.PendingRoutTest(nil), gs.PendingRoutTests...)
	clone.StrikeOrder = append([]core.StrikeOrderEntry(nil), gs.StrikeOrder...)

	return clone
}

func cloneWarband(wb *core.Warband) *core.Warband {
	clone := &core.Warband{
		ID:       wb.ID,
		Name:     wb.Name,
		TypeTag:  wb.TypeTag,
		Treasury: wb.Treasury,
		Warriors: make([]*core.GameWarrior, len(wb.Warriors)),
	}
	for i, gw := range wb.Warriors {
		clone.Warriors[i] = cloneGameWarrior(gw)
	}
	return clone
}

func cloneGameWarrior(gw *core.GameWarrior) *core.GameWarrior {
	clone := *gw
	clone.CombatState = core.CombatState{
		InCombat:    gw.CombatState.InCombat,
		EngagedWith: cloneWarriorSet(gw.CombatState.EngagedWith),
	}
	clone.ShootingModifiers = cloneBoolMap(gw.ShootingModifiers)
	return &clone
}

func cloneWarriorSet(m map[core.WarriorID]bool) map[core.WarriorID]bool {
	clone := make(map[core.WarriorID]bool, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	clone := make(map[string]bool, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}
