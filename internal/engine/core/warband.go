package core

// Warband is one player's roster, carried through the match as an ordered
// list of per-match overlays. Treasury is opaque to the engine beyond
// carry-through (it is never read or written by any handler).
type Warband struct {
	ID       WarbandID
	Name     string
	TypeTag  string
	Warriors []*GameWarrior
	Treasury int
}

// Find returns the GameWarrior with the given id, or nil.
func (w *Warband) Find(id WarriorID) *GameWarrior {
	for _, gw := range w.Warriors {
		if gw.ID() == id {
			return gw
		}
	}
	return nil
}

// NonHiredCount returns the number of roster slots that count toward the
// rout-test denominator (§4.8): hired swords are mercenaries and are
// excluded from a warband's own rout fraction.
func (w *Warband) NonHiredCount() int {
	n := 0
	for _, gw := range w.Warriors {
		if gw.Warrior.Category != CategoryHiredSword {
			n++
		}
	}
	return n
}

// OutOfActionNonHiredCount returns how many non-hired-sword warriors are
// currently out of action.
func (w *Warband) OutOfActionNonHiredCount() int {
	n := 0
	for _, gw := range w.Warriors {
		if gw.Warrior.Category != CategoryHiredSword && gw.IsOutOfAction() {
			n++
		}
	}
	return n
}

// HighestLeadershipSurvivor returns the surviving (not out-of-action) warrior
// with the highest Leadership, used as the rout-test taker (§4.8). Ties
// break by warrior insertion order (first found wins), matching the
// teacher's stable-order tie-break convention.
func (w *Warband) HighestLeadershipSurvivor() *GameWarrior {
	var best *GameWarrior
	for _, gw := range w.Warriors {
		if gw.IsOutOfAction() {
			continue
		}
		if best == nil || gw.Warrior.Profile.Ld > best.Warrior.Profile.Ld {
			best = gw
		}
	}
	return best
}
