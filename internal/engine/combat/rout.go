package combat

import (
	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/tables"
)

// CheckRout evaluates the rout threshold for wb (§4.8): if the fraction of
// out-of-action non-hired warriors has crossed the threshold, it returns a
// PendingRoutTest naming the warband's highest-leadership survivor.
func CheckRout(wb *core.Warband, warbandIndex int, rt tables.RoutThreshold) (core.PendingRoutTest, bool) {
	total := wb.NonHiredCount()
	if total == 0 {
		return core.PendingRoutTest{}, false
	}
	outOfAction := wb.OutOfActionNonHiredCount()
	if !rt.Crossed(outOfAction, total) {
		return core.PendingRoutTest{}, false
	}
	leader := wb.HighestLeadershipSurvivor()
	if leader == nil {
		return core.PendingRoutTest{}, false
	}
	return core.PendingRoutTest{WarbandIndex: warbandIndex, LeaderID: leader.ID()}, true
}
