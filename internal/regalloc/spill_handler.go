package regalloc

// AssignSlots walks result's decisions in the order Allocate produced them
// (start ascending) and hands every spilled interval a stack slot,
// reusing a slot once every interval previously occupying it has ended so
// spilled intervals don't each claim a permanent slot of their own.
//
// Grounded on wazevo/backend/regalloc/spill_handler.go's separation of
// stack-slot bookkeeping from the scan itself; this module reapplies the
// scan's own expire logic to slots instead of registers since spec.md
// §4.11 does not itself specify slot reuse.
func AssignSlots(result Result) {
	type freeSlot struct {
		slot int
	}
	var free []freeSlot
	type occupied struct {
		slot int
		end  int
	}
	var inUse []occupied
	next := 0

	for i := range result.Decisions {
		d := &result.Decisions[i]
		if !d.Spilled {
			continue
		}

		var stillInUse []occupied
		for _, o := range inUse {
			if o.end < d.Interval.Start {
				free = append(free, freeSlot{slot: o.slot})
			} else {
				stillInUse = append(stillInUse, o)
			}
		}
		inUse = stillInUse

		var slot int
		if len(free) > 0 {
			slot = free[len(free)-1].slot
			free = free[:len(free)-1]
		} else {
			slot = next
			next++
		}
		d.Slot = slot
		inUse = append(inUse, occupied{slot: slot, end: d.Interval.End})
	}
}
