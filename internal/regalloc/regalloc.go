package regalloc

// active is one currently-live interval holding a machine register, kept
// around so Allocate can find the element with the furthest end when a
// spill decision is needed.
type active struct {
	idx int // index into the sorted interval slice
	reg RealReg
}

// Allocate runs the linear-scan algorithm of spec.md §4.11 over intervals:
//
//  1. Expire: drop every active interval whose end precedes the current
//     interval's start, freeing its register.
//  2. Spill, if the active set is already at capacity: "furthest-end wins"
//     — if the longest-lived active interval outlives the current one,
//     steal its register for the current interval and spill it instead;
//     otherwise spill the current interval.
//  3. Otherwise assign any free register and add the interval to active.
//
// Fixed registers reserved in cfg are removed from the free set before the
// scan starts, so the allocator never hands them out.
func Allocate(intervals []Interval, cfg Config) Result {
	sorted := sortedByStart(intervals)

	free := NewRegSet()
	for r := RealReg(0); int(r) < cfg.K; r++ {
		free = free.add(r)
	}
	for _, r := range cfg.Reserved {
		free = free.remove(r)
	}
	capacity := cfg.K - len(cfg.Reserved)

	decisions := make([]Decision, len(sorted))
	for i, iv := range sorted {
		decisions[i] = Decision{Interval: iv}
	}

	var activeList []active
	for i, iv := range sorted {
		activeList, free = expire(activeList, free, decisions, iv.Start)

		if len(activeList) >= capacity {
			activeList = spill(activeList, decisions, i, iv)
			continue
		}

		reg, ok := free.first()
		if !ok {
			// capacity tracks the free set's initial size, so this
			// only happens if cfg.K is inconsistent with Reserved.
			decisions[i].Spilled = true
			continue
		}
		free = free.remove(reg)
		decisions[i].Reg = reg
		activeList = append(activeList, active{idx: i, reg: reg})
	}

	return Result{Decisions: decisions}
}

// expire removes from active every element whose interval ends before
// start, returning the surviving elements and the free set with their
// registers returned to it.
func expire(activeList []active, free RegSet, decisions []Decision, start int) ([]active, RegSet) {
	var kept []active
	for _, a := range activeList {
		if decisions[a.idx].Interval.End < start {
			free = free.add(a.reg)
		} else {
			kept = append(kept, a)
		}
	}
	return kept, free
}

// spill applies spec.md §4.11's "furthest-end wins" heuristic: find the
// active element with the greatest end. If it outlives the current
// interval, its register is reassigned to the current interval and it is
// marked spilled instead; otherwise the current interval itself is
// spilled.
func spill(activeList []active, decisions []Decision, curIdx int, cur Interval) []active {
	if len(activeList) == 0 {
		decisions[curIdx].Spilled = true
		return activeList
	}
	worst := 0
	for i := 1; i < len(activeList); i++ {
		if decisions[activeList[i].idx].Interval.End > decisions[activeList[worst].idx].Interval.End {
			worst = i
		}
	}

	candidate := activeList[worst]
	if decisions[candidate.idx].Interval.End > cur.End {
		decisions[candidate.idx].Spilled = true
		decisions[curIdx].Reg = candidate.reg
		activeList[worst] = active{idx: curIdx, reg: candidate.reg}
	} else {
		decisions[curIdx].Spilled = true
	}
	return activeList
}
