package ir

import "sort"

// LiveInterval is one contiguous live region of a virtual register,
// expressed in terms of instruction local ids (spec.md §3's "ordered list
// of (from,to) instruction-id ranges"). A register with a liveness gap
// produces more than one LiveInterval.
type LiveInterval struct {
	VReg  VRegID
	Start int
	End   int
}

// BuildIntervals walks f's instructions in local-id order (after Reorder and
// a fresh RunLiveness) and derives, for every virtual register, the ordered
// list of live ranges consumed by the linear-scan allocator (spec.md
// §3/§4.11).
//
// Grounded on wazevo/backend/regalloc/api.go's livenessAnalysis, which plays
// the same role of reducing per-instruction liveness into per-register
// intervals ahead of scanning; this module carries non-SSA, possibly
// multi-valued liveness instead of the teacher's SSA-def-once liveness.
func BuildIntervals(f *Function) []LiveInterval {
	if !f.LivenessFresh() {
		fault("interval", -1, -1, "RunLiveness must be fresh before BuildIntervals")
	}

	var instrs []*Instruction
	for _, blk := range f.sortedBlocks {
		blk.ForEachInstr(func(inst *Instruction) { instrs = append(instrs, inst) })
	}

	virtualsIn := func(bs BitSet) map[VRegID]bool {
		out := make(map[VRegID]bool)
		bs.Range(func(key int) {
			if key&3 == 0 {
				out[VRegID(key>>2)] = true
			}
		})
		return out
	}

	// occupiesAt reports every virtual register that needs a register
	// during inst's execution: anything already live-in, plus inst's own
	// destination (a register occupies its slot starting at its def, even
	// if that def turns out to be its only reference).
	occupiesAt := func(inst *Instruction) map[VRegID]bool {
		out := virtualsIn(inst.LiveIn())
		if dest, ok := inst.Dest(); ok && dest.Kind == Virtual {
			out[dest.VirtualID] = true
		}
		return out
	}

	open := make(map[VRegID]int)
	var result []LiveInterval
	prev := map[VRegID]bool{}
	prevID := -1

	for _, inst := range instrs {
		cur := occupiesAt(inst)
		for vid := range cur {
			if !prev[vid] {
				open[vid] = inst.LocalID()
			}
		}
		for vid := range prev {
			if cur[vid] {
				continue
			}
			result = append(result, LiveInterval{VReg: vid, Start: open[vid], End: prevID})
			delete(open, vid)
		}
		prev, prevID = cur, inst.LocalID()
	}
	for vid, start := range open {
		result = append(result, LiveInterval{VReg: vid, Start: start, End: prevID})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Start != result[j].Start {
			return result[i].Start < result[j].Start
		}
		return result[i].VReg < result[j].VReg
	})
	return result
}
