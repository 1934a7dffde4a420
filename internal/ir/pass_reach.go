package ir

// RunReachingDefs computes per-block gen/kill sets over instruction global
// ids, a forward fixed point producing per-block reach_in/reach_out, and
// then per-instruction reach_in/reach_out; it also refreshes
// Function.Definitions (spec.md §4.4).
//
// Grounded on original_source/src/data_flow.c for the gen/kill shape.
func RunReachingDefs(f *Function) {
	if f.sortedBlocks == nil {
		fault("reach", -1, -1, "Reorder must run before RunReachingDefs")
	}

	defsByReg := collectVRegDefs(f)
	refreshDefinitions(f, defsByReg)

	for _, blk := range f.sortedBlocks {
		computeLocalReachSets(blk, defsByReg)
	}

	f.entry.reachIn = BitSet{}

	for {
		changed := false
		for _, blk := range f.sortedBlocks {
			var in BitSet
			if blk == f.entry {
				in = BitSet{}
			} else {
				for _, p := range blk.preds {
					in.Union(p.reachOut)
				}
			}
			blk.reachIn = in

			out := in.Clone()
			out.Subtract(blk.reachKill)
			out.Union(blk.reachGen)
			if !out.Equal(blk.reachOut) {
				changed = true
			}
			blk.reachOut = out
		}
		if !changed {
			break
		}
	}

	for _, blk := range f.sortedBlocks {
		computeInstructionReachSets(blk, defsByReg)
	}

	f.markReachFresh()
}

// computeLocalReachSets builds reach_gen (the surviving, last definition of
// each register defined in blk) and reach_kill (every other definition of
// those registers, anywhere in the function) per spec.md §4.4.
func computeLocalReachSets(blk *BasicBlock, defsByReg map[VRegID][]int) {
	lastDefInBlock := make(map[VRegID]int)
	blk.ForEachInstr(func(inst *Instruction) {
		dest, ok := inst.Dest()
		if !ok || dest.Kind != Virtual {
			return
		}
		lastDefInBlock[dest.VirtualID] = inst.globalID
	})

	var gen, kill BitSet
	for vid, genID := range lastDefInBlock {
		gen.Set(genID)
		for _, id := range defsByReg[vid] {
			if id != genID {
				kill.Set(id)
			}
		}
	}
	blk.reachGen, blk.reachKill = gen, kill
}

// computeInstructionReachSets walks blk forward from its reach_in, killing
// all other definitions of a register when a new one is seen and adding the
// new one, mirroring reach_out's block-level transfer function at
// instruction granularity.
func computeInstructionReachSets(blk *BasicBlock, defsByReg map[VRegID][]int) {
	running := blk.reachIn.Clone()
	blk.ForEachInstr(func(inst *Instruction) {
		inst.reachIn = running.Clone()
		if dest, ok := inst.Dest(); ok && dest.Kind == Virtual {
			for _, id := range defsByReg[dest.VirtualID] {
				running.Clear(id)
			}
			running.Set(inst.globalID)
		}
		inst.reachOut = running.Clone()
	})
}
