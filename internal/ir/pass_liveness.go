package ir

// RunLiveness computes per-block gen/kill sets, iterates the backward
// fixed point to a stable live_in/live_out per block, and then derives
// per-instruction live_in/live_out (spec.md §4.3).
//
// Grounded on original_source/src/data_flow.c/src/liveness.c for the
// gen/kill shape, and on wazevo/ssa's general pattern of a dedicated
// pass_<name>.go per analysis.
func RunLiveness(f *Function) {
	if f.sortedBlocks == nil {
		fault("liveness", -1, -1, "Reorder must run before RunLiveness")
	}

	for _, blk := range f.sortedBlocks {
		computeLocalLiveSets(blk)
	}

	// Backward fixed point over live_in/live_out. The first two
	// iterations run unconditionally regardless of whether anything
	// changed, matching spec.md §4.3's "first two iterations forced, to
	// match the semantics of 'unconditional first loops'"; afterwards we
	// iterate until live_in stops changing anywhere.
	for iter := 0; ; iter++ {
		changed := false
		for _, blk := range f.sortedBlocks {
			var out BitSet
			for _, s := range blk.succs {
				out.Union(s.liveIn)
			}
			blk.liveOut = out

			in := out.Clone()
			in.Subtract(blk.liveKill)
			in.Union(blk.liveGen)
			if !in.Equal(blk.liveIn) {
				changed = true
			}
			blk.liveIn = in
		}
		if iter >= 1 && !changed {
			break
		}
	}

	for _, blk := range f.sortedBlocks {
		computeInstructionLiveSets(blk)
	}

	f.markLivenessFresh()
}

func computeLocalLiveSets(blk *BasicBlock) {
	var gen, kill BitSet
	blk.ForEachInstr(func(inst *Instruction) {
		for _, src := range inst.srcs {
			key := livenessKey(src)
			if !kill.Has(key) {
				gen.Set(key)
			}
		}
		if dest, ok := inst.Dest(); ok {
			kill.Set(livenessKey(dest))
		}
	})
	blk.liveGen, blk.liveKill = gen, kill
}

// computeInstructionLiveSets walks blk backward from its live_out,
// subtracting the destination and adding source operands before each
// instruction (spec.md §4.3).
func computeInstructionLiveSets(blk *BasicBlock) {
	running := blk.liveOut.Clone()
	blk.ForEachInstrReverse(func(inst *Instruction) {
		inst.liveOut = running.Clone()
		if dest, ok := inst.Dest(); ok {
			running.Clear(livenessKey(dest))
		}
		for _, src := range inst.srcs {
			running.Set(livenessKey(src))
		}
		inst.liveIn = running.Clone()
	})
}
