package ir

// DCE removes every instruction whose destination register is not in its
// live_out, preserving a CALL's side effects by dropping only its
// destination rather than the whole instruction (spec.md §4.8).
//
// Requires up-to-date liveness; run RunLiveness immediately before this and
// do not rely on any register this pass deletes thereafter.
//
// Grounded on original_source/src/dead_code_elim.c and on
// wazevo/ssa/pass.go's passDeadCodeEliminationOpt for the general
// walk-backward-drop-if-dead shape, adapted from SSA def-once registers to
// this IR's possibly-redefined ones (liveness, not def-count, decides
// deadness).
func DCE(f *Function) {
	if !f.LivenessFresh() {
		fault("dce", -1, -1, "RunLiveness must run before DCE")
	}

	var toRemove []*Instruction
	for _, blk := range f.sortedBlocks {
		blk.ForEachInstr(func(inst *Instruction) {
			dest, ok := inst.Dest()
			if !ok || inst.LiveOut().Has(livenessKey(dest)) {
				return
			}
			if inst.Opcode() == Call {
				inst.ClearDest()
				return
			}
			toRemove = append(toRemove, inst)
		})
	}

	for _, inst := range toRemove {
		f.Remove(inst)
	}
}
