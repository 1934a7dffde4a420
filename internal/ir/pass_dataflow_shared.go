package ir

// collectVRegDefs scans every instruction in f once and records, for each
// virtual register, the set of instruction global ids that define it. The
// result is both the source of Function.Definitions (spec.md §4.4's
// "reg.definitions", consumed by propagation's get_imm) and the shared
// per-register def index reused by the reaching-definitions pass to build
// each block's reach_kill set, instead of re-deriving it per block.
//
// Grounded on original_source/src/data_flow.c, which computes liveness and
// reaching-definitions from one shared per-instruction def/use scan. Here
// only RunReachingDefs calls this helper; RunLiveness does its own per-block
// scan (see SPEC_FULL.md §12).
func collectVRegDefs(f *Function) map[VRegID][]int {
	defs := make(map[VRegID][]int)
	for _, blk := range f.sortedBlocks {
		blk.ForEachInstr(func(inst *Instruction) {
			dest, ok := inst.Dest()
			if !ok || dest.Kind != Virtual {
				return
			}
			defs[dest.VirtualID] = append(defs[dest.VirtualID], inst.globalID)
		})
	}
	return defs
}

// refreshDefinitions recomputes Function.regDefs from scratch, as a BitSet
// keyed by instruction global id per virtual register.
func refreshDefinitions(f *Function, defs map[VRegID][]int) {
	f.regDefs = make(map[VRegID]BitSet, len(defs))
	for vid, ids := range defs {
		var bs BitSet
		for _, id := range ids {
			bs.Set(id)
		}
		f.regDefs[vid] = bs
	}
}
