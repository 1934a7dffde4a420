package backend

import (
	"github.com/coord-e/ccc-sub000/internal/ir"
	"github.com/coord-e/ccc-sub000/internal/regalloc"
)

// buildRegallocIntervals adapts ir.BuildIntervals's output to
// internal/regalloc's narrow Interval type, the only shape that package
// needs to know about its caller's IR (spec.md §9's preference for narrow
// interfaces between the analysis and the allocator).
func buildRegallocIntervals(f *ir.Function) []regalloc.Interval {
	irIntervals := ir.BuildIntervals(f)
	out := make([]regalloc.Interval, len(irIntervals))
	for i, iv := range irIntervals {
		out[i] = regalloc.Interval{
			VReg:  regalloc.VReg(iv.VReg),
			Start: iv.Start,
			End:   iv.End,
		}
	}
	return out
}

// applyAssignments writes every chosen physical register back onto each
// occurrence (destination and source operands) of its virtual register
// across f, per spec.md §6's emitter contract: every surviving register is
// either physical or recorded as spilled.
func applyAssignments(f *ir.Function, assigned map[ir.VRegID]ir.PRegID) {
	rewrite := func(r ir.Register) ir.Register {
		if r.Kind != ir.Virtual {
			return r
		}
		if p, ok := assigned[r.VirtualID]; ok {
			r.Physical = p
		}
		return r
	}

	for _, blk := range f.SortedBlocks() {
		blk.ForEachInstr(func(inst *ir.Instruction) {
			if dest, ok := inst.Dest(); ok {
				inst.SetDest(rewrite(dest))
			}
			srcs := inst.Srcs()
			for i, s := range srcs {
				inst.ReplaceSrc(i, rewrite(s))
			}
		})
	}
}
