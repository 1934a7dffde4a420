// Package backend drives the full pipeline from a built ir.Function to an
// allocation-complete IR ready for an assembly emitter (spec.md §6): it
// runs every optimization pass, builds live intervals, and invokes
// internal/regalloc.
//
// Grounded on wazevo/backend/compiler.go's Compiler.Compile, which is the
// single top-level entry point gluing the SSA pass pipeline to lowering
// and allocation; this package plays the same gluing role for
// internal/ir + internal/regalloc.
package backend

import (
	"github.com/coord-e/ccc-sub000/internal/ir"
	"github.com/coord-e/ccc-sub000/internal/regalloc"
)

// Result is the outcome of compiling one Function: the function itself,
// mutated in place with physical registers assigned, plus the stack slot
// chosen for every virtual register the allocator had to spill.
type Result struct {
	Function *ir.Function
	Spilled  map[ir.VRegID]int
}

// Compile runs ir.RunPasses over f, then builds live intervals from the
// final liveness payload and runs linear-scan allocation against cfg,
// writing the resulting physical registers back onto every operand.
//
// A Fault from any pass (ir.Fault) propagates to the caller unrecovered,
// per spec.md §7's "no recoverable errors" policy: compilation is
// all-or-nothing.
func Compile(f *ir.Function, cfg regalloc.Config) Result {
	ir.RunPasses(f)

	if !f.LivenessFresh() {
		ir.RunLiveness(f)
	}
	intervals := buildRegallocIntervals(f)

	result := regalloc.Allocate(intervals, cfg)
	regalloc.AssignSlots(result)

	spilled := make(map[ir.VRegID]int)
	assigned := make(map[ir.VRegID]ir.PRegID)
	for _, d := range result.Decisions {
		vid := ir.VRegID(d.Interval.VReg)
		if d.Spilled {
			spilled[vid] = d.Slot
		} else {
			assigned[vid] = ir.PRegID(d.Reg)
		}
	}

	applyAssignments(f, assigned)

	return Result{Function: f, Spilled: spilled}
}
