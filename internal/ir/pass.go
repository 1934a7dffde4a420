package ir

import "fmt"

// Fault is the panic value raised when a pass detects an invariant
// violation or is asked to read stale analysis payload (spec.md §7: "no
// recoverable errors... a malformed IR is a bug, not a user-facing
// condition"). It carries the pass name and, when known, the offending
// block or instruction id, which Error formats into a source-locatable
// diagnostic. Nothing in this module recovers a Fault; it reaches the
// caller of the pass as a panic.
//
// Grounded on wazevo/ssa/pass_cfg.go's panic(fmt.Sprintf("BUG: ...")) idiom
// for invariant violations inside the optimizer.
type Fault struct {
	Pass    string
	BlockID int // -1 if not applicable
	InstID  int // -1 if not applicable
	Msg     string
}

func (f *Fault) Error() string {
	loc := ""
	if f.BlockID >= 0 {
		loc += fmt.Sprintf(" blk%d", f.BlockID)
	}
	if f.InstID >= 0 {
		loc += fmt.Sprintf(" inst%d", f.InstID)
	}
	return fmt.Sprintf("ir: [%s]%s: %s", f.Pass, loc, f.Msg)
}

func fault(pass string, blockID, instID int, format string, args ...any) {
	panic(&Fault{Pass: pass, BlockID: blockID, InstID: instID, Msg: fmt.Sprintf(format, args...)})
}

// RunPasses runs the full middle-end pipeline over f in the order specified
// by spec.md §2, re-running liveness and reaching-definitions after every
// pass that mutates the CFG, per spec.md §5's concurrency contract ("a
// driver must re-run liveness/reaching-defs before any subsequent pass that
// reads them"). Register allocation is not included here: it lives in
// internal/regalloc, driven by internal/backend once arch shaping has run.
//
// A Fault panic from any pass propagates to the caller: no pass consumes a
// half-transformed IR from a failed predecessor (spec.md §7).
//
// Grounded on wazevo/ssa/pass.go's Builder.RunPasses, whose doc comment
// states the same ordering contract ("The order here matters; some pass
// depends on the previous ones").
func RunPasses(f *Function) {
	f.Reorder()
	RunLiveness(f)
	RunReachingDefs(f)

	Mem2Reg(f)
	f.Reorder()
	RunLiveness(f)
	RunReachingDefs(f)

	Propagate(f)
	f.Reorder()
	RunLiveness(f)
	RunReachingDefs(f)

	Peephole(f)
	RunLiveness(f)

	DCE(f)
	f.Reorder()

	MergeBlocks(f)
	f.Reorder()

	ArchShape(f)
	f.Reorder()
}
