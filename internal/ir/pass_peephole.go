package ir

import "github.com/coord-e/ccc-sub000/internal/ops"

// Peephole applies purely local BIN_IMM rewrites exposed once propagation
// has folded operands to immediate form: `ADD rd <- r, 0` and
// `MUL rd <- r, 1` both degrade to a plain MOV (spec.md §4.7).
//
// Grounded on original_source/src/peephole.c.
func Peephole(f *Function) {
	for _, blk := range f.sortedBlocks {
		blk.ForEachInstr(func(inst *Instruction) {
			if inst.Opcode() != BinImm {
				return
			}
			isIdentity := (inst.arith == ops.Add && inst.imm == 0) ||
				(inst.arith == ops.Mul && inst.imm == 1)
			if !isIdentity {
				return
			}
			dest, _ := inst.Dest()
			inst.rewriteAsMov(dest, inst.srcs[0])
		})
	}
	f.bumpVersion()
}
