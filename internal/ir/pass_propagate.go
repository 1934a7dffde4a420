package ir

import "github.com/coord-e/ccc-sub000/internal/ops"

// Propagate runs constant and copy propagation plus branch folding over f to
// a fixed point. Each round scans instructions in reverse order, so that a
// later use of a register is observed before its (earlier, in program
// order) definition is revisited within that round; a chain of dependent
// foldable instructions (e.g. `2*3` feeding `1+_`) needs more than one round
// to fully collapse. Every round reads the same Function.Definitions and
// reach sets computed before the pass; they are not recomputed between
// rounds (see DESIGN.md's open-question decision 1).
//
// Grounded on original_source/src/propagation.c for the per-instruction
// reverse scan and get_imm, and original_source/src/const_fold_tree.c for
// the arithmetic folding (reusing internal/ops's Eval helpers instead of
// duplicating the switch).
func Propagate(f *Function) {
	for {
		changed := false
		for i := len(f.sortedBlocks) - 1; i >= 0; i-- {
			blk := f.sortedBlocks[i]
			var instrs []*Instruction
			blk.ForEachInstr(func(inst *Instruction) { instrs = append(instrs, inst) })
			for j := len(instrs) - 1; j >= 0; j-- {
				if propagateOne(f, instrs[j]) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	f.bumpVersion()
}

// singleDef returns the unique instruction defining r's virtual register, if
// r has exactly one reaching definition and is not sticky.
func singleDef(f *Function, r Register) (*Instruction, bool) {
	if r.Kind != Virtual || r.Sticky {
		return nil, false
	}
	defs := f.Definitions(r.VirtualID)
	if defs.Count() != 1 {
		return nil, false
	}
	var id int
	defs.Range(func(i int) { id = i })
	def := f.InstructionByGlobalID(id)
	if def == nil {
		return nil, false
	}
	return def, true
}

// getImm succeeds iff r's sole reaching definition is an IMM, per spec.md
// §4.6's get_imm.
func getImm(f *Function, r Register) (int64, bool) {
	def, ok := singleDef(f, r)
	if !ok || def.Opcode() != Imm {
		return 0, false
	}
	return def.Imm(), true
}

func propagateOne(f *Function, inst *Instruction) bool {
	changed := copyPropagateOperands(f, inst)

	switch inst.Opcode() {
	case Mov:
		if imm, ok := getImm(f, inst.srcs[0]); ok {
			dest, _ := inst.Dest()
			inst.rewriteAsImm(dest, imm)
			changed = true
		}
	case Bin:
		changed = foldBin(f, inst) || changed
	case BinImm:
		if limm, ok := getImm(f, inst.srcs[0]); ok {
			dest, _ := inst.Dest()
			inst.rewriteAsImm(dest, inst.arith.Eval(limm, inst.imm))
			changed = true
		}
	case Cmp:
		changed = foldCmp(f, inst) || changed
	case Br:
		changed = fuseBr(f, inst) || changed
	case BrCmp:
		changed = foldBrCmp(f, inst) || changed
	case BrCmpImm:
		changed = foldBrCmpImm(f, inst) || changed
	case Trunc:
		changed = simplifyTrunc(f, inst) || changed
	}
	return changed
}

// foldBin implements BIN's constant/partial folding (spec.md §4.6).
func foldBin(f *Function, inst *Instruction) bool {
	lhs, rhs := inst.srcs[0], inst.srcs[1]
	limm, lok := getImm(f, lhs)
	rimm, rok := getImm(f, rhs)
	dest, _ := inst.Dest()
	switch {
	case lok && rok:
		inst.rewriteAsImm(dest, inst.arith.Eval(limm, rimm))
		return true
	case rok:
		inst.rewriteAsBinImm(dest, inst.arith, lhs, rimm)
		return true
	}
	return false
}

// foldCmp implements CMP's constant/partial folding, mirroring foldBin.
func foldCmp(f *Function, inst *Instruction) bool {
	lhs, rhs := inst.srcs[0], inst.srcs[1]
	limm, lok := getImm(f, lhs)
	rimm, rok := getImm(f, rhs)
	dest, _ := inst.Dest()
	switch {
	case lok && rok:
		inst.rewriteAsImm(dest, inst.cmp.Eval(limm, rimm))
		return true
	case rok:
		inst.rewriteAsCmpImm(dest, inst.cmp, lhs, rimm)
		return true
	}
	return false
}

// foldBrCmp implements BR_CMP's constant folding and partial fold to
// BR_CMP_IMM (spec.md §4.6).
func foldBrCmp(f *Function, inst *Instruction) bool {
	lhs, rhs := inst.srcs[0], inst.srcs[1]
	limm, lok := getImm(f, lhs)
	rimm, rok := getImm(f, rhs)
	if lok && rok {
		foldBranch(f, inst, inst.cmp.Eval(limm, rimm) != 0)
		return true
	}
	if rok {
		then, els := inst.ThenElse()
		inst.rewriteAsBrCmpImm(inst.cmp, lhs, rimm, then, els)
		return true
	}
	return false
}

// foldBrCmpImm implements BR_CMP_IMM's constant folding once its remaining
// operand becomes known.
func foldBrCmpImm(f *Function, inst *Instruction) bool {
	limm, lok := getImm(f, inst.srcs[0])
	if !lok {
		return false
	}
	foldBranch(f, inst, inst.cmp.Eval(limm, inst.imm) != 0)
	return true
}

// foldBranch disconnects the untaken successor and converts inst to a JUMP
// to the taken one, per spec.md §4.6's "fold the branch".
func foldBranch(f *Function, inst *Instruction, takeThen bool) {
	then, els := inst.ThenElse()
	parent := inst.Block()
	selected, untaken := then, els
	if !takeThen {
		selected, untaken = els, then
	}
	f.Disconnect(parent, untaken)
	inst.rewriteAsJump(selected)
}

// simplifyTrunc replaces `TRUNC rd <- r` with `MOV rd <- source-of-zext` when
// r's sole definition is a ZEXT whose source is not fixed (spec.md §4.6).
func simplifyTrunc(f *Function, inst *Instruction) bool {
	def, ok := singleDef(f, inst.srcs[0])
	if !ok || def.Opcode() != Zext {
		return false
	}
	src := def.srcs[0]
	if src.Kind == Fixed {
		return false
	}
	dest, _ := inst.Dest()
	inst.rewriteAsMov(dest, src)
	return true
}

// fuseBr implements BR's fusion with a ZEXT/CMP/CMP_IMM that solely defines
// its condition register (spec.md §4.6).
func fuseBr(f *Function, inst *Instruction) bool {
	def, ok := singleDef(f, inst.srcs[0])
	if !ok {
		return false
	}
	then, els := inst.ThenElse()
	switch def.Opcode() {
	case Zext:
		inst.srcs[0] = def.srcs[0]
		return true
	case Cmp:
		inst.rewriteAsBrCmp(def.cmp, def.srcs[0], def.srcs[1], then, els)
		return true
	case CmpImm:
		swap := def.imm == 0 && def.cmp == ops.EQ
		if swap {
			then, els = els, then
		}
		inst.rewriteAsBrCmpImm(def.cmp, def.srcs[0], def.imm, then, els)
		return true
	}
	return false
}

// copyPropagateOperands substitutes every source operand whose sole reaching
// definition is a MOV with that MOV's source, applying the dominance-safety
// check from spec.md §4.6.
func copyPropagateOperands(f *Function, inst *Instruction) bool {
	changed := false
	for idx, r := range inst.srcs {
		def, ok := singleDef(f, r)
		if !ok || def.Opcode() != Mov {
			continue
		}
		source := def.srcs[0]
		if source.Kind == Fixed || source.SameAs(r) {
			continue
		}
		if source.Kind == Virtual {
			reach := f.Definitions(source.VirtualID).Intersect(inst.ReachIn())
			if reach.IsEmpty() {
				e := f.NewVirtualReg(source.Size)
				mov := f.InsertBefore(def, Mov)
				mov.SetDest(e)
				mov.SetSrcs([]Register{source})
				var defs BitSet
				defs.Set(mov.GlobalID())
				f.SetDefinitions(e.VirtualID, defs)
				source = e
			}
		}
		inst.ReplaceSrc(idx, source)
		changed = true
	}
	return changed
}

// rewriteAsImm converts inst in place into `dest <- IMM v`.
func (inst *Instruction) rewriteAsImm(dest Register, v int64) {
	inst.opcode = Imm
	inst.hasDest = true
	inst.dest = dest
	inst.srcs = nil
	inst.imm = v
	inst.slot = 0
	inst.size = 0
	inst.jumpTarget = nil
	inst.thenBlock, inst.elseBlock = nil, nil
	inst.callName = ""
}

// rewriteAsBinImm converts inst in place into `dest <- BIN_IMM.op lhs, imm`.
func (inst *Instruction) rewriteAsBinImm(dest Register, op ops.ArithOp, lhs Register, imm int64) {
	inst.opcode = BinImm
	inst.hasDest = true
	inst.dest = dest
	inst.srcs = []Register{lhs}
	inst.arith = op
	inst.imm = imm
}

// rewriteAsCmpImm converts inst in place into `dest <- CMP_IMM.op lhs, imm`.
func (inst *Instruction) rewriteAsCmpImm(dest Register, op ops.CompareOp, lhs Register, imm int64) {
	inst.opcode = CmpImm
	inst.hasDest = true
	inst.dest = dest
	inst.srcs = []Register{lhs}
	inst.cmp = op
	inst.imm = imm
}

// rewriteAsJump converts inst in place into `JUMP target`, discarding its
// conditional-branch fields.
func (inst *Instruction) rewriteAsJump(target *BasicBlock) {
	inst.opcode = Jump
	inst.hasDest = false
	inst.dest = Register{}
	inst.srcs = nil
	inst.jumpTarget = target
	inst.thenBlock, inst.elseBlock = nil, nil
}

// rewriteAsBrCmp converts inst in place into `BR_CMP.op lhs, rhs -> then, els`.
func (inst *Instruction) rewriteAsBrCmp(op ops.CompareOp, lhs, rhs Register, then, els *BasicBlock) {
	inst.opcode = BrCmp
	inst.hasDest = false
	inst.dest = Register{}
	inst.srcs = []Register{lhs, rhs}
	inst.cmp = op
	inst.thenBlock, inst.elseBlock = then, els
}

// rewriteAsBrCmpImm converts inst in place into
// `BR_CMP_IMM.op lhs, imm -> then, els`.
func (inst *Instruction) rewriteAsBrCmpImm(op ops.CompareOp, lhs Register, imm int64, then, els *BasicBlock) {
	inst.opcode = BrCmpImm
	inst.hasDest = false
	inst.dest = Register{}
	inst.srcs = []Register{lhs}
	inst.cmp = op
	inst.imm = imm
	inst.thenBlock, inst.elseBlock = then, els
}
