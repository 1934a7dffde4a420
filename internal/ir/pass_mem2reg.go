package ir

// Mem2Reg classifies stack slots whose only uses are whole-slot
// LOAD/STORE accesses and rewrites them to virtual-register moves,
// eliminating the STACK_ADDR and memory traffic entirely (spec.md §4.5).
//
// A virtual register r is replaceable iff it is the destination of a
// STACK_ADDR (in_stack) and every use of r is as the address operand of a
// LOAD or STORE (candidates, with no other role: excluded). Any address
// arithmetic or other escape marks the slot excluded and leaves it alone.
//
// Grounded on original_source/src/mem2reg.c's three-bitset classification.
func Mem2Reg(f *Function) {
	var inStack, candidates, excluded BitSet

	for _, blk := range f.sortedBlocks {
		blk.ForEachInstr(func(inst *Instruction) {
			op := inst.Opcode()
			for idx, src := range inst.srcs {
				if src.Kind != Virtual {
					continue
				}
				if (op == Load || op == Store) && idx == 0 {
					candidates.Set(int(src.VirtualID))
				} else {
					excluded.Set(int(src.VirtualID))
				}
			}
			if dest, ok := inst.Dest(); ok && dest.Kind == Virtual {
				if op == StackAddr {
					inStack.Set(int(dest.VirtualID))
				} else {
					excluded.Set(int(dest.VirtualID))
				}
			}
		})
	}

	replaceable := func(vid VRegID) bool {
		return candidates.Has(int(vid)) && !excluded.Has(int(vid)) && inStack.Has(int(vid))
	}

	assoc := make(map[VRegID]Register)
	assocFor := func(addr Register, size Size) Register {
		if r, ok := assoc[addr.VirtualID]; ok {
			return r
		}
		r := f.NewVirtualReg(size)
		assoc[addr.VirtualID] = r
		return r
	}

	var toRemove []*Instruction
	for _, blk := range f.sortedBlocks {
		blk.ForEachInstr(func(inst *Instruction) {
			switch inst.Opcode() {
			case StackAddr:
				dest, ok := inst.Dest()
				if ok && dest.Kind == Virtual && replaceable(dest.VirtualID) {
					toRemove = append(toRemove, inst)
				}
			case Load:
				addr := inst.srcs[0]
				if addr.Kind == Virtual && replaceable(addr.VirtualID) {
					src := assocFor(addr, inst.size)
					dest, _ := inst.Dest()
					inst.rewriteAsMov(dest, src)
				}
			case Store:
				addr, val := inst.srcs[0], inst.srcs[1]
				if addr.Kind == Virtual && replaceable(addr.VirtualID) {
					dest := assocFor(addr, inst.size)
					inst.rewriteAsMov(dest, val)
				}
			}
		})
	}

	for _, inst := range toRemove {
		f.Remove(inst)
	}
	f.bumpVersion()
}

// rewriteAsMov converts inst in place into `dest <- MOV src`, discarding
// its previous opcode-specific fields. Used by mem2reg to turn a whole-slot
// LOAD/STORE into a register move without disturbing the instruction's id.
func (inst *Instruction) rewriteAsMov(dest, src Register) {
	inst.opcode = Mov
	inst.hasDest = true
	inst.dest = dest
	inst.srcs = []Register{src}
	inst.imm = 0
	inst.slot = 0
	inst.size = 0
	inst.jumpTarget = nil
	inst.thenBlock, inst.elseBlock = nil, nil
	inst.callName = ""
}
