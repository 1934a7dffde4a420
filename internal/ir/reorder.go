package ir

// Reorder performs a depth-first preorder traversal from f's entry block,
// following successors, assigning each reachable block a dense local id
// 0..B-1 in visitation order, then renumbers every instruction (dense
// 0..N-1 per function) by iterating the resulting sorted blocks in order
// (spec.md §4.2).
//
// Guarantee: if block A dominates B along the traversal path, A's
// instruction local ids are strictly smaller than B's; linear-scan
// register allocation (internal/regalloc) relies on this.
//
// Grounded on wazevo/ssa/pass_cfg.go's passCalculateImmediateDominators,
// which performs the same explore-stack DFS; spec.md §9 prefers iterative
// traversal over recursive list walks, so the explicit stack here is kept
// rather than a recursive visit function.
func (f *Function) Reorder() {
	f.blockIndex = make(map[int]*BasicBlock)
	if f.entry == nil {
		f.sortedBlocks = nil
		return
	}

	visited := make(map[*BasicBlock]bool)
	var order []*BasicBlock

	type frame struct {
		blk      *BasicBlock
		succIdx  int
	}
	stack := []frame{{blk: f.entry}}
	visited[f.entry] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.succIdx == 0 {
			// First visit: assign the dense id and record in preorder.
			top.blk.localID = len(order)
			order = append(order, top.blk)
		}
		advanced := false
		for top.succIdx < len(top.blk.succs) {
			succ := top.blk.succs[top.succIdx]
			top.succIdx++
			if succ.valid && !visited[succ] {
				visited[succ] = true
				stack = append(stack, frame{blk: succ})
				advanced = true
				break
			}
		}
		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}

	f.sortedBlocks = order
	for idx, blk := range order {
		blk.order = idx
		f.blockIndex[blk.localID] = blk
	}

	f.renumberInstructions()
}

// renumberInstructions assigns dense local ids 0..N-1 to every instruction,
// iterating blocks in sorted order, and rebuilds the per-function local-id
// index.
func (f *Function) renumberInstructions() {
	f.instrIndex = make(map[int]*Instruction)
	next := 0
	for _, blk := range f.sortedBlocks {
		blk.ForEachInstr(func(inst *Instruction) {
			inst.localID = next
			f.instrIndex[next] = inst
			next++
		})
	}
	f.nextInst = next
}
