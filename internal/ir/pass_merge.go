package ir

// MergeBlocks walks the CFG bottom-up from the function exit, collapsing
// every mergeable (A -> B) pair into A until no more pairs qualify (spec.md
// §4.9).
//
// A pair is mergeable iff A has exactly one successor and it is B, B has
// exactly one predecessor and it is A, B begins with a LABEL, and A's
// terminator is either JUMP or a RET with an empty operand list paired with
// a RET terminator in B — in which case A's RET is dropped and B's RET
// becomes the merged block's terminator. A RET with operands never merges;
// spec.md leaves that combination underspecified and original_source/ never
// exercises it (see DESIGN.md).
//
// Grounded on original_source/src/merge.c.
func MergeBlocks(f *Function) {
	for {
		merged := false
		for i := len(f.sortedBlocks) - 1; i >= 0; i-- {
			b := f.sortedBlocks[i]
			if b == nil || !b.valid || b == f.entry {
				continue
			}
			if len(b.preds) != 1 {
				continue
			}
			a := b.preds[0]
			if a == b || !a.valid || len(a.succs) != 1 || a.succs[0] != b {
				continue
			}
			if !mergeablePair(a, b) {
				continue
			}
			mergeBlockPair(f, a, b)
			merged = true
		}
		if !merged {
			break
		}
	}
	f.bumpVersion()
}

func mergeablePair(a, b *BasicBlock) bool {
	aTerm, bTerm := a.Terminator(), b.Terminator()
	if aTerm == nil || bTerm == nil {
		return false
	}
	if b.Root() == nil || b.Root().Opcode() != Label {
		return false
	}
	switch aTerm.Opcode() {
	case Jump:
		return true
	case Ret:
		return len(aTerm.srcs) == 0 && bTerm.Opcode() == Ret
	default:
		return false
	}
}

// mergeBlockPair drops A's terminator and B's LABEL, splices B's remaining
// instructions onto A, transfers B's successor edges to A, and frees B.
func mergeBlockPair(f *Function, a, b *BasicBlock) {
	f.Remove(a.tail)
	f.Remove(b.root)

	spliceInstructions(a, b)

	f.Disconnect(a, b)
	for _, s := range append([]*BasicBlock(nil), b.succs...) {
		f.Disconnect(b, s)
		f.Connect(a, s)
	}

	wasExit := f.exit == b
	f.FreeBlock(b)
	if wasExit {
		f.SetExit(a)
	}
}

// spliceInstructions appends b's instruction list onto a's, reparenting
// each instruction to a, and empties b.
func spliceInstructions(a, b *BasicBlock) {
	if b.root == nil {
		return
	}
	for inst := b.root; inst != nil; inst = inst.next {
		inst.block = a
	}
	if a.tail == nil {
		a.root = b.root
	} else {
		a.tail.next = b.root
		b.root.prev = a.tail
	}
	a.tail = b.tail
	a.count += b.count
	b.root, b.tail, b.count = nil, nil, 0
}
