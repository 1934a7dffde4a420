package ir

import "fmt"

// BasicBlock is a straight-line instruction region with exactly one entry
// and one terminator (spec.md §3). Predecessor/successor edges are
// non-owning; instruction storage is owned via the root/tail linked list.
//
// Grounded on wazevo/ssa/basic_block.go's basicBlock struct.
type BasicBlock struct {
	globalID int // assigned once at construction; shared with the block's LABEL
	localID  int // dense 0..B-1, assigned by the reorder pass
	order    int // position in Function.sortedBlocks; equal to localID by
	// construction (the reorder pass appends blocks to sortedBlocks in the
	// same DFS-preorder it numbers them), kept as a separate field because
	// spec.md §3 names it as a distinct attribute.

	root, tail *Instruction
	count      int

	preds []*BasicBlock
	succs []*BasicBlock

	function *Function

	// valid is false once this block has been merged away (spec.md §4.9)
	// or otherwise removed; a dangling pointer held by a stale edge or
	// jump target must check this before being followed.
	valid bool

	// Liveness analysis payload (spec.md §4.3).
	liveGen, liveKill, liveIn, liveOut BitSet
	// Reaching-definitions analysis payload (spec.md §4.4).
	reachGen, reachKill, reachIn, reachOut BitSet
}

// ID returns the block's global id.
func (b *BasicBlock) ID() int { return b.globalID }

// LocalID returns the block's per-function dense id, assigned by the
// reorder pass.
func (b *BasicBlock) LocalID() int { return b.localID }

// Order returns the block's position in the function's sorted-blocks
// output.
func (b *BasicBlock) Order() int { return b.order }

// Name returns a debug name for the block.
func (b *BasicBlock) Name() string {
	if b == nil {
		return "<nil blk>"
	}
	return fmt.Sprintf("blk%d", b.globalID)
}

// Function returns the owning function.
func (b *BasicBlock) Function() *Function { return b.function }

// Valid reports whether the block is still live in the CFG.
func (b *BasicBlock) Valid() bool { return b.valid }

// Root returns the first instruction (a LABEL whose id matches the block's
// global id), or nil for an empty block.
func (b *BasicBlock) Root() *Instruction { return b.root }

// Tail returns the last instruction (the block's terminator), or nil for an
// empty block.
func (b *BasicBlock) Tail() *Instruction { return b.tail }

// InstrCount returns the number of instructions in the block.
func (b *BasicBlock) InstrCount() int { return b.count }

// Preds returns the block's predecessors. The returned slice must not be
// mutated by callers.
func (b *BasicBlock) Preds() []*BasicBlock { return b.preds }

// Succs returns the block's successors. The returned slice must not be
// mutated by callers.
func (b *BasicBlock) Succs() []*BasicBlock { return b.succs }

// Terminator returns the block's terminating instruction, or nil if the
// block is empty (only valid before the block has been finalized).
func (b *BasicBlock) Terminator() *Instruction {
	if b.tail == nil || !b.tail.opcode.IsTerminator() {
		return nil
	}
	return b.tail
}

// ForEachInstr calls f for every instruction in the block, in order. f may
// not remove the instruction it is called with; use Function.Remove after
// the walk completes, or capture a Next() before removing.
func (b *BasicBlock) ForEachInstr(f func(*Instruction)) {
	for i := b.root; i != nil; i = i.next {
		f(i)
	}
}

// ForEachInstrReverse calls f for every instruction in the block from tail
// to root.
func (b *BasicBlock) ForEachInstrReverse(f func(*Instruction)) {
	for i := b.tail; i != nil; i = i.prev {
		f(i)
	}
}

// connect adds b to a's successors and a to b's predecessors. Idempotent on
// duplicate edges (spec.md §4.1).
func connect(a, b *BasicBlock) {
	for _, s := range a.succs {
		if s == b {
			return
		}
	}
	a.succs = append(a.succs, b)
	b.preds = append(b.preds, a)
}

// disconnect removes the edge a -> b, if present. Idempotent (spec.md
// §4.1).
func disconnect(a, b *BasicBlock) {
	a.succs = removeBlock(a.succs, b)
	b.preds = removeBlock(b.preds, a)
}

func removeBlock(list []*BasicBlock, target *BasicBlock) []*BasicBlock {
	for idx, blk := range list {
		if blk == target {
			return append(list[:idx], list[idx+1:]...)
		}
	}
	return list
}

// FormatHeader returns a debug string for the block's header, excluding its
// instructions.
func (b *BasicBlock) FormatHeader() string {
	preds := make([]string, len(b.preds))
	for i, p := range b.preds {
		preds[i] = p.Name()
	}
	return fmt.Sprintf("%s: ; preds=%v", b.Name(), preds)
}
