package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMergeBlocksCollapsesJumpChain covers spec.md §4.9: a block ending in
// an unconditional JUMP to its sole successor, which in turn has that block
// as its sole predecessor, merges into one.
func TestMergeBlocksCollapsesJumpChain(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	a := b.NewBlock()
	mid := b.NewBlock()

	v := f.NewVirtualReg(QWord)
	b.Imm(a, v, 1)
	b.Jump(a, mid)

	w := f.NewVirtualReg(QWord)
	b.Imm(mid, w, 2)
	b.Ret(mid, &w)

	f.Reorder()
	MergeBlocks(f)
	f.Reorder()

	require.Len(t, f.SortedBlocks(), 1)
	merged := f.SortedBlocks()[0]

	var ops []Opcode
	merged.ForEachInstr(func(inst *Instruction) { ops = append(ops, inst.Opcode()) })
	require.Equal(t, []Opcode{Label, Imm, Imm, Ret}, ops)
}

// TestMergeBlocksLeavesMultiPredAlone ensures a block with more than one
// predecessor is never merged into any single one of them.
func TestMergeBlocksLeavesMultiPredAlone(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	entry := b.NewBlock()
	left := b.NewBlock()
	right := b.NewBlock()
	join := b.NewBlock()

	cond := f.NewVirtualReg(QWord)
	b.Imm(entry, cond, 1)
	b.Br(entry, cond, left, right)
	b.Jump(left, join)
	b.Jump(right, join)

	v := f.NewVirtualReg(QWord)
	b.Imm(join, v, 0)
	b.Ret(join, &v)

	f.Reorder()
	MergeBlocks(f)
	f.Reorder()

	require.Len(t, f.SortedBlocks(), 4)
}
