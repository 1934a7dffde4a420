package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReorderAssignsDensePermutation covers spec.md §8's "numbering
// density" invariant: after reorder, block local ids form a permutation
// of 0..B-1 and instruction local ids form 0..N-1 per function.
func TestReorderAssignsDensePermutation(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	entry := b.NewBlock()
	left := b.NewBlock()
	right := b.NewBlock()
	join := b.NewBlock()

	cond := f.NewVirtualReg(QWord)
	b.Imm(entry, cond, 1)
	b.Br(entry, cond, left, right)

	lv := f.NewVirtualReg(QWord)
	b.Imm(left, lv, 1)
	b.Jump(left, join)

	rv := f.NewVirtualReg(QWord)
	b.Imm(right, rv, 2)
	b.Jump(right, join)

	jv := f.NewVirtualReg(QWord)
	b.Imm(join, jv, 0)
	b.Ret(join, &jv)

	f.Reorder()

	sorted := f.SortedBlocks()
	require.Len(t, sorted, 4)

	seenBlocks := make(map[int]bool)
	for _, blk := range sorted {
		seenBlocks[blk.LocalID()] = true
		require.Equal(t, blk, f.BlockByLocalID(blk.LocalID()))
	}
	for i := 0; i < len(sorted); i++ {
		require.True(t, seenBlocks[i], "missing block local id %d", i)
	}

	seenInsts := make(map[int]bool)
	n := 0
	for _, blk := range sorted {
		blk.ForEachInstr(func(inst *Instruction) {
			seenInsts[inst.LocalID()] = true
			require.Equal(t, inst, f.InstructionByLocalID(inst.LocalID()))
			n++
		})
	}
	for i := 0; i < n; i++ {
		require.True(t, seenInsts[i], "missing instruction local id %d", i)
	}
}

// TestReorderDominanceOrdering covers spec.md §4.2's guarantee: if block A
// dominates B along the traversal path, A's instruction ids are strictly
// smaller than B's. Here entry strictly dominates left, right and join; the
// preorder walk also reaches join through left, so join follows left.
func TestReorderDominanceOrdering(t *testing.T) {
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

	jv := f.NewVirtualReg(QWord)
	b.Imm(join, jv, 0)
	b.Ret(join, &jv)

	f.Reorder()

	require.Less(t, entry.Root().LocalID(), left.Root().LocalID())
	require.Less(t, entry.Root().LocalID(), right.Root().LocalID())
	require.Less(t, left.Root().LocalID(), join.Root().LocalID())
	require.Less(t, entry.Root().LocalID(), join.Root().LocalID())
}

// TestReorderSkipsInvalidSuccessors ensures a block freed by block merging
// (marked invalid) is never revisited or numbered.
func TestReorderSkipsInvalidSuccessors(t *testing.T) {
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
	for _, blk := range f.SortedBlocks() {
		require.True(t, blk.Valid())
	}
}
