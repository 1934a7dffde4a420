package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coord-e/ccc-sub000/internal/ops"
)

// TestBuildIntervalsSeparatesNonOverlappingRanges covers spec.md §3/§4.11:
// a register dead before another one's first use gets its own interval that
// does not span past its last use.
func TestBuildIntervalsSeparatesNonOverlappingRanges(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	blk := b.NewBlock()

	v0 := f.NewVirtualReg(QWord)
	v1 := f.NewVirtualReg(QWord)
	v2 := f.NewVirtualReg(QWord)

	b.Imm(blk, v0, 1)
	b.Una(blk, v1, ops.Identity, v0) // v0's last use
	b.Imm(blk, v2, 2)
	b.Ret(blk, &v2)

	f.Reorder()
	RunLiveness(f)

	intervals := BuildIntervals(f)
	byReg := make(map[VRegID]LiveInterval)
	for _, iv := range intervals {
		byReg[iv.VReg] = iv
	}

	iv0, ok := byReg[v0.VirtualID]
	require.True(t, ok)
	iv2, ok := byReg[v2.VirtualID]
	require.True(t, ok)
	require.Less(t, iv0.End, iv2.Start)
}

// TestBuildIntervalsCoversLiveThroughRegister ensures a register that
// spans multiple instructions without being referenced at every one of
// them (e.g. live across an unrelated instruction) still yields a single
// interval covering the whole span.
func TestBuildIntervalsCoversLiveThroughRegister(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	blk := b.NewBlock()

	v0 := f.NewVirtualReg(QWord)
	v1 := f.NewVirtualReg(QWord)
	v2 := f.NewVirtualReg(QWord)
	sum := f.NewVirtualReg(QWord)

	b.Imm(blk, v0, 1)
	b.Imm(blk, v1, 2) // v0 stays live across this
	b.Imm(blk, v2, 3) // v0 stays live across this too
	b.Bin(blk, sum, ops.Add, v0, v2)
	b.Ret(blk, &sum)

	f.Reorder()
	RunLiveness(f)

	intervals := BuildIntervals(f)
	var v0Intervals []LiveInterval
	for _, iv := range intervals {
		if iv.VReg == v0.VirtualID {
			v0Intervals = append(v0Intervals, iv)
		}
	}
	require.Len(t, v0Intervals, 1)

	var v0Def *Instruction
	blk.ForEachInstr(func(inst *Instruction) {
		if d, ok := inst.Dest(); ok && d.VirtualID == v0.VirtualID {
			v0Def = inst
		}
	})
	require.NotNil(t, v0Def)
	require.Equal(t, v0Def.LocalID(), v0Intervals[0].Start)
}
