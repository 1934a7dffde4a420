package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coord-e/ccc-sub000/internal/ops"
)

func preparePropagate(t *testing.T, f *Function) {
	t.Helper()
	f.Reorder()
	RunLiveness(f)
	RunReachingDefs(f)
}

// TestPropagateFoldsDependentChain covers spec.md §8 scenario 1: `1+2*3`
// needs more than one reverse scan to fully collapse, since v4's rhs (v3)
// is only folded later in the same first pass.
func TestPropagateFoldsDependentChain(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	blk := b.NewBlock()

	v0 := f.NewVirtualReg(QWord)
	v1 := f.NewVirtualReg(QWord)
	v2 := f.NewVirtualReg(QWord)
	v3 := f.NewVirtualReg(QWord)
	v4 := f.NewVirtualReg(QWord)

	b.Imm(blk, v0, 1)
	b.Imm(blk, v1, 2)
	b.Imm(blk, v2, 3)
	b.Bin(blk, v3, ops.Mul, v1, v2)
	b.Bin(blk, v4, ops.Add, v0, v3)
	b.Ret(blk, &v4)

	preparePropagate(t, f)
	Propagate(f)

	def, ok := singleDef(f, v4)
	require.True(t, ok)
	require.Equal(t, Imm, def.Opcode())
	require.EqualValues(t, 7, def.Imm())
}

// TestPropagateCopyPropagatesMov replaces a use of a MOV's destination with
// the MOV's own source.
func TestPropagateCopyPropagatesMov(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	blk := b.NewBlock()

	src := f.NewVirtualReg(QWord)
	copyReg := f.NewVirtualReg(QWord)
	one := f.NewVirtualReg(QWord)
	sum := f.NewVirtualReg(QWord)

	b.Imm(blk, src, 41)
	b.Mov(blk, copyReg, src)
	b.Imm(blk, one, 1)
	b.Bin(blk, sum, ops.Add, copyReg, one)
	b.Ret(blk, &sum)

	preparePropagate(t, f)
	Propagate(f)

	def, ok := singleDef(f, sum)
	require.True(t, ok)
	require.Equal(t, Imm, def.Opcode())
	require.EqualValues(t, 42, def.Imm())
}

// TestPropagateFoldsBranch covers spec.md §8 scenario 3's constant
// condition: BR_CMP_IMM with both operands known folds to JUMP and
// disconnects the untaken successor.
func TestPropagateFoldsBranch(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	entry := b.NewBlock()
	then := b.NewBlock()
	els := b.NewBlock()

	cond := f.NewVirtualReg(QWord)
	b.Imm(entry, cond, 0)
	b.BrCmpImm(entry, ops.EQ, cond, 0, then, els)

	one := f.NewVirtualReg(QWord)
	b.Imm(then, one, 1)
	b.Ret(then, &one)

	two := f.NewVirtualReg(QWord)
	b.Imm(els, two, 2)
	b.Ret(els, &two)

	preparePropagate(t, f)
	Propagate(f)

	term := entry.Terminator()
	require.Equal(t, Jump, term.Opcode())
	require.Same(t, then, term.jumpTarget)

	foundEls := false
	for _, s := range entry.succs {
		if s == els {
			foundEls = true
		}
	}
	require.False(t, foundEls, "untaken successor must be disconnected")
}

// TestPropagateFusesBrWithCmp covers spec.md §4.6's BR/CMP fusion: a BR
// whose sole condition definition is a CMP becomes a BR_CMP. Both compared
// registers are constants here, so the fused BR_CMP then folds to a JUMP to
// the then-block; the test checks that final JUMP, which a BR without the
// fusion never reaches.
func TestPropagateFusesBrWithCmp(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	entry := b.NewBlock()
	then := b.NewBlock()
	els := b.NewBlock()

	x := f.NewVirtualReg(QWord)
	y := f.NewVirtualReg(QWord)
	cond := f.NewVirtualReg(QWord)
	b.Imm(entry, x, 1)
	b.Imm(entry, y, 2)
	b.Cmp(entry, cond, ops.LT, x, y)
	b.Br(entry, cond, then, els)

	one := f.NewVirtualReg(QWord)
	b.Imm(then, one, 1)
	b.Ret(then, &one)
	zero := f.NewVirtualReg(QWord)
	b.Imm(els, zero, 0)
	b.Ret(els, &zero)

	preparePropagate(t, f)
	Propagate(f)

	term := entry.Terminator()
	require.Equal(t, Jump, term.Opcode())
	require.Same(t, then, term.jumpTarget)
}
