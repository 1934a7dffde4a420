package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coord-e/ccc-sub000/internal/ops"
)

// TestPeepholeDegradesAddZeroToMov covers spec.md §4.7: `ADD rd <- r, 0`
// becomes a plain MOV.
func TestPeepholeDegradesAddZeroToMov(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	blk := b.NewBlock()

	r := f.NewVirtualReg(QWord)
	dest := f.NewVirtualReg(QWord)
	inst := b.BinImm(blk, dest, ops.Add, r, 0)

	f.Reorder()
	Peephole(f)

	require.Equal(t, Mov, inst.Opcode())
	require.Equal(t, []Register{r}, inst.Srcs())
}

// TestPeepholeDegradesMulOneToMov covers the MUL-by-one identity.
func TestPeepholeDegradesMulOneToMov(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	blk := b.NewBlock()

	r := f.NewVirtualReg(QWord)
	dest := f.NewVirtualReg(QWord)
	inst := b.BinImm(blk, dest, ops.Mul, r, 1)

	f.Reorder()
	Peephole(f)

	require.Equal(t, Mov, inst.Opcode())
	require.Equal(t, []Register{r}, inst.Srcs())
}

// TestPeepholeLeavesNonIdentityAlone ensures an unrelated BIN_IMM survives
// untouched.
func TestPeepholeLeavesNonIdentityAlone(t *testing.T) {
	irc := New()
	b, f := NewBuilder(irc, "main", nil)
	blk := b.NewBlock()

	r := f.NewVirtualReg(QWord)
	dest := f.NewVirtualReg(QWord)
	inst := b.BinImm(blk, dest, ops.Add, r, 5)

	f.Reorder()
	Peephole(f)

	require.Equal(t, BinImm, inst.Opcode())
	require.EqualValues(t, 5, inst.Imm())
}
