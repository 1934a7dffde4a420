package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coord-e/ccc-sub000/internal/ops"
)

func TestArithOpEval(t *testing.T) {
	cases := []struct {
		op       ops.ArithOp
		lhs, rhs int64
		want     int64
	}{
		{ops.Add, 1, 2, 3},
		{ops.Sub, 5, 2, 3},
		{ops.Mul, 2, 3, 6},
		{ops.Div, 7, 2, 3},
		{ops.Div, 7, 0, 0},
		{ops.Mod, 7, 2, 1},
		{ops.Or, 0b10, 0b01, 0b11},
		{ops.Xor, 0b11, 0b01, 0b10},
		{ops.And, 0b11, 0b01, 0b01},
		{ops.Shl, 1, 3, 8},
		{ops.Shr, 8, 3, 1},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.op.Eval(c.lhs, c.rhs), "%s(%d,%d)", c.op, c.lhs, c.rhs)
	}
}

func TestCompareOpEvalAndNegated(t *testing.T) {
	require.Equal(t, int64(1), ops.EQ.Eval(1, 1))
	require.Equal(t, int64(0), ops.EQ.Eval(1, 2))
	require.Equal(t, int64(1), ops.LT.Eval(1, 2))

	require.Equal(t, ops.NE, ops.EQ.Negated())
	require.Equal(t, ops.EQ, ops.NE.Negated())
	require.Equal(t, ops.LE, ops.GT.Negated())
	require.Equal(t, ops.GE, ops.LT.Negated())
}

func TestUnaryOpEval(t *testing.T) {
	require.Equal(t, int64(4), ops.Identity.Eval(4))
	require.Equal(t, int64(-4), ops.Neg.Eval(4))
	require.Equal(t, int64(^int64(4)), ops.BitNot.Eval(4))
}
