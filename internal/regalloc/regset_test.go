package regalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegSetAddRemoveHas(t *testing.T) {
	rs := NewRegSet(0, 3, 9)
	require.True(t, rs.has(0))
	require.True(t, rs.has(3))
	require.True(t, rs.has(9))
	require.False(t, rs.has(1))

	rs = rs.remove(3)
	require.False(t, rs.has(3))
}

func TestRegSetFirstAndRange(t *testing.T) {
	rs := NewRegSet(5, 2, 7)
	first, ok := rs.first()
	require.True(t, ok)
	require.Equal(t, RealReg(2), first)

	var seen []RealReg
	rs.Range(func(r RealReg) { seen = append(seen, r) })
	require.Equal(t, []RealReg{2, 5, 7}, seen)
}

func TestRegSetFirstEmpty(t *testing.T) {
	var rs RegSet
	_, ok := rs.first()
	require.False(t, ok)
}
