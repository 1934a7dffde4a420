package regalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateFitsWithoutSpilling(t *testing.T) {
	intervals := []Interval{
		{VReg: 0, Start: 0, End: 5},
		{VReg: 1, Start: 6, End: 10},
	}
	result := Allocate(intervals, Config{K: 1})

	require.Len(t, result.Decisions, 2)
	for _, d := range result.Decisions {
		require.False(t, d.Spilled)
		require.Equal(t, RealReg(0), d.Reg)
	}
}

func TestAllocateSpillsFurthestEndWins(t *testing.T) {
	// spec.md §8: intervals [0,10] and [5,15] with K=1 forces a spill. v0
	// is already active holding the only register when v1 starts at 5;
	// among {v0, v1} the furthest end is v1's (15 > 10), so v1 is the one
	// spilled and v0 keeps its register (spec.md §4.11's heuristic only
	// reassigns the active element's register away when that element
	// outlives the newly-considered interval, which isn't the case here).
	intervals := []Interval{
		{VReg: 0, Start: 0, End: 10},
		{VReg: 1, Start: 5, End: 15},
	}
	result := Allocate(intervals, Config{K: 1})
	require.Len(t, result.Decisions, 2)

	var v0, v1 Decision
	for _, d := range result.Decisions {
		switch d.Interval.VReg {
		case 0:
			v0 = d
		case 1:
			v1 = d
		}
	}

	require.False(t, v0.Spilled)
	require.Equal(t, RealReg(0), v0.Reg)
	require.True(t, v1.Spilled)
}

func TestAllocateReservedRegistersAreNeverAssigned(t *testing.T) {
	intervals := []Interval{{VReg: 0, Start: 0, End: 1}}
	result := Allocate(intervals, Config{K: 2, Reserved: []RealReg{0}})
	require.Len(t, result.Decisions, 1)
	require.False(t, result.Decisions[0].Spilled)
	require.Equal(t, RealReg(1), result.Decisions[0].Reg)
}

func TestAllocateAllRegistersReservedSpillsEverything(t *testing.T) {
	intervals := []Interval{{VReg: 0, Start: 0, End: 1}}
	result := Allocate(intervals, Config{K: 1, Reserved: []RealReg{0}})
	require.Len(t, result.Decisions, 1)
	require.True(t, result.Decisions[0].Spilled)
}

func TestAssignSlotsReusesFreedSlot(t *testing.T) {
	// Decisions must already be in start order, as Allocate produces them.
	result := Result{Decisions: []Decision{
		{Interval: Interval{VReg: 0, Start: 0, End: 5}, Spilled: true},
		{Interval: Interval{VReg: 2, Start: 2, End: 8}, Spilled: true},
		{Interval: Interval{VReg: 1, Start: 10, End: 20}, Spilled: true},
	}}
	AssignSlots(result)

	// v0 and v2 overlap (2 <= 5), so they must take different slots.
	require.NotEqual(t, result.Decisions[0].Slot, result.Decisions[1].Slot)
	// v1 starts after both v0 and v2 have ended, so it reuses a freed slot.
	require.Contains(t, []int{result.Decisions[0].Slot, result.Decisions[1].Slot}, result.Decisions[2].Slot)
}
