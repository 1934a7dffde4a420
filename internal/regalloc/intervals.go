package regalloc

import "sort"

// sortedByStart returns a copy of intervals ordered by Start ascending,
// breaking ties by End so that a shorter interval (which frees its
// register sooner) is scanned first among same-start intervals.
func sortedByStart(intervals []Interval) []Interval {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	return sorted
}
