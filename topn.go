package bookvis

import (
	"sort"
)

// OtherCategory is the name of the synthetic category holding the combined
// value of everything beyond the top N.
const OtherCategory = "Other"

// TopAndOther collapses a series down to its topN largest categories (by
// value, descending) plus an "Other" entry summing the rest. "Other" is
// always present, zero-valued when there is nothing to collapse, so that
// downstream legends stay stable. Row sums are preserved exactly.
func TopAndOther(s *Series, topN int) *Series {
	top, rest := rank(s.Keys(), func(k string) float64 {
		v, _ := s.Get(k)
		return v
	}, topN)

	out := NewSeries()
	for _, k := range top {
		v, _ := s.Get(k)
		out.Set(k, v)
	}
	var other float64
	for _, k := range rest {
		v, _ := s.Get(k)
		other += v
	}
	out.Set(OtherCategory, other)
	return out
}

// TopAndOtherTable collapses a table's columns down to the topN largest (by
// column total, descending) plus an "Other" column whose value at each row
// is the sum of the excluded columns' values at that row. Row order is
// preserved; only columns are reordered.
func TopAndOtherTable(t *TimeTable, topN int) *TimeTable {
	top, rest := rank(t.Columns(), t.ColumnTotal, topN)

	out := NewTimeTable()
	for _, c := range top {
		for _, d := range t.Dates() {
			if v, ok := t.Get(c, d); ok {
				out.Set(c, d, v)
			}
		}
	}
	for _, d := range t.Dates() {
		var other float64
		for _, c := range rest {
			if v, ok := t.Get(c, d); ok {
				other += v
			}
		}
		out.Set(OtherCategory, d, other)
	}
	return out
}

// rank sorts keys by total descending (stable, so equal totals keep their
// original order) and splits them into the kept top N and the remainder.
func rank(keys []string, total func(string) float64, topN int) (top, rest []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		return total(keys[i]) > total(keys[j])
	})
	if topN < 0 {
		topN = 0
	}
	if topN > len(keys) {
		topN = len(keys)
	}
	return keys[:topN], keys[topN:]
}
