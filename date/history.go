package date

import (
	"iter"
	"slices"
	"sort"
)

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological[T float32 | float64 | string] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }

func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History[T]) sort() { sort.Sort(chronological[T]{h}) }

// Append adds a point to the history.
//
// An existing value at that date is overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	if i := slices.Index(h.days, on); i >= 0 {
		// Found a point at that exact same day; the last data wins.
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	h.sort()
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Days returns the dates in the history, in chronological order.
func (h *History[T]) Days() []Date { return slices.Clone(h.days) }

// Get returns the value at 'day' and true, or the zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	var value T
	i := slices.Index(h.days, day)
	if i >= 0 {
		return h.values[i], true
	}
	return value, false
}

// search returns the index where day would be inserted, and whether it is present.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})
}

// Nearest returns the entry whose date has the minimum absolute distance to
// 'day'. When two entries are equidistant, the earlier one is returned.
// It returns false if the history is empty.
func (h *History[T]) Nearest(day Date) (on Date, value T, ok bool) {
	if len(h.days) == 0 {
		return Date{}, *new(T), false
	}
	i, found := h.search(day)
	if found {
		return h.days[i], h.values[i], true
	}
	// day would be inserted at i: the candidates are i-1 (before) and i (after).
	switch {
	case i == 0:
		return h.days[0], h.values[0], true
	case i == len(h.days):
		last := len(h.days) - 1
		return h.days[last], h.values[last], true
	}
	before, after := h.days[i-1], h.days[i]
	if day.Sub(before) <= after.Sub(day) {
		return before, h.values[i-1], true
	}
	return after, h.values[i], true
}

// Iterate returns an iterator over all unique, sorted dates from multiple History objects.
func Iterate[T float32 | float64 | string](histories ...*History[T]) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		indexes := make([]int, len(histories))
		for {
			// find the minimum of the next unconsumed date of each history
			var m Date
			remaining := false
			for i, index := range indexes {
				if index >= len(histories[i].days) {
					continue
				}
				on := histories[i].days[index]
				if !remaining || on.Before(m) {
					m = on
				}
				remaining = true
			}
			if !remaining {
				return
			}
			// consume every history positioned at that date
			for i, index := range indexes {
				if index < len(histories[i].days) && histories[i].days[index] == m {
					indexes[i]++
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}
