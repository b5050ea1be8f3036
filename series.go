package bookvis

import (
	"iter"
	"slices"

	"github.com/bunburya/bookvis/date"
)

// Series is an insertion-ordered mapping from category name (an account
// name, a currency code) to a value.
type Series struct {
	keys   []string
	values map[string]float64
}

// NewSeries creates an empty series.
func NewSeries() *Series {
	return &Series{values: make(map[string]float64)}
}

// Add accumulates v into the entry for key, creating it if absent.
func (s *Series) Add(key string, v float64) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] += v
}

// Set replaces the value for key, creating the entry if absent.
func (s *Series) Set(key string, v float64) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Get returns the value for key.
func (s *Series) Get(key string) (float64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the category names in insertion order.
func (s *Series) Keys() []string { return slices.Clone(s.keys) }

// Len returns the number of entries.
func (s *Series) Len() int { return len(s.keys) }

// Sum returns the sum of all values.
func (s *Series) Sum() float64 {
	var total float64
	for _, v := range s.values {
		total += v
	}
	return total
}

// Values returns an iterator over key/value pairs in insertion order.
func (s *Series) Values() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, k := range s.keys {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}

// AddSeries accumulates every entry of o into s, treating missing entries on
// either side as zero.
func (s *Series) AddSeries(o *Series) {
	for k, v := range o.Values() {
		s.Add(k, v)
	}
}

// Sub returns s - o entry by entry, treating missing entries on either side
// as zero.
func (s *Series) Sub(o *Series) *Series {
	out := NewSeries()
	for k, v := range s.Values() {
		out.Add(k, v)
	}
	for k, v := range o.Values() {
		out.Add(k, -v)
	}
	return out
}

// TimeTable is a table of values with date-sorted rows and ordered category
// columns: the shape consumed by stacked charts.
type TimeTable struct {
	columns   []string
	histories map[string]*date.History[float64]
}

// NewTimeTable creates an empty table.
func NewTimeTable() *TimeTable {
	return &TimeTable{histories: make(map[string]*date.History[float64])}
}

// Set records the value for a column on a date, creating the column if absent.
func (t *TimeTable) Set(column string, on date.Date, v float64) {
	h, ok := t.histories[column]
	if !ok {
		h = &date.History[float64]{}
		t.histories[column] = h
		t.columns = append(t.columns, column)
	}
	h.Append(on, v)
}

// Get returns the value for a column on a date.
func (t *TimeTable) Get(column string, on date.Date) (float64, bool) {
	h, ok := t.histories[column]
	if !ok {
		return 0, false
	}
	return h.Get(on)
}

// Columns returns the column names in insertion order.
func (t *TimeTable) Columns() []string { return slices.Clone(t.columns) }

// Dates returns the union of all row dates, sorted and unique.
func (t *TimeTable) Dates() []date.Date {
	hs := make([]*date.History[float64], 0, len(t.columns))
	for _, c := range t.columns {
		hs = append(hs, t.histories[c])
	}
	var days []date.Date
	for d := range date.Iterate(hs...) {
		days = append(days, d)
	}
	return days
}

// ColumnTotal returns the sum of a column across all its rows.
func (t *TimeTable) ColumnTotal(column string) float64 {
	h, ok := t.histories[column]
	if !ok {
		return 0
	}
	var total float64
	for _, v := range h.Values() {
		total += v
	}
	return total
}
