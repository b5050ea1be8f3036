package bookvis

import (
	"fmt"
	"testing"
	"time"

	"github.com/bunburya/bookvis/date"
)

func TestTopAndOther(t *testing.T) {
	s := NewSeries()
	for i := 1; i <= 10; i++ {
		s.Set(fmt.Sprintf("Category %d", i), float64(i*10))
	}

	out := TopAndOther(s, 5)
	if out.Len() != 6 {
		t.Fatalf("TopAndOther() has %d entries %v, want 6", out.Len(), out.Keys())
	}

	// Top entries in descending order, "Other" last.
	wantKeys := []string{"Category 10", "Category 9", "Category 8", "Category 7", "Category 6", OtherCategory}
	for i, k := range out.Keys() {
		if k != wantKeys[i] {
			t.Errorf("key %d = %q, want %q", i, k, wantKeys[i])
		}
	}

	// "Other" sums the five smallest categories: 10+20+30+40+50.
	if v, _ := out.Get(OtherCategory); v != 150 {
		t.Errorf("Other = %v, want 150", v)
	}
	if !approx(out.Sum(), s.Sum()) {
		t.Errorf("Sum() = %v, want %v (totals preserved)", out.Sum(), s.Sum())
	}
}

func TestTopAndOther_FewerCategoriesThanN(t *testing.T) {
	s := NewSeries()
	s.Set("A", 1)
	s.Set("B", 2)

	out := TopAndOther(s, 5)
	if out.Len() != 3 {
		t.Fatalf("TopAndOther() has %d entries %v, want 3", out.Len(), out.Keys())
	}
	// "Other" is present but zero when there is nothing to collapse.
	if v, ok := out.Get(OtherCategory); !ok || v != 0 {
		t.Errorf("Other = %v (ok=%v), want a zero entry", v, ok)
	}
}

func TestTopAndOther_ZeroN(t *testing.T) {
	s := NewSeries()
	s.Set("A", 1)
	s.Set("B", 2)

	out := TopAndOther(s, 0)
	if out.Len() != 1 {
		t.Fatalf("TopAndOther() has %d entries %v, want just Other", out.Len(), out.Keys())
	}
	if v, _ := out.Get(OtherCategory); v != 3 {
		t.Errorf("Other = %v, want 3", v)
	}
}

func TestTopAndOtherTable(t *testing.T) {
	tab := NewTimeTable()
	d1 := date.New(2023, time.January, 1)
	d2 := date.New(2023, time.February, 1)
	// Column totals: Rent 2000, Groceries 600, Coffee 60, Stamps 6.
	tab.Set("Rent", d1, 1000)
	tab.Set("Rent", d2, 1000)
	tab.Set("Groceries", d1, 250)
	tab.Set("Groceries", d2, 350)
	tab.Set("Coffee", d1, 30)
	tab.Set("Coffee", d2, 30)
	tab.Set("Stamps", d1, 2)
	tab.Set("Stamps", d2, 4)

	out := TopAndOtherTable(tab, 2)
	cols := out.Columns()
	want := []string{"Rent", "Groceries", OtherCategory}
	if len(cols) != len(want) {
		t.Fatalf("Columns() = %v, want %v", cols, want)
	}
	for i, c := range cols {
		if c != want[i] {
			t.Errorf("column %d = %q, want %q", i, c, want[i])
		}
	}

	// "Other" per row is the sum of the excluded columns on that row.
	if v, _ := out.Get(OtherCategory, d1); v != 32 {
		t.Errorf("Other on %s = %v, want 32", d1, v)
	}
	if v, _ := out.Get(OtherCategory, d2); v != 34 {
		t.Errorf("Other on %s = %v, want 34", d2, v)
	}

	// Row sums are preserved.
	for _, d := range tab.Dates() {
		var before, after float64
		for _, c := range tab.Columns() {
			v, _ := tab.Get(c, d)
			before += v
		}
		for _, c := range out.Columns() {
			v, _ := out.Get(c, d)
			after += v
		}
		if !approx(before, after) {
			t.Errorf("row %s sums to %v after reduction, want %v", d, after, before)
		}
	}
}
