package date

import (
	"slices"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		in        string
		want      Date
		expectErr bool
	}{
		{"ISO format", "2023-01-05", New(2023, time.January, 5), false},
		{"Permissive format", "2023-1-5", New(2023, time.January, 5), false},
		{"Not a date", "yesterday", Date{}, true},
		{"Empty", "", Date{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.expectErr {
				t.Fatalf("Parse(%q) error = %v, expectErr %v", tc.in, err, tc.expectErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNew_Normalizes(t *testing.T) {
	got := New(2023, time.January, 32)
	want := New(2023, time.February, 1)
	if got != want {
		t.Errorf("New(2023, January, 32) = %v, want %v", got, want)
	}
}

func TestDate_Sub(t *testing.T) {
	a := New(2023, time.January, 10)
	b := New(2023, time.January, 3)
	if days := a.Sub(b); days != 7 {
		t.Errorf("Sub() = %d, want 7", days)
	}
	if days := b.Sub(a); days != -7 {
		t.Errorf("Sub() = %d, want -7", days)
	}
	if days := a.Sub(a); days != 0 {
		t.Errorf("Sub() = %d, want 0", days)
	}
}

func TestSeq(t *testing.T) {
	start := New(2023, time.January, 1)

	testCases := []struct {
		name string
		end  Date
		step int
		want []Date
	}{
		{
			name: "Weekly steps, end excluded",
			end:  New(2023, time.January, 22),
			step: 7,
			want: []Date{start, start.Add(7), start.Add(14)},
		},
		{
			name: "End exactly on a step is excluded",
			end:  New(2023, time.January, 15),
			step: 7,
			want: []Date{start, start.Add(7)},
		},
		{
			name: "Start equals end",
			end:  start,
			step: 1,
			want: nil,
		},
		{
			name: "Zero step",
			end:  New(2023, time.February, 1),
			step: 0,
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []Date
			for d := range Seq(start, tc.end, tc.step) {
				got = append(got, d)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("Seq() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := New(2023, time.March, 7)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"2023-03-07"` {
		t.Errorf("MarshalJSON() = %s, want %q", data, `"2023-03-07"`)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
