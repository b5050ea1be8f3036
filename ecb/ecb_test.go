package ecb

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/bunburya/bookvis"
	"github.com/bunburya/bookvis/date"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2023-01-03">
			<Cube currency="USD" rate="1.0545"/>
			<Cube currency="GBP" rate="0.8827"/>
		</Cube>
		<Cube time="2023-01-02">
			<Cube currency="USD" rate="1.0683"/>
		</Cube>
	</Cube>
</gesmes:Envelope>
`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestParse(t *testing.T) {
	doc := parseSample(t)
	days := doc.Days()
	if len(days) != 2 {
		t.Fatalf("Parse() found %d days, want 2", len(days))
	}
	if days[0].Date != date.New(2023, time.January, 3) {
		t.Errorf("first day is %s, want 2023-01-03", days[0].Date)
	}
	rate, err := days[0].RateFromEUR("USD")
	if err != nil {
		t.Fatalf("RateFromEUR(USD) error = %v", err)
	}
	if rate != 1.0545 {
		t.Errorf("RateFromEUR(USD) = %v, want 1.0545", rate)
	}
}

func TestParse_MissingCube(t *testing.T) {
	input := `<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01"><gesmes:subject>x</gesmes:subject></gesmes:Envelope>`
	_, err := Parse(strings.NewReader(input))
	var bad *bookvis.BadDataError
	if !errors.As(err, &bad) {
		t.Fatalf("Parse() error = %v, want a BadDataError", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("not xml"))
	var bad *bookvis.BadDataError
	if !errors.As(err, &bad) {
		t.Fatalf("Parse() error = %v, want a BadDataError", err)
	}
}

func TestDay_Rate(t *testing.T) {
	day := parseSample(t).Days()[0]

	testCases := []struct {
		name     string
		to, from string
		want     float64
	}{
		{"Identity", "USD", "USD", 1},
		{"From EUR", "USD", "EUR", 1.0545},
		{"To EUR", "EUR", "USD", 1 / 1.0545},
		{"Cross through EUR", "GBP", "USD", 0.8827 / 1.0545},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := day.Rate(tc.to, tc.from)
			if err != nil {
				t.Fatalf("Rate(%s, %s) error = %v", tc.to, tc.from, err)
			}
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Rate(%s, %s) = %v, want %v", tc.to, tc.from, got, tc.want)
			}
		})
	}
}

func TestDay_RateUnknownCurrency(t *testing.T) {
	day := parseSample(t).Days()[0]
	_, err := day.Rate("JPY", "EUR")
	var pnf *bookvis.PriceNotFoundError
	if !errors.As(err, &pnf) {
		t.Fatalf("Rate(JPY, EUR) error = %v, want a PriceNotFoundError", err)
	}
	if pnf.From != "EUR" || pnf.To != "JPY" {
		t.Errorf("PriceNotFoundError names (%s, %s), want (EUR, JPY)", pnf.From, pnf.To)
	}
}

func TestDocument_RateRange(t *testing.T) {
	doc := parseSample(t)
	jan2 := date.New(2023, time.January, 2)
	jan3 := date.New(2023, time.January, 3)

	// The range is (start, end]: start itself is excluded.
	series := doc.RateRange(jan2, jan3, "USD", "EUR", nil)
	if series.Len() != 1 {
		t.Fatalf("RateRange() has %d points on %v, want 1", series.Len(), series.Days())
	}
	if v, ok := series.Get(jan3); !ok || v != 1.0545 {
		t.Errorf("rate on 2023-01-03 = %v (ok=%v), want 1.0545", v, ok)
	}

	series = doc.RateRange(jan2.Add(-1), jan3, "USD", "EUR", nil)
	if series.Len() != 2 {
		t.Errorf("RateRange() over both days has %d points, want 2", series.Len())
	}
}

func TestDocument_RateRangeSkipsMissingRates(t *testing.T) {
	doc := parseSample(t)

	// GBP is only published on 2023-01-03; 2023-01-02 is skipped with a
	// warning rather than failing the query.
	series := doc.RateRange(date.New(2023, time.January, 1), date.New(2023, time.January, 31), "GBP", "EUR", nil)
	if series.Len() != 1 {
		t.Fatalf("RateRange() has %d points on %v, want 1", series.Len(), series.Days())
	}
	if _, ok := series.Get(date.New(2023, time.January, 3)); !ok {
		t.Error("RateRange() is missing the 2023-01-03 rate")
	}
}

func TestHistory_RejectsBadPair(t *testing.T) {
	start := date.New(2023, time.January, 1)
	end := date.New(2023, time.January, 31)

	// Validation happens before any download is attempted.
	testCases := []struct {
		name string
		pair string
	}{
		{"Unknown target currency", "XXQ/EUR"},
		{"Unknown source currency", "EUR/XXQ"},
		{"No separator", "EURGBP"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := History(tc.pair, start, end); err == nil {
				t.Errorf("History(%q) succeeded, want error", tc.pair)
			}
		})
	}
}

func TestDocument_RateRangeExclude(t *testing.T) {
	doc := parseSample(t)
	jan3 := date.New(2023, time.January, 3)

	exclude := map[date.Date]bool{jan3: true}
	series := doc.RateRange(date.New(2023, time.January, 1), date.New(2023, time.January, 31), "USD", "EUR", exclude)
	if _, ok := series.Get(jan3); ok {
		t.Error("RateRange() returned a rate for an excluded date")
	}
}
