// Package ecb reads the historical reference exchange rates published by the
// European Central Bank (the eurofxref-hist XML file) and answers currency
// pair queries over date ranges.
//
// This is a best-effort source feeding exploratory charts, so it follows a
// deliberately more lenient error policy than the balance engine: a missing
// rate on a single date is logged as a warning and that date is omitted from
// the result, instead of failing the whole query.
package ecb

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bunburya/bookvis"
	"github.com/bunburya/bookvis/date"
)

// URL is the address of the full historical exchange rate file.
const URL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-hist.xml"

// Day holds the reference rates from EUR to other currencies on one date.
type Day struct {
	Date  date.Date
	rates map[string]float64
}

// Document is a parsed exchange rate history file.
type Document struct {
	days []Day
}

// Days returns the per-date rate sets, in file order.
func (d *Document) Days() []Day { return d.days }

type xmlRate struct {
	Currency string  `xml:"currency,attr"`
	Rate     float64 `xml:"rate,attr"`
}

type xmlDay struct {
	Time  string    `xml:"time,attr"`
	Rates []xmlRate `xml:"Cube"`
}

type xmlEnvelope struct {
	Cube *struct {
		Days []xmlDay `xml:"Cube"`
	} `xml:"Cube"`
}

// Parse reads an eurofxref-hist XML document.
func Parse(r io.Reader) (*Document, error) {
	var envelope xmlEnvelope
	if err := xml.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, &bookvis.BadDataError{Reason: fmt.Sprintf("cannot parse ECB XML: %v", err)}
	}
	if envelope.Cube == nil {
		return nil, &bookvis.BadDataError{Reason: `could not find top-level "Cube" element within XML root`}
	}
	doc := &Document{}
	for _, d := range envelope.Cube.Days {
		on, err := date.Parse(d.Time)
		if err != nil {
			return nil, &bookvis.BadDataError{Reason: fmt.Sprintf("bad date %q in ECB XML: %v", d.Time, err)}
		}
		day := Day{Date: on, rates: make(map[string]float64, len(d.Rates))}
		for _, r := range d.Rates {
			day.rates[r.Currency] = r.Rate
		}
		doc.days = append(doc.days, day)
	}
	return doc, nil
}

// RateFromEUR returns the rate from EUR to the given currency on this day.
func (d Day) RateFromEUR(currency string) (float64, error) {
	rate, ok := d.rates[currency]
	if !ok {
		return 0, &bookvis.PriceNotFoundError{From: "EUR", To: currency, On: d.Date}
	}
	return rate, nil
}

// Rate returns the rate between two currencies on this day. Rates not
// involving EUR are crossed through EUR: the rate to the target currency
// divided by the rate to the source currency.
func (d Day) Rate(to, from string) (float64, error) {
	if to == from {
		return 1, nil
	}
	if from == "EUR" {
		return d.RateFromEUR(to)
	}
	if to == "EUR" {
		rate, err := d.RateFromEUR(from)
		if err != nil {
			return 0, err
		}
		return 1 / rate, nil
	}
	toRate, err := d.RateFromEUR(to)
	if err != nil {
		return 0, err
	}
	fromRate, err := d.RateFromEUR(from)
	if err != nil {
		return 0, err
	}
	return toRate / fromRate, nil
}

// RateRange returns the rate between two currencies for each published date
// d with start < d ≤ end, skipping any date in exclude. A date whose rate
// cannot be computed is logged as a warning and omitted; this collaborator
// serves charts, not authoritative balances.
func (doc *Document) RateRange(start, end date.Date, to, from string, exclude map[date.Date]bool) *date.History[float64] {
	results := &date.History[float64]{}
	for _, day := range doc.days {
		if !day.Date.After(start) || day.Date.After(end) || exclude[day.Date] {
			continue
		}
		rate, err := day.Rate(to, from)
		if err != nil {
			log.Printf("warning: %v", err)
			continue
		}
		results.Append(day.Date, rate)
	}
	return results
}

// Published documents are memoized in-process for a day: the ECB file only
// changes once per business day and charts re-query it constantly.
var documents = gocache.New(24*time.Hour, time.Hour)

// Fetch downloads and parses the exchange rate history at the given URL,
// reusing a document fetched earlier the same day.
func Fetch(url string) (*Document, error) {
	if cached, ok := documents.Get(url); ok {
		return cached.(*Document), nil
	}
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch ECB rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch ECB rates from %s: %s", url, resp.Status)
	}
	doc, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	documents.Set(url, doc, gocache.DefaultExpiration)
	return doc, nil
}

// History returns the exchange rate for a currency pair, in the format
// "TO/FROM" (e.g. "EUR/GBP"), on each published date between start and end.
func History(pair string, start, end date.Date) (*date.History[float64], error) {
	to, from, ok := strings.Cut(pair, "/")
	if !ok {
		return nil, &bookvis.BadDataError{Reason: fmt.Sprintf("bad currency pair %q, want \"TO/FROM\"", pair)}
	}
	if err := bookvis.ValidateCurrency(to); err != nil {
		return nil, err
	}
	if err := bookvis.ValidateCurrency(from); err != nil {
		return nil, err
	}
	doc, err := Fetch(URL)
	if err != nil {
		return nil, err
	}
	return doc.RateRange(start, end, to, from, nil), nil
}
