package bookvis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bunburya/bookvis/date"
)

// currencySymbols maps the currency symbols that appear in exported price
// CSVs to ISO 4217 codes.
var currencySymbols = map[string]string{
	"€": "EUR",
	"£": "GBP",
	"$": "USD",
}

// PriceChange records an update to a security's price during a CSV import.
type PriceChange struct {
	Old float64
	New float64
}

// ImportPricesCSV reads security prices from a CSV export (columns
// "Business" and "Current price", the latter a currency symbol followed by a
// value, e.g. "€1.23") and records them in the book's price table as of the
// given date. A price equal to the security's most recent stored price is
// skipped. It returns the changes applied, keyed by security mnemonic.
func ImportPricesCSV(book *Book, r io.Reader, on date.Date) (map[string]PriceChange, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, &BadDataError{Reason: fmt.Sprintf("cannot read CSV header: %v", err)}
	}
	nameCol, priceCol := -1, -1
	for i, col := range header {
		switch col {
		case "Business":
			nameCol = i
		case "Current price":
			priceCol = i
		}
	}
	if nameCol < 0 || priceCol < 0 {
		return nil, &BadDataError{Reason: `CSV is missing a "Business" or "Current price" column`}
	}

	changes := make(map[string]PriceChange)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &BadDataError{Reason: fmt.Sprintf("cannot read CSV row: %v", err)}
		}

		security, err := book.Commodity(row[nameCol])
		if err != nil {
			return nil, &BadDataError{Reason: fmt.Sprintf("unknown security %q in CSV", row[nameCol])}
		}
		currency, value, err := parseMoney(row[priceCol])
		if err != nil {
			return nil, err
		}
		cur, err := book.Commodity(currency)
		if err != nil {
			return nil, err
		}

		if _, latest, ok := book.prices.Latest(security, cur); ok {
			if latest == value {
				continue // Price unchanged; don't record a redundant entry.
			}
			changes[security.mnemonic] = PriceChange{Old: latest, New: value}
		} else {
			changes[security.mnemonic] = PriceChange{New: value}
		}
		book.prices.Add(security, cur, on, value)
	}
	return changes, nil
}

// parseMoney splits a symbol-prefixed money string like "€1.23" into an ISO
// currency code and a value.
func parseMoney(s string) (currency string, value float64, err error) {
	for symbol, code := range currencySymbols {
		if rest, ok := strings.CutPrefix(s, symbol); ok {
			v, err := strconv.ParseFloat(strings.ReplaceAll(rest, ",", ""), 64)
			if err != nil {
				return "", 0, &BadDataError{Reason: fmt.Sprintf("malformed money value %q", s)}
			}
			return code, v, nil
		}
	}
	return "", 0, &BadDataError{Reason: fmt.Sprintf("money value %q has no recognised currency symbol", s)}
}
