package bookvis

import (
	"github.com/bunburya/bookvis/date"
)

// ConversionCache memoizes resolved conversion factors for the duration of a
// single top-level aggregation query. It is constructed once by the
// top-level call and passed by pointer through every recursive balance and
// conversion call, so sibling and cousin calls reuse results. It is never
// shared across unrelated queries or goroutines, and it never evicts:
// the whole cache is discarded when the query returns.
type ConversionCache struct {
	table   *PriceTable
	factors map[pair]map[date.Date]float64
}

// NewConversionCache creates an empty cache over the given price table.
func NewConversionCache(table *PriceTable) *ConversionCache {
	return &ConversionCache{
		table:   table,
		factors: make(map[pair]map[date.Date]float64),
	}
}

// Rate returns the conversion factor from one commodity to another as of a
// given date, consulting the cache before searching the price table.
// Identity conversions return 1 without touching the cache or the table.
func (c *ConversionCache) Rate(from, to *Commodity, on date.Date) (float64, error) {
	if from == to {
		return 1, nil
	}
	k := pair{from.mnemonic, to.mnemonic}
	if byDate, ok := c.factors[k]; ok {
		if factor, hit := byDate[on]; hit {
			return factor, nil
		}
	}
	factor, err := c.table.Rate(from, to, on)
	if err != nil {
		return 0, err
	}
	byDate, ok := c.factors[k]
	if !ok {
		byDate = make(map[date.Date]float64)
		c.factors[k] = byDate
	}
	byDate[on] = factor
	return factor, nil
}
