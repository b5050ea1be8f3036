package bookvis

import (
	"github.com/bunburya/bookvis/date"
)

// pair is an ordered commodity pair, the key of the price table and the
// conversion cache.
type pair struct {
	from, to string
}

// PriceTable stores historical exchange rates between commodity pairs.
// Multiple prices may exist per pair across different dates. Prices are
// inserted by external import processes and queried read-only by the engine.
type PriceTable struct {
	rates map[pair]*date.History[float64]
}

// NewPriceTable creates an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{rates: make(map[pair]*date.History[float64])}
}

// Add records the rate from one commodity to another on a given date. A rate
// already recorded for that pair and date is overwritten.
func (pt *PriceTable) Add(from, to *Commodity, on date.Date, rate float64) {
	k := pair{from.mnemonic, to.mnemonic}
	h, ok := pt.rates[k]
	if !ok {
		h = &date.History[float64]{}
		pt.rates[k] = h
	}
	h.Append(on, rate)
}

// Latest returns the most recent recorded price for the pair.
func (pt *PriceTable) Latest(from, to *Commodity) (on date.Date, rate float64, ok bool) {
	h, exists := pt.rates[pair{from.mnemonic, to.mnemonic}]
	if !exists || h.Len() == 0 {
		return date.Date{}, 0, false
	}
	on, rate = h.Latest()
	return on, rate, true
}

// Rate returns the conversion factor from one commodity to another as of a
// given date. If no price is stored for that exact date, the stored price
// closest in time is used, searching prices recorded in the forward
// direction (from-to) and in the reverse direction (to-from, inverted).
// When both directions have a candidate, the temporally closer one wins;
// on an exact tie the forward direction is used.
func (pt *PriceTable) Rate(from, to *Commodity, on date.Date) (float64, error) {
	if from == to {
		return 1, nil
	}

	var (
		forward, reverse         float64
		forwardDist, reverseDist int
		haveForward, haveReverse bool
	)
	if h, ok := pt.rates[pair{from.mnemonic, to.mnemonic}]; ok {
		if day, rate, found := h.Nearest(on); found {
			forward, forwardDist, haveForward = rate, absDays(day, on), true
		}
	}
	if h, ok := pt.rates[pair{to.mnemonic, from.mnemonic}]; ok {
		if day, rate, found := h.Nearest(on); found {
			reverse, reverseDist, haveReverse = 1/rate, absDays(day, on), true
		}
	}

	switch {
	case !haveForward && !haveReverse:
		return 0, &PriceNotFoundError{From: from.mnemonic, To: to.mnemonic, On: on}
	case !haveReverse:
		return forward, nil
	case !haveForward:
		return reverse, nil
	case forwardDist <= reverseDist:
		return forward, nil
	default:
		return reverse, nil
	}
}

func absDays(a, b date.Date) int {
	days := a.Sub(b)
	if days < 0 {
		return -days
	}
	return days
}
