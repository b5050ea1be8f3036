package bookvis

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bunburya/bookvis/date"
)

// Balance returns the balance of acc and its children as of at, expressed in
// the target commodity, with the account's natural sign applied.
//
// A zero at means "as of now": every split counts, and conversions use
// today's closest price. A nil target means the account's own commodity, in
// which case no conversion happens at the top level (children in other
// commodities are still converted into it).
func (b *Book) Balance(acc *Account, at date.Date, target *Commodity) (float64, error) {
	cache := NewConversionCache(b.prices)
	return b.balance(acc, at, target, true, true, cache)
}

// balance is the recursive worker behind Balance. The cache is created once
// by the public entry point and threaded through every recursive call.
//
// naturalSign is false for child contributions so that they aggregate into
// the parent as positive amounts before the parent's own sign is applied.
func (b *Book) balance(acc *Account, at date.Date, target *Commodity, recurse, naturalSign bool, cache *ConversionCache) (float64, error) {
	native := acc.commodity
	if target == nil {
		target = native
	}

	sum := decimal.Zero
	for _, sp := range acc.splits {
		if at.IsZero() || !sp.transaction.postDate.After(at) {
			sum = sum.Add(sp.quantity)
		}
	}
	balance := sum.InexactFloat64()

	if target != native {
		factor, err := b.conversionFactor(acc, target, at, cache)
		if err != nil {
			return 0, err
		}
		balance *= factor
	}

	if recurse {
		for _, child := range acc.children {
			cb, err := b.balance(child, at, target, true, false, cache)
			if err != nil {
				return 0, err
			}
			balance += cb
		}
	}

	if naturalSign {
		balance *= float64(acc.sign)
	}
	return balance, nil
}

// conversionFactor resolves the factor from the account's native commodity to
// target. When no direct price path exists it falls back to a two-hop
// conversion through the parent account's commodity; if either hop fails, or
// the account has no commodity-bearing parent, the original PriceNotFoundError
// is returned. The rate is never defaulted.
func (b *Book) conversionFactor(acc *Account, target *Commodity, at date.Date, cache *ConversionCache) (float64, error) {
	if acc.commodity == nil {
		return 0, fmt.Errorf("account %q has no commodity to convert from", acc.name)
	}
	on := at
	if on.IsZero() {
		on = date.Today()
	}

	factor, err := cache.Rate(acc.commodity, target, on)
	if err == nil {
		return factor, nil
	}
	var pnf *PriceNotFoundError
	if !errors.As(err, &pnf) {
		return 0, err
	}

	parent := acc.parent
	if parent == nil || parent.commodity == nil {
		// No intermediate commodity to route through (e.g. the parent is the
		// commodity-less root). Report the direct failure rather than guess.
		return 0, err
	}
	hop1, err1 := cache.Rate(acc.commodity, parent.commodity, on)
	if err1 != nil {
		return 0, err1
	}
	hop2, err2 := cache.Rate(parent.commodity, target, on)
	if err2 != nil {
		return 0, err2
	}
	return hop1 * hop2, nil
}

// BalanceByCurrency returns the balance of acc and its subtree as of at,
// broken down by each account's native currency code. No cross-currency
// conversion happens unless target is given, in which case every entry
// collapses into that single currency.
func (b *Book) BalanceByCurrency(acc *Account, at date.Date, target *Commodity) (*Series, error) {
	cache := NewConversionCache(b.prices)
	return b.balanceByCurrency(acc, at, target, cache)
}

func (b *Book) balanceByCurrency(acc *Account, at date.Date, target *Commodity, cache *ConversionCache) (*Series, error) {
	out := NewSeries()
	if acc.commodity != nil {
		own, err := b.balance(acc, at, target, false, true, cache)
		if err != nil {
			return nil, err
		}
		if own != 0 {
			code := acc.commodity.mnemonic
			if target != nil {
				code = target.mnemonic
			}
			out.Add(code, own)
		}
	}
	for _, child := range acc.children {
		sub, err := b.balanceByCurrency(child, at, target, cache)
		if err != nil {
			return nil, err
		}
		out.AddSeries(sub)
	}
	return out, nil
}
