package bookvis

import (
	"fmt"

	"github.com/bunburya/bookvis/date"
)

// Analysis computes presentation-ready views over a Book: per-account
// snapshots, aggregate balances over time, balance changes and currency
// breakdowns.
//
// A naming convention guide for methods:
//
//   - methods beginning with "AggBalance" give the aggregate balance of a
//     list of accounts.
//   - methods beginning with "Balances" give the balance of each account,
//     separately.
//   - methods beginning with "Balance" give the balance of a single account.
//
// Target currencies arrive as mnemonic strings at this boundary and are
// resolved to commodity handles once, before any recursion. A
// PriceNotFoundError raised anywhere below propagates uncaught: aggregation
// never silently skips an account it cannot price.
type Analysis struct {
	book *Book
}

// NewAnalysis creates an analysis layer over the given book.
func NewAnalysis(book *Book) *Analysis {
	return &Analysis{book: book}
}

// Book returns the underlying book.
func (a *Analysis) Book() *Book { return a.book }

// accounts resolves a list of full account names.
func (a *Analysis) accounts(names []string) ([]*Account, error) {
	accs := make([]*Account, 0, len(names))
	for _, name := range names {
		acc, err := a.book.Account(name)
		if err != nil {
			return nil, err
		}
		accs = append(accs, acc)
	}
	return accs, nil
}

// Balances returns the balance of each named account as of at, keyed by the
// account's (short) name. An empty currency leaves each balance in the
// account's own commodity.
func (a *Analysis) Balances(names []string, at date.Date, currency string) (*Series, error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return nil, err
	}
	accs, err := a.accounts(names)
	if err != nil {
		return nil, err
	}
	cache := NewConversionCache(a.book.prices)
	out := NewSeries()
	for _, acc := range accs {
		balance, err := a.book.balance(acc, at, cur, true, true, cache)
		if err != nil {
			return nil, err
		}
		out.Set(acc.Name(), balance)
	}
	return out, nil
}

// AggBalance returns the total balance of all named accounts, in the given
// currency, as of at. Natural signs are not applied, so assets and
// liabilities net off the way raw ledger arithmetic dictates.
func (a *Analysis) AggBalance(names []string, currency string, at date.Date) (float64, error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return 0, err
	}
	accs, err := a.accounts(names)
	if err != nil {
		return 0, err
	}
	cache := NewConversionCache(a.book.prices)
	return a.aggBalance(accs, cur, at, cache)
}

func (a *Analysis) aggBalance(accs []*Account, cur *Commodity, at date.Date, cache *ConversionCache) (float64, error) {
	var total float64
	for _, acc := range accs {
		balance, err := a.book.balance(acc, at, cur, true, false, cache)
		if err != nil {
			return 0, err
		}
		total += balance
	}
	return total, nil
}

// AggBalanceOverTime evaluates AggBalance at each date in [start, end)
// advancing by step days, sharing one conversion cache across the whole
// query.
func (a *Analysis) AggBalanceOverTime(names []string, start, end date.Date, step int, currency string) (*date.History[float64], error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return nil, err
	}
	accs, err := a.accounts(names)
	if err != nil {
		return nil, err
	}
	cache := NewConversionCache(a.book.prices)
	series := &date.History[float64]{}
	for d := range date.Seq(start, end, step) {
		total, err := a.aggBalance(accs, cur, d, cache)
		if err != nil {
			return nil, err
		}
		series.Append(d, total)
	}
	return series, nil
}

// BalanceOverTime returns the balance of a single account at each date in
// [start, end) advancing by step days.
func (a *Analysis) BalanceOverTime(name string, start, end date.Date, step int, currency string) (*date.History[float64], error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return nil, err
	}
	acc, err := a.book.Account(name)
	if err != nil {
		return nil, err
	}
	cache := NewConversionCache(a.book.prices)
	series := &date.History[float64]{}
	for d := range date.Seq(start, end, step) {
		balance, err := a.book.balance(acc, d, cur, true, true, cache)
		if err != nil {
			return nil, err
		}
		series.Append(d, balance)
	}
	return series, nil
}

// BalancesOverTime returns the balance of each named account over time, one
// column per account.
func (a *Analysis) BalancesOverTime(names []string, start, end date.Date, step int, currency string) (*TimeTable, error) {
	table := NewTimeTable()
	for _, name := range names {
		series, err := a.BalanceOverTime(name, start, end, step, currency)
		if err != nil {
			return nil, err
		}
		acc, err := a.book.Account(name)
		if err != nil {
			return nil, err
		}
		for d, v := range series.Values() {
			table.Set(acc.Name(), d, v)
		}
	}
	return table, nil
}

// DiffBalance returns the change in the named account's balance between
// start and end, expressed in the given currency (the account's own
// commodity if empty).
//
// Where the account has sub-accounts in different currencies, the difference
// is computed per sub-balance in its native currency and everything is
// converted at the exchange rate closest to end. Balance changes resulting
// solely from FX-rate movements between the two dates are therefore not
// reflected.
func (a *Analysis) DiffBalance(name string, start, end date.Date, currency string) (float64, error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return 0, err
	}
	acc, err := a.book.Account(name)
	if err != nil {
		return 0, err
	}
	cache := NewConversionCache(a.book.prices)
	return a.diffBalance(acc, start, end, cur, cache)
}

func (a *Analysis) diffBalance(acc *Account, start, end date.Date, cur *Commodity, cache *ConversionCache) (float64, error) {
	if cur == nil {
		cur = acc.commodity
	}
	if cur == nil {
		return 0, fmt.Errorf("account %q has no commodity and no target currency was given", acc.name)
	}
	startBal, err := a.book.balanceByCurrency(acc, start, nil, cache)
	if err != nil {
		return 0, err
	}
	endBal, err := a.book.balanceByCurrency(acc, end, nil, cache)
	if err != nil {
		return 0, err
	}
	diff := endBal.Sub(startBal)

	var total float64
	for code, v := range diff.Values() {
		from, err := a.book.Commodity(code)
		if err != nil {
			return 0, err
		}
		factor, err := cache.Rate(from, cur, end)
		if err != nil {
			return 0, err
		}
		total += factor * v
	}
	return total, nil
}

// DiffBalanceOverTime reports the change in the named account's balance over
// consecutive step-day intervals between start and end. Each reported date d
// carries the change over [d-step, d]; the first reported date is
// start+step.
func (a *Analysis) DiffBalanceOverTime(name string, start, end date.Date, step int, currency string) (*date.History[float64], error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return nil, err
	}
	acc, err := a.book.Account(name)
	if err != nil {
		return nil, err
	}
	cache := NewConversionCache(a.book.prices)
	series := &date.History[float64]{}
	for d := range date.Seq(start.Add(step), end, step) {
		diff, err := a.diffBalance(acc, d.Add(-step), d, cur, cache)
		if err != nil {
			return nil, err
		}
		series.Append(d, diff)
	}
	return series, nil
}

// DiffBalancesOverTime returns the change in each named account's balance
// over time, one column per account.
func (a *Analysis) DiffBalancesOverTime(names []string, start, end date.Date, step int, currency string) (*TimeTable, error) {
	table := NewTimeTable()
	for _, name := range names {
		series, err := a.DiffBalanceOverTime(name, start, end, step, currency)
		if err != nil {
			return nil, err
		}
		acc, err := a.book.Account(name)
		if err != nil {
			return nil, err
		}
		for d, v := range series.Values() {
			table.Set(acc.Name(), d, v)
		}
	}
	return table, nil
}

// BalanceByCurrency returns the balance of the named account and its subtree
// as of at, broken down by native currency code (collapsed into one entry
// when currency is given).
func (a *Analysis) BalanceByCurrency(name string, at date.Date, currency string) (*Series, error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return nil, err
	}
	acc, err := a.book.Account(name)
	if err != nil {
		return nil, err
	}
	return a.book.BalanceByCurrency(acc, at, cur)
}

// AggBalanceByCurrency returns the aggregate balance of all named accounts,
// broken down by currency.
func (a *Analysis) AggBalanceByCurrency(names []string, at date.Date, currency string) (*Series, error) {
	cur, err := a.book.currency(currency)
	if err != nil {
		return nil, err
	}
	accs, err := a.accounts(names)
	if err != nil {
		return nil, err
	}
	cache := NewConversionCache(a.book.prices)
	out := NewSeries()
	for _, acc := range accs {
		sub, err := a.book.balanceByCurrency(acc, at, cur, cache)
		if err != nil {
			return nil, err
		}
		out.AddSeries(sub)
	}
	return out, nil
}
