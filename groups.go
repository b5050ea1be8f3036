package bookvis

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bunburya/bookvis/date"
)

// Groups names sets of accounts by their full colon-delimited paths,
// grouping them into the semantic categories the reports are built from.
// The lists live outside the ledger, in a YAML file maintained by hand.
type Groups struct {
	Assets       []string            `yaml:"assets"`
	Liabilities  []string            `yaml:"liabilities"`
	Cash         []string            `yaml:"cash"`
	NonCash      []string            `yaml:"non_cash"`
	Expenses     []string            `yaml:"expenses"`
	Institutions map[string][]string `yaml:"institutions"`
}

// LoadGroups reads an account-group configuration from a YAML file.
func LoadGroups(path string) (*Groups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read groups file: %w", err)
	}
	var g Groups
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse groups file %q: %w", path, err)
	}
	return &g, nil
}

// Validate checks that every account path in the groups resolves against the
// book's account tree.
func (g *Groups) Validate(book *Book) error {
	for _, names := range [][]string{g.Assets, g.Liabilities, g.Cash, g.NonCash, g.Expenses} {
		for _, name := range names {
			if _, err := book.Account(name); err != nil {
				return err
			}
		}
	}
	for _, names := range g.Institutions {
		for _, name := range names {
			if _, err := book.Account(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// NetAssetsOverTime returns net asset value (assets plus liabilities, which
// carry a negative raw balance) over time, in the given currency.
func (a *Analysis) NetAssetsOverTime(g *Groups, start, end date.Date, step int, currency string) (*date.History[float64], error) {
	names := append(append([]string{}, g.Assets...), g.Liabilities...)
	return a.AggBalanceOverTime(names, start, end, step, currency)
}

// CashVsNonCashOverTime returns total cash and non-cash assets over time as
// a two-column table.
func (a *Analysis) CashVsNonCashOverTime(g *Groups, start, end date.Date, step int, currency string) (*TimeTable, error) {
	cash, err := a.AggBalanceOverTime(g.Cash, start, end, step, currency)
	if err != nil {
		return nil, err
	}
	nonCash, err := a.AggBalanceOverTime(g.NonCash, start, end, step, currency)
	if err != nil {
		return nil, err
	}
	table := NewTimeTable()
	for d, v := range cash.Values() {
		table.Set("Cash", d, v)
	}
	for d, v := range nonCash.Values() {
		table.Set("Non-Cash", d, v)
	}
	return table, nil
}

// AmountPerInstitution returns the total value held with each institution as
// of at, in the given currency.
func (a *Analysis) AmountPerInstitution(g *Groups, at date.Date, currency string) (*Series, error) {
	out := NewSeries()
	for _, institution := range slices.Sorted(maps.Keys(g.Institutions)) {
		total, err := a.AggBalance(g.Institutions[institution], currency, at)
		if err != nil {
			return nil, err
		}
		out.Set(institution, total)
	}
	return out, nil
}
