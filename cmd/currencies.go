package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bunburya/bookvis"
	"github.com/bunburya/bookvis/date"
)

type currenciesCmd struct {
	group    string
	currency string
	date     string
}

func (*currenciesCmd) Name() string     { return "currencies" }
func (*currenciesCmd) Synopsis() string { return "display balances broken down by currency" }
func (*currenciesCmd) Usage() string {
	return `currencies [-g <group>] [-d <date>] [-c <currency>]

  Displays the aggregate balance of an account group broken down by the
  native currency of each account (default group: cash).
`
}

func (c *currenciesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "g", "cash", "account group name from the groups file")
	f.StringVar(&c.currency, "c", "", "collapse all entries into this currency")
	f.StringVar(&c.date, "d", "", "date to report balances on (default: now)")
}

func (c *currenciesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var at date.Date
	if c.date != "" {
		var err error
		if at, err = date.Parse(c.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	if c.currency != "" {
		if err := bookvis.ValidateCurrency(c.currency); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	names, err := groupAccounts(c.group)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	analysis, err := DecodeAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	series, err := analysis.AggBalanceByCurrency(names, at, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}
	for code, v := range series.Values() {
		fmt.Printf("%s\t%.2f\n", code, v)
	}
	return subcommands.ExitSuccess
}
