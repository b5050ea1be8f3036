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

type balanceCmd struct {
	account  string
	currency string
	date     string
	byCur    bool
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display an account balance as of a date" }
func (*balanceCmd) Usage() string {
	return `balance -a <account> [-c <currency>] [-d <date>] [-by-currency]

  Displays the balance of an account (including its children) as of a date,
  optionally converted to a reporting currency or broken down by currency.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "full account name, colon-delimited (e.g. \"Assets:Bank:Current Account\")")
	f.StringVar(&c.currency, "c", "", "currency to express the balance in")
	f.StringVar(&c.date, "d", "", "date to report the balance on (default: now)")
	f.BoolVar(&c.byCur, "by-currency", false, "break the balance down by native currency")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-a is required")
		return subcommands.ExitUsageError
	}
	var at date.Date
	if c.date != "" {
		var err error
		if at, err = date.Parse(c.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	currency, err := reportingCurrency(c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	analysis, err := DecodeAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.byCur {
		series, err := analysis.BalanceByCurrency(c.account, at, currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing balance: %v\n", err)
			return subcommands.ExitFailure
		}
		for code, v := range series.Values() {
			fmt.Printf("%s\t%.2f\n", code, v)
		}
		return subcommands.ExitSuccess
	}

	book := analysis.Book()
	acc, err := book.Account(c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var target *bookvis.Commodity
	if currency != "" {
		if target, err = book.Commodity(currency); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	balance, err := book.Balance(acc, at, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balance: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%.2f\n", balance)
	return subcommands.ExitSuccess
}
