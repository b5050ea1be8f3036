package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/bunburya/bookvis/date"
)

type historyCmd struct {
	accounts string
	group    string
	currency string
	start    string
	end      string
	step     int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display aggregate balance over time" }
func (*historyCmd) Usage() string {
	return `history (-a <accounts> | -g <group>) -from <date> [-to <date>] [-step <days>] [-c <currency>]

  Displays the aggregate balance of a set of accounts at regular intervals.
  Accounts come either from a comma-separated list of full names or from a
  named group (assets, liabilities, cash, non_cash, expenses, net) in the
  groups file.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accounts, "a", "", "comma-separated full account names")
	f.StringVar(&c.group, "g", "", "account group name from the groups file")
	f.StringVar(&c.currency, "c", "", "currency to express balances in")
	f.StringVar(&c.start, "from", "", "first date in the period")
	f.StringVar(&c.end, "to", "", "end of the period, excluded (default: today)")
	f.IntVar(&c.step, "step", 7, "interval between reported values, in days")
}

// groupAccounts resolves a group name against the groups file.
func groupAccounts(name string) ([]string, error) {
	g, err := DecodeGroups()
	if err != nil {
		return nil, err
	}
	switch name {
	case "assets":
		return g.Assets, nil
	case "liabilities":
		return g.Liabilities, nil
	case "cash":
		return g.Cash, nil
	case "non_cash":
		return g.NonCash, nil
	case "expenses":
		return g.Expenses, nil
	case "net":
		return append(append([]string{}, g.Assets...), g.Liabilities...), nil
	default:
		return nil, fmt.Errorf("unknown account group %q", name)
	}
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.accounts == "") == (c.group == "") {
		fmt.Fprintln(os.Stderr, "either -a or -g must be provided")
		return subcommands.ExitUsageError
	}
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "-from is required")
		return subcommands.ExitUsageError
	}
	start, err := date.Parse(c.start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	end := date.Today()
	if c.end != "" {
		if end, err = date.Parse(c.end); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	var names []string
	if c.accounts != "" {
		names = strings.Split(c.accounts, ",")
	} else {
		if names, err = groupAccounts(c.group); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
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

	series, err := analysis.AggBalanceOverTime(names, start, end, c.step, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Date\t\tBalance\n")
	for on, v := range series.Values() {
		fmt.Printf("%s\t%.2f\n", on, v)
	}
	return subcommands.ExitSuccess
}
