package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/bunburya/bookvis"
	"github.com/bunburya/bookvis/date"
)

type expensesCmd struct {
	currency string
	start    string
	end      string
	step     int
	top      int
}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "display expenses by category over time" }
func (*expensesCmd) Usage() string {
	return `expenses -from <date> [-to <date>] [-step <days>] [-top <n>] [-c <currency>]

  Displays the change in each expense account's balance per interval, with
  the smallest categories combined into "Other". Expense accounts come from
  the groups file.
`
}

func (c *expensesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "currency to express amounts in")
	f.StringVar(&c.start, "from", "", "first date in the period")
	f.StringVar(&c.end, "to", "", "end of the period, excluded (default: today)")
	f.IntVar(&c.step, "step", 7, "interval between reported values, in days")
	f.IntVar(&c.top, "top", 5, "number of categories to display separately")
}

func (c *expensesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	currency, err := reportingCurrency(c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	groups, err := DecodeGroups()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading groups: %v\n", err)
		return subcommands.ExitFailure
	}
	analysis, err := DecodeAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	table, err := analysis.DiffBalancesOverTime(groups.Expenses, start, end, c.step, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing expenses: %v\n", err)
		return subcommands.ExitFailure
	}
	table = bookvis.TopAndOtherTable(table, c.top)

	columns := table.Columns()
	fmt.Printf("Date\t\t%s\n", strings.Join(columns, "\t"))
	for _, on := range table.Dates() {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			v, _ := table.Get(col, on)
			row = append(row, fmt.Sprintf("%.2f", v))
		}
		fmt.Printf("%s\t%s\n", on, strings.Join(row, "\t"))
	}
	return subcommands.ExitSuccess
}
