package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bunburya/bookvis/date"
	"github.com/bunburya/bookvis/ecb"
)

type fxCmd struct {
	pair  string
	start string
	end   string
}

func (*fxCmd) Name() string     { return "fx" }
func (*fxCmd) Synopsis() string { return "display historical ECB exchange rates for a pair" }
func (*fxCmd) Usage() string {
	return `fx -p <TO/FROM> -from <date> [-to <date>]

  Displays the ECB reference exchange rate for a currency pair (e.g.
  "EUR/GBP") on each published date in the range. Dates with no usable rate
  are skipped with a warning.
`
}

func (c *fxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pair, "p", "", "currency pair in the format TO/FROM")
	f.StringVar(&c.start, "from", "", "start of the date range, excluded")
	f.StringVar(&c.end, "to", "", "end of the date range, included (default: today)")
}

func (c *fxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.pair == "" || c.start == "" {
		fmt.Fprintln(os.Stderr, "-p and -from are required")
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

	series, err := ecb.History(c.pair, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rates: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Date\t\tRate\n")
	for on, v := range series.Values() {
		fmt.Printf("%s\t%.4f\n", on, v)
	}
	return subcommands.ExitSuccess
}
