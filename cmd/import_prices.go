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

type importPricesCmd struct {
	file string
	date string
}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "import security prices from a CSV export" }
func (*importPricesCmd) Usage() string {
	return `import-prices -f <csv-file> [-d <date>]

  Imports security prices from a CSV export with "Business" and "Current
  price" columns, skipping prices unchanged since the last stored one, and
  rewrites the book file with the new prices.
`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "path to the CSV file")
	f.StringVar(&c.date, "d", "", "effective date of the prices (default: today)")
}

func (c *importPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "-f is required")
		return subcommands.ExitUsageError
	}
	on := date.Today()
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	csvFile, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV file %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer csvFile.Close()

	changes, err := bookvis.ImportPricesCSV(book, csvFile, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing prices: %v\n", err)
		return subcommands.ExitFailure
	}
	for security, change := range changes {
		fmt.Printf("%s\t%.4f -> %.4f\n", security, change.Old, change.New)
	}

	out, err := os.Create(ledgerFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing book file %q: %v\n", ledgerFile(), err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := bookvis.EncodeBook(out, book); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing book file %q: %v\n", ledgerFile(), err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d price change(s) into %s\n", len(changes), ledgerFile())
	return subcommands.ExitSuccess
}
