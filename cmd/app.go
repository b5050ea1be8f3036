// Package cmd implements the CLI application to query a book.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bunburya/bookvis"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balanceCmd{}, "balances")
	c.Register(&historyCmd{}, "balances")
	c.Register(&currenciesCmd{}, "balances")
	c.Register(&expensesCmd{}, "balances")

	c.Register(&fxCmd{}, "prices")
	c.Register(&importPricesCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFlag = flag.String("ledger-file", "", "path to the book file (JSONL).\n If missing, $BOOKVIS_LEDGER is used, then \"book.jsonl\".")
var groupsFlag = flag.String("groups-file", "", "path to the account groups file (YAML).\n If missing, $BOOKVIS_GROUPS is used, then \"groups.yaml\".")
var currencyFlag = flag.String("currency", "", "default reporting currency.\n If missing, $BOOKVIS_CURRENCY is used.")

func ledgerFile() string {
	if *ledgerFlag == "" {
		*ledgerFlag = os.Getenv("BOOKVIS_LEDGER")
	}
	if *ledgerFlag == "" {
		*ledgerFlag = "book.jsonl"
	}
	return *ledgerFlag
}

func groupsFile() string {
	if *groupsFlag == "" {
		*groupsFlag = os.Getenv("BOOKVIS_GROUPS")
	}
	if *groupsFlag == "" {
		*groupsFlag = "groups.yaml"
	}
	return *groupsFlag
}

// reportingCurrency returns the currency from the command-specific flag, the
// global flag, or the environment, in that order. A non-empty currency must
// be a known ISO 4217 code.
func reportingCurrency(local string) (string, error) {
	if local == "" {
		if *currencyFlag == "" {
			*currencyFlag = os.Getenv("BOOKVIS_CURRENCY")
		}
		local = *currencyFlag
	}
	if local != "" {
		if err := bookvis.ValidateCurrency(local); err != nil {
			return "", err
		}
	}
	return local, nil
}

// DecodeBook loads the book from the app ledger file.
func DecodeBook() (*bookvis.Book, error) {
	f, err := os.Open(ledgerFile())
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", ledgerFile(), err)
	}
	defer f.Close()
	return bookvis.DecodeBook(f)
}

// DecodeAnalysis loads the book and wraps it in an analysis layer.
func DecodeAnalysis() (*bookvis.Analysis, error) {
	book, err := DecodeBook()
	if err != nil {
		return nil, err
	}
	return bookvis.NewAnalysis(book), nil
}

// DecodeGroups loads the account groups from the app groups file.
func DecodeGroups() (*bookvis.Groups, error) {
	return bookvis.LoadGroups(groupsFile())
}
