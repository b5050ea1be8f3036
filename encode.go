package bookvis

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bunburya/bookvis/date"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The book is persisted as JSONL: one record per line, identified by its
// "record" field. Accounts must appear before the transactions and prices
// that reference them; EncodeBook writes them in that order.

type accountRecord struct {
	Record    string `json:"record"`
	Name      string `json:"name"` // full colon-delimited path
	Commodity string `json:"commodity,omitempty"`
	Sign      int    `json:"sign,omitempty"`
}

type splitRecord struct {
	Account  string          `json:"account"`
	Quantity decimal.Decimal `json:"quantity"`
}

type transactionRecord struct {
	Record string        `json:"record"`
	Date   date.Date     `json:"date"`
	Splits []splitRecord `json:"splits"`
}

type priceRecord struct {
	Record string    `json:"record"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Date   date.Date `json:"date"`
	Rate   float64   `json:"rate"`
}

// DecodeBook decodes a book from a stream of JSONL records.
func DecodeBook(r io.Reader) (*Book, error) {
	book := NewBook()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Record string `json:"record"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record in line %q: %w", string(lineBytes), err)
		}

		switch identifier.Record {
		case "account":
			var rec accountRecord
			if err := json.Unmarshal(lineBytes, &rec); err != nil {
				return nil, err
			}
			if err := decodeAccount(book, rec); err != nil {
				return nil, err
			}
		case "transaction":
			var rec transactionRecord
			if err := json.Unmarshal(lineBytes, &rec); err != nil {
				return nil, err
			}
			if err := decodeTransaction(book, rec); err != nil {
				return nil, err
			}
		case "price":
			var rec priceRecord
			if err := json.Unmarshal(lineBytes, &rec); err != nil {
				return nil, err
			}
			from, err := book.NewCommodity(rec.From)
			if err != nil {
				return nil, err
			}
			to, err := book.NewCommodity(rec.To)
			if err != nil {
				return nil, err
			}
			book.prices.Add(from, to, rec.Date, rec.Rate)
		default:
			return nil, &BadDataError{Reason: fmt.Sprintf("unknown record type %q", identifier.Record)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return book, nil
}

func decodeAccount(book *Book, rec accountRecord) error {
	if rec.Name == "" {
		return &BadDataError{Reason: "account record with empty name"}
	}
	var commodity *Commodity
	if rec.Commodity != "" {
		var err error
		commodity, err = book.NewCommodity(rec.Commodity)
		if err != nil {
			return err
		}
	}
	parent := book.root
	name := rec.Name
	if i := lastColon(rec.Name); i >= 0 {
		var err error
		parent, err = book.Account(rec.Name[:i])
		if err != nil {
			return fmt.Errorf("parent of account %q: %w", rec.Name, err)
		}
		name = rec.Name[i+1:]
	}
	return parent.AddChild(NewAccount(name, commodity, rec.Sign))
}

func decodeTransaction(book *Book, rec transactionRecord) error {
	tx := NewTransaction(rec.Date)
	for _, sp := range rec.Splits {
		acc, err := book.Account(sp.Account)
		if err != nil {
			return err
		}
		tx.AddSplit(acc, sp.Quantity)
	}
	return nil
}

func lastColon(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			return i
		}
	}
	return -1
}

// EncodeBook writes the book as JSONL: accounts first (parents before
// children), then transactions, then prices.
func EncodeBook(w io.Writer, book *Book) error {
	enc := json.NewEncoder(w)

	var accounts func(acc *Account) error
	seen := make(map[*Transaction]bool)
	var transactions []*Transaction

	accounts = func(acc *Account) error {
		for _, child := range acc.children {
			rec := accountRecord{Record: "account", Name: child.FullName(), Sign: child.sign}
			if child.commodity != nil {
				rec.Commodity = child.commodity.mnemonic
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
			for _, sp := range child.splits {
				if !seen[sp.transaction] {
					seen[sp.transaction] = true
					transactions = append(transactions, sp.transaction)
				}
			}
			if err := accounts(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := accounts(book.root); err != nil {
		return err
	}

	for _, tx := range transactions {
		rec := transactionRecord{Record: "transaction", Date: tx.postDate}
		for _, sp := range tx.splits {
			rec.Splits = append(rec.Splits, splitRecord{Account: sp.account.FullName(), Quantity: sp.quantity})
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}

	pairs := slices.SortedFunc(maps.Keys(book.prices.rates), func(a, b pair) int {
		if c := strings.Compare(a.from, b.from); c != 0 {
			return c
		}
		return strings.Compare(a.to, b.to)
	})
	for _, k := range pairs {
		for on, rate := range book.prices.rates[k].Values() {
			rec := priceRecord{Record: "price", From: k.from, To: k.to, Date: on, Rate: rate}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
