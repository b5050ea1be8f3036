package bookvis

import (
	"fmt"
)

// Book holds the navigable account tree, the commodity index and the price
// table. It is the ledger data source the balance engine queries; the engine
// never writes to it.
type Book struct {
	root        *Account
	commodities map[string]*Commodity
	prices      *PriceTable
}

// NewBook creates an empty book with a commodity-less root account.
func NewBook() *Book {
	return &Book{
		root:        NewAccount("Root", nil, 1),
		commodities: make(map[string]*Commodity),
		prices:      NewPriceTable(),
	}
}

// Root returns the root account of the book.
func (b *Book) Root() *Account { return b.root }

// Prices returns the book's price table.
func (b *Book) Prices() *PriceTable { return b.prices }

// NewCommodity declares a commodity with the given mnemonic and returns its
// handle. Declaring the same mnemonic twice returns the existing handle.
func (b *Book) NewCommodity(mnemonic string) (*Commodity, error) {
	if mnemonic == "" {
		return nil, fmt.Errorf("commodity mnemonic must not be empty")
	}
	if c, ok := b.commodities[mnemonic]; ok {
		return c, nil
	}
	c := &Commodity{mnemonic: mnemonic}
	b.commodities[mnemonic] = c
	return c, nil
}

// Commodity returns the handle for a declared commodity.
func (b *Book) Commodity(mnemonic string) (*Commodity, error) {
	c, ok := b.commodities[mnemonic]
	if !ok {
		return nil, fmt.Errorf("unknown commodity %q", mnemonic)
	}
	return c, nil
}

// MustCommodity is like Commodity but panics on error. Intended for tests and
// static setup code.
func (b *Book) MustCommodity(mnemonic string) *Commodity {
	c, err := b.Commodity(mnemonic)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Account resolves a colon-delimited full name (e.g. "Assets:Bank:Current
// Account") against the account tree, failing with the first segment that is
// not found among children.
func (b *Book) Account(fullName string) (*Account, error) {
	return b.root.Descend(fullName)
}

// currency resolves an optional currency code to a commodity handle.
// The empty string resolves to nil, meaning "each account's own commodity".
// The string-to-handle resolution happens once here, at the public API
// boundary, never inside recursive internals.
func (b *Book) currency(code string) (*Commodity, error) {
	if code == "" {
		return nil, nil
	}
	return b.Commodity(code)
}
