package bookvis

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// Commodity represents a currency or a security, identified by a unique
// mnemonic code (e.g. "EUR", "GBP", a ticker). Within one Book each mnemonic
// maps to a single *Commodity, so equality is pointer identity.
type Commodity struct {
	mnemonic string
}

// Mnemonic returns the commodity's unique code.
func (c *Commodity) Mnemonic() string { return c.mnemonic }

func (c *Commodity) String() string { return c.mnemonic }

// ValidateCurrency checks that code is a known ISO 4217 currency code.
// Security mnemonics are not currencies and will fail this check.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}
