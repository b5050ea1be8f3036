package bookvis

import (
	"github.com/shopspring/decimal"

	"github.com/bunburya/bookvis/date"
)

// Transaction is a dated set of splits. The engine treats transactions as
// read-only: balancing across currency-equivalent legs is the responsibility
// of the external ledger that produced them.
type Transaction struct {
	postDate date.Date
	splits   []*Split
}

// NewTransaction creates an empty transaction posted on the given date.
func NewTransaction(on date.Date) *Transaction {
	return &Transaction{postDate: on}
}

// PostDate returns the transaction's post date.
func (t *Transaction) PostDate() date.Date { return t.postDate }

// Splits returns the transaction's splits in insertion order.
func (t *Transaction) Splits() []*Split { return t.splits }

// AddSplit posts a quantity (in the account's native commodity) to the given
// account, wiring the split into both the transaction and the account.
func (t *Transaction) AddSplit(acc *Account, quantity decimal.Decimal) *Split {
	sp := &Split{quantity: quantity, account: acc, transaction: t}
	t.splits = append(t.splits, sp)
	acc.splits = append(acc.splits, sp)
	return sp
}

// Split is one leg of a transaction, posted to exactly one account.
type Split struct {
	quantity    decimal.Decimal // signed amount in the account's native commodity
	account     *Account
	transaction *Transaction
}

// Quantity returns the split's signed amount in the account's native commodity.
func (s *Split) Quantity() decimal.Decimal { return s.quantity }

// Account returns the account the split is posted to.
func (s *Split) Account() *Account { return s.account }

// Transaction returns the owning transaction.
func (s *Split) Transaction() *Transaction { return s.transaction }
