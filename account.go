package bookvis

import (
	"fmt"
	"strings"
)

// Account is a named node in the hierarchical ledger structure. It is
// denominated in one commodity and accumulates signed transaction splits.
// Child names are unique within a parent.
type Account struct {
	name      string
	commodity *Commodity
	sign      int // +1 or -1, the normal debit/credit direction for the account's type
	parent    *Account
	children  []*Account
	index     map[string]*Account
	splits    []*Split
}

// NewAccount creates a detached account. A sign of zero defaults to +1.
func NewAccount(name string, commodity *Commodity, sign int) *Account {
	if sign == 0 {
		sign = 1
	}
	return &Account{
		name:      name,
		commodity: commodity,
		sign:      sign,
		index:     make(map[string]*Account),
	}
}

// Name returns the account's name (the last segment of its full name).
func (a *Account) Name() string { return a.name }

// Commodity returns the account's native commodity. It is nil for the root account.
func (a *Account) Commodity() *Commodity { return a.commodity }

// Sign returns the account's sign convention (+1 or -1).
func (a *Account) Sign() int { return a.sign }

// Parent returns the account's parent, or nil for the root.
func (a *Account) Parent() *Account { return a.parent }

// Children returns the account's children in insertion order.
func (a *Account) Children() []*Account { return a.children }

// Splits returns the splits posted to this account, excluding children.
func (a *Account) Splits() []*Split { return a.splits }

// Child returns the direct child with the given name.
func (a *Account) Child(name string) (*Account, bool) {
	c, ok := a.index[name]
	return c, ok
}

// AddChild attaches child to a. Child names must be unique within a parent.
func (a *Account) AddChild(child *Account) error {
	if _, exists := a.index[child.name]; exists {
		return fmt.Errorf("account %q already has a child named %q", a.FullName(), child.name)
	}
	child.parent = a
	a.children = append(a.children, child)
	a.index[child.name] = child
	return nil
}

// FullName returns the colon-delimited path from the root to this account,
// excluding the root itself (e.g. "Assets:Bank:Current Account").
func (a *Account) FullName() string {
	if a.parent == nil {
		return ""
	}
	segments := []string{}
	for acc := a; acc.parent != nil; acc = acc.parent {
		segments = append(segments, acc.name)
	}
	// reverse into root-first order
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ":")
}

// Descend resolves a colon-delimited path relative to this account, walking
// the name index segment by segment.
func (a *Account) Descend(path string) (*Account, error) {
	acc := a
	for _, segment := range strings.Split(path, ":") {
		child, ok := acc.index[segment]
		if !ok {
			return nil, fmt.Errorf("account path %q: segment %q not found under %q", path, segment, acc.name)
		}
		acc = child
	}
	return acc, nil
}
