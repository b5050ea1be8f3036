package bookvis

import (
	"strings"
	"testing"
)

func TestAccount_FullName(t *testing.T) {
	b := newTestBook(t)

	checking, err := b.Account("Assets:Bank:Checking")
	if err != nil {
		t.Fatalf("Account() error = %v", err)
	}
	if got := checking.FullName(); got != "Assets:Bank:Checking" {
		t.Errorf("FullName() = %q, want %q", got, "Assets:Bank:Checking")
	}
	if got := b.Root().FullName(); got != "" {
		t.Errorf("root FullName() = %q, want empty", got)
	}
}

func TestAccount_DescendFailsOnMissingSegment(t *testing.T) {
	b := newTestBook(t)

	_, err := b.Account("Assets:Bank:Bonds")
	if err == nil {
		t.Fatal("Account() with a missing segment succeeded, want error")
	}
	if !strings.Contains(err.Error(), `"Bonds"`) || !strings.Contains(err.Error(), `"Bank"`) {
		t.Errorf("error %q does not name the failing segment and its parent", err)
	}
}

func TestAccount_AddChildRejectsDuplicateName(t *testing.T) {
	b := newTestBook(t)
	bank, _ := b.Account("Assets:Bank")

	err := bank.AddChild(NewAccount("Checking", b.MustCommodity("EUR"), 1))
	if err == nil {
		t.Fatal("AddChild() with a duplicate name succeeded, want error")
	}
}

func TestNewAccount_DefaultSign(t *testing.T) {
	acc := NewAccount("X", nil, 0)
	if acc.Sign() != 1 {
		t.Errorf("Sign() = %d, want 1 by default", acc.Sign())
	}
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("EUR"); err != nil {
		t.Errorf("ValidateCurrency(EUR) error = %v", err)
	}
	if err := ValidateCurrency("XXQ"); err == nil {
		t.Error("ValidateCurrency(XXQ) succeeded, want error")
	}
}
