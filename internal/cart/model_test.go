package cart

import (
	"testing"

	"github.com/nanokusa/go-shop-catalog/internal/catalog"
	"github.com/nanokusa/go-shop-catalog/internal/money"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

func TestEntryAmount(t *testing.T) {
	e := Entry{
		Product:    fixtureProduct(),
		Quantity:   3,
		VariantIdx: 0,
	}
	a, err := e.Amount()
	if err != nil {
		t.Fatal(err)
	}
	if a.MinorUnits() != 3*29999 {
		t.Errorf("amount = %s, want 899.97 USD", a)
	}
}

func TestEntryVariantCorrupted(t *testing.T) {
	e := Entry{Product: fixtureProduct(), Quantity: 1, VariantIdx: 9}
	_, err := e.Amount()
	if status.CodeOf(err) != status.CodeDataLoss {
		t.Errorf("code = %d, want CodeDataLoss", status.CodeOf(err))
	}
}

func TestTotalAmount(t *testing.T) {
	p := fixtureProduct()
	c := &Cart{Entries: []Entry{
		{Product: p, Quantity: 2, VariantIdx: 0},
		{Product: p, Quantity: 1, VariantIdx: 1},
	}}
	total, err := c.TotalAmount()
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(2*29999 + 34999); total.MinorUnits() != want {
		t.Errorf("total = %d cents, want %d", total.MinorUnits(), want)
	}
}

func TestTotalAmountEmptyCart(t *testing.T) {
	total, err := (&Cart{}).TotalAmount()
	if err != nil {
		t.Fatal(err)
	}
	if total.MinorUnits() != 0 || total.Currency != money.USD {
		t.Errorf("empty total = %s, want 0 USD", total)
	}
}

func TestTotalAmountCurrencyMismatch(t *testing.T) {
	usd := fixtureProduct()
	cny := &catalog.Product{
		ID:       2,
		Currency: money.CNY,
		Variants: []catalog.Variant{
			{ID: 20, Price: money.FromMinorUnits(100, money.CNY), OrderIdx: 0},
		},
	}
	c := &Cart{Entries: []Entry{
		{Product: usd, Quantity: 1, VariantIdx: 0},
		{Product: cny, Quantity: 1, VariantIdx: 0},
	}}
	_, err := c.TotalAmount()
	if status.CodeOf(err) != status.CodeInvalidArgument {
		t.Errorf("code = %d, want CodeInvalidArgument", status.CodeOf(err))
	}
}
