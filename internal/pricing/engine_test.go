package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeliveryFeeBoundary(t *testing.T) {
	e := New(DefaultConfig())
	cases := []struct {
		subtotal string
		want     string
	}{
		{"199.99", "30"},
		{"200", "0"},
		{"200.01", "0"},
		{"0", "30"},
	}
	for _, tc := range cases {
		if got := e.DeliveryFee(dec(tc.subtotal)); !got.Equal(dec(tc.want)) {
			t.Fatalf("DeliveryFee(%s) = %s, want %s", tc.subtotal, got, tc.want)
		}
	}
}

func TestDiscountTiersAreExclusive(t *testing.T) {
	e := New(DefaultConfig())
	cases := []struct {
		subtotal string
		want     string
	}{
		{"999", "0"},
		{"1000", "0"},
		{"1000.01", "30"},
		{"1500", "30"},
		{"1500.01", "50"},
		{"2000", "50"},
		{"2000.01", "100"},
		{"99999", "100"},
	}
	for _, tc := range cases {
		if got := e.Discount(dec(tc.subtotal)); !got.Equal(dec(tc.want)) {
			t.Fatalf("Discount(%s) = %s, want %s", tc.subtotal, got, tc.want)
		}
	}
}

func TestTaxRoundsHalfUp(t *testing.T) {
	e := New(DefaultConfig())
	if got := e.Tax(dec("1000"), dec("30")); !got.Equal(dec("51.50")) {
		t.Fatalf("expected 51.50, got %s", got)
	}
	// 10.10 * 0.05 = 0.505
	if got := e.Tax(dec("10.10"), decimal.Zero); !got.Equal(dec("0.51")) {
		t.Fatalf("expected 0.51, got %s", got)
	}
}

func TestTotalZeroSubtotal(t *testing.T) {
	e := New(DefaultConfig())
	if got := e.Total(decimal.Zero, dec("30"), dec("1.5"), dec("100")); !got.IsZero() {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestQuote(t *testing.T) {
	e := New(DefaultConfig())
	b := e.Quote(dec("1000"))
	if !b.DeliveryFee.IsZero() || !b.Tax.Equal(dec("50")) || !b.Discount.IsZero() || !b.Total.Equal(dec("1050")) {
		t.Fatalf("unexpected breakdown %+v", b)
	}

	b = e.Quote(dec("150"))
	// 150 + 30 + 9 = 189
	if !b.DeliveryFee.Equal(dec("30")) || !b.Tax.Equal(dec("9")) || !b.Total.Equal(dec("189")) {
		t.Fatalf("unexpected breakdown %+v", b)
	}

	b = e.Quote(dec("2500"))
	// 2500 + 0 + 125 - 100
	if !b.Total.Equal(dec("2525")) {
		t.Fatalf("unexpected total %s", b.Total)
	}
}

func TestNewSortsTiers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tiers = []Tier{
		{Above: dec("10"), Amount: dec("1")},
		{Above: dec("100"), Amount: dec("5")},
	}
	e := New(cfg)
	if got := e.Discount(dec("150")); !got.Equal(dec("5")) {
		t.Fatalf("expected highest tier, got %s", got)
	}
}
