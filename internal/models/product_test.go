package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/oscoderuz/django-shablon/internal/constants"
)

func TestProductEffectivePriceAndDiscount(t *testing.T) {
	withDiscount := &Product{Price: MustMoney("100"), DiscountPrice: MoneyPtr(MustMoney("75"))}
	if got := withDiscount.EffectivePrice().String(); got != "75.00" {
		t.Fatalf("effective price want 75.00 got %s", got)
	}
	if got := withDiscount.DiscountPercent().StringFixed(2); got != "25.00" {
		t.Fatalf("discount percent want 25.00 got %s", got)
	}

	plain := &Product{Price: MustMoney("100")}
	if got := plain.EffectivePrice().String(); got != "100.00" {
		t.Fatalf("effective price want 100.00 got %s", got)
	}
	if !plain.DiscountPercent().IsZero() {
		t.Fatalf("discount percent without discount should be 0, got %s", plain.DiscountPercent())
	}
}

func TestProductDiscountPercentZeroBasePrice(t *testing.T) {
	p := &Product{Price: MustMoney("0"), DiscountPrice: MoneyPtr(MustMoney("0"))}
	if !p.DiscountPercent().IsZero() {
		t.Fatalf("zero base price should yield 0 discount, got %s", p.DiscountPercent())
	}
}

func TestProductDiscountPercentRounding(t *testing.T) {
	p := &Product{Price: MustMoney("30"), DiscountPrice: MoneyPtr(MustMoney("20"))}
	if got := p.DiscountPercent().StringFixed(2); got != "33.33" {
		t.Fatalf("discount percent want 33.33 got %s", got)
	}
}

func TestProductInStock(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		status   string
		want     bool
	}{
		{name: "available_with_stock", quantity: 3, status: constants.ProductStatusAvailable, want: true},
		{name: "available_without_stock", quantity: 0, status: constants.ProductStatusAvailable, want: false},
		{name: "backorder_with_stock", quantity: 3, status: constants.ProductStatusBackorder, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Product{Quantity: tc.quantity, Status: tc.status}
			if got := p.InStock(); got != tc.want {
				t.Fatalf("in stock want %v got %v", tc.want, got)
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	var payload struct {
		Price    Money  `json:"price"`
		Discount *Money `json:"discount"`
	}
	if err := json.Unmarshal([]byte(`{"price":"12.345","discount":null}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Price.String() != "12.35" {
		t.Fatalf("price want 12.35 got %s", payload.Price.String())
	}
	if payload.Discount != nil {
		t.Fatalf("null discount should stay nil")
	}
	raw, err := json.Marshal(payload.Price)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"12.35"` {
		t.Fatalf("marshal want \"12.35\" got %s", raw)
	}
}

func TestUserFullName(t *testing.T) {
	u := &User{Username: "ali", FirstName: "Ali", LastName: "Valiyev"}
	if got := u.FullName(); got != "Ali Valiyev" {
		t.Fatalf("full name want Ali Valiyev got %s", got)
	}
	u.FirstName, u.LastName = "", ""
	if got := u.FullName(); got != "ali" {
		t.Fatalf("full name fallback want ali got %s", got)
	}
}

func TestProfileAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	before := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	after := time.Date(2000, 6, 16, 0, 0, 0, 0, time.UTC)

	if age := (&Profile{BirthDate: &before}).Age(now); age == nil || *age != 24 {
		t.Fatalf("age on birthday want 24 got %v", age)
	}
	if age := (&Profile{BirthDate: &after}).Age(now); age == nil || *age != 23 {
		t.Fatalf("age before birthday want 23 got %v", age)
	}
	if age := (&Profile{}).Age(now); age != nil {
		t.Fatalf("age without birth date should be nil")
	}
}
