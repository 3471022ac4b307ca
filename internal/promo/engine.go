package promo

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/basket/internal/pricing"
)

const (
	// KindBuyOneGetOneFree makes every second matching item free.
	KindBuyOneGetOneFree = "bogof"
	// KindThreeForTwo makes every third matching item free.
	KindThreeForTwo = "three_for_two"
)

// Rule computes the discount a promotion grants on a basket.
//
// Discount is a pure function of the basket: calling it repeatedly on the
// same contents returns the same amount and never accumulates.
type Rule interface {
	Name() string
	Target() string
	Discount(b pricing.Basket) (pricing.Money, error)
}

// BuyOneGetOneFree discounts one Target item for every matched pair.
type BuyOneGetOneFree struct {
	Item  string
	Table *pricing.Table
}

// NewBuyOneGetOneFree builds a BOGOF promotion on item priced from table.
func NewBuyOneGetOneFree(item string, table *pricing.Table) BuyOneGetOneFree {
	return BuyOneGetOneFree{Item: item, Table: table}
}

func (r BuyOneGetOneFree) Name() string   { return KindBuyOneGetOneFree }
func (r BuyOneGetOneFree) Target() string { return r.Item }

// Discount prices one free item per pair. An unmatched trailing item pays full price.
func (r BuyOneGetOneFree) Discount(b pricing.Basket) (pricing.Money, error) {
	price, err := r.Table.PriceOf(r.Item)
	if err != nil {
		return decimal.Zero, err
	}
	count := countOf(b, r.Item)
	if count%2 != 0 {
		count--
	}
	return Compute(count/2, price), nil
}

// ThreeForTwo discounts one Target item for every complete group of three.
type ThreeForTwo struct {
	Item  string
	Table *pricing.Table
}

// NewThreeForTwo builds a three-for-two promotion on item priced from table.
func NewThreeForTwo(item string, table *pricing.Table) ThreeForTwo {
	return ThreeForTwo{Item: item, Table: table}
}

func (r ThreeForTwo) Name() string   { return KindThreeForTwo }
func (r ThreeForTwo) Target() string { return r.Item }

// Discount prices one free item per group of three. Leftover items pay full price.
func (r ThreeForTwo) Discount(b pricing.Basket) (pricing.Money, error) {
	price, err := r.Table.PriceOf(r.Item)
	if err != nil {
		return decimal.Zero, err
	}
	return Compute(countOf(b, r.Item)/3, price), nil
}

// Compute determines the discount for a number of free units at the given unit price.
func Compute(free int, unit pricing.Money) pricing.Money {
	if free <= 0 {
		return decimal.Zero
	}
	return unit.Mul(decimal.NewFromInt(int64(free)))
}

func countOf(b pricing.Basket, item string) int {
	n := 0
	for _, it := range b.Items() {
		if it == item {
			n++
		}
	}
	return n
}
