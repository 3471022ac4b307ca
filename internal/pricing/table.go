package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value in major currency units.
type Money = decimal.Decimal

var (
	// ErrItemNotFound is returned when an item has no entry in the price table.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidPrice indicates a table entry with an empty name or a negative price.
	ErrInvalidPrice = errors.New("invalid price")
)

// Table maps item names to unit prices. A Table is immutable once built.
type Table struct {
	prices map[string]Money
}

// DefaultTable returns the standard shop prices.
func DefaultTable() *Table {
	return &Table{prices: map[string]Money{
		"Apple":  decimal.RequireFromString("0.35"),
		"Banana": decimal.RequireFromString("0.20"),
		"Melon":  decimal.RequireFromString("0.50"),
		"Lime":   decimal.RequireFromString("0.15"),
	}}
}

// NewTable copies prices into a new Table after validating every entry.
func NewTable(prices map[string]Money) (*Table, error) {
	t := &Table{prices: make(map[string]Money, len(prices))}
	for name, price := range prices {
		if err := validateEntry(name, price); err != nil {
			return nil, err
		}
		t.prices[name] = price
	}
	return t, nil
}

// WithOverrides returns a copy of t with the given entries replaced or added.
func (t *Table) WithOverrides(overrides map[string]Money) (*Table, error) {
	merged := make(map[string]Money, len(t.prices)+len(overrides))
	for name, price := range t.prices {
		merged[name] = price
	}
	for name, price := range overrides {
		merged[name] = price
	}
	return NewTable(merged)
}

// PriceOf returns the unit price for name.
func (t *Table) PriceOf(name string) (Money, error) {
	price, ok := t.prices[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	return price, nil
}

// Items lists the priced item names in lexical order.
func (t *Table) Items() []string {
	names := make([]string, 0, len(t.prices))
	for name := range t.prices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateEntry(name string, price Money) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty item name", ErrInvalidPrice)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: %q priced at %s", ErrInvalidPrice, name, price.String())
	}
	return nil
}
