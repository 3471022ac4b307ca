package pricing

import "github.com/shopspring/decimal"

// Line records the discount a single promotion contributed to a summary.
type Line struct {
	Rule     string
	Item     string
	Discount Money
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal Money
	Discount Money
	Total    Money
	Lines    []Line
}

// Basket is the read-only view of a cart that pricing needs.
type Basket interface {
	Items() []string
}

// Totaller sums unit prices for a sequence of items.
type Totaller struct {
	Table *Table
}

// NewTotaller builds a Totaller backed by table.
func NewTotaller(table *Table) Totaller {
	return Totaller{Table: table}
}

// Total returns the raw sum of unit prices for every item in b before any discount.
func (t Totaller) Total(b Basket) (Money, error) {
	subtotal := decimal.Zero
	for _, it := range b.Items() {
		price, err := t.Table.PriceOf(it)
		if err != nil {
			return decimal.Zero, err
		}
		subtotal = subtotal.Add(price)
	}
	return subtotal, nil
}

// Compute folds the discount lines into a summary for the given subtotal.
func Compute(subtotal Money, lines []Line) Summary {
	discount := decimal.Zero
	for _, l := range lines {
		discount = discount.Add(l.Discount)
	}
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
		Lines:    lines,
	}
}
