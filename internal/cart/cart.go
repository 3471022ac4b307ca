package cart

import "github.com/google/uuid"

// Cart is an ordered collection of item names. Duplicates are allowed.
// A Cart is not safe for concurrent mutation.
type Cart struct {
	id    uuid.UUID
	items []string
}

// New returns a cart holding items in the given order.
func New(items ...string) *Cart {
	c := &Cart{id: uuid.New(), items: make([]string, 0, len(items))}
	c.items = append(c.items, items...)
	return c
}

// ID identifies the cart in logs.
func (c *Cart) ID() uuid.UUID {
	return c.id
}

// Add appends name to the cart. Names are not checked against any price table.
func (c *Cart) Add(name string) {
	c.items = append(c.items, name)
}

// Remove drops the first occurrence of name and reports whether one was found.
func (c *Cart) Remove(name string) bool {
	for i, it := range c.items {
		if it == name {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns how many times name appears in the cart.
func (c *Cart) Count(name string) int {
	n := 0
	for _, it := range c.items {
		if it == name {
			n++
		}
	}
	return n
}

// Len returns the number of items in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}
