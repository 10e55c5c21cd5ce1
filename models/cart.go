package models

import "github.com/shopspring/decimal"

// CartItem is one line of a session's cart. ID is unique per product+variant;
// adding the same ID again merges by incrementing Quantity.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	TraySize string          `json:"tray_size"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the ordered item sequence persisted as a single serialized record
// per session. Order is irrelevant to totals.
type Cart []CartItem

// Subtotal keeps full decimal precision; rounding to cents happens only at
// presentation boundaries.
func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Count is the badge value: the sum of all quantities, not the row count.
func (c Cart) Count() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

func (c Cart) Find(id string) (CartItem, bool) {
	for _, item := range c {
		if item.ID == id {
			return item, true
		}
	}
	return CartItem{}, false
}
