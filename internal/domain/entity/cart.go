package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartProduct is the product snapshot held by a cart line
type CartProduct struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
}

// CartLine is one product in the cart. Quantity is always at least 1.
type CartLine struct {
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// LineTotal is price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product id, in insertion order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// NewCart builds a cart from persisted lines, dropping lines that break the
// cart invariants.
func NewCart(lines []CartLine) *Cart {
	c := &Cart{Lines: make([]CartLine, 0, len(lines))}
	for _, l := range lines {
		if l.Quantity < 1 || l.Product.ID == uuid.Nil || c.index(l.Product.ID) >= 0 {
			continue
		}
		c.Lines = append(c.Lines, l)
	}
	return c
}

func (c *Cart) index(productID uuid.UUID) int {
	for i, l := range c.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Line returns the line for productID
func (c *Cart) Line(productID uuid.UUID) (CartLine, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// Add increments the existing line for p or appends a new line with quantity 1.
func (c *Cart) Add(p CartProduct) {
	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
}

// Increment adds one unit to an existing line
func (c *Cart) Increment(productID uuid.UUID) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines[i].Quantity++
	return true
}

// Decrement removes one unit, dropping the line when it reaches zero.
func (c *Cart) Decrement(productID uuid.UUID) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	if c.Lines[i].Quantity <= 1 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return true
	}
	c.Lines[i].Quantity--
	return true
}

// Remove drops the line for productID
func (c *Cart) Remove(productID uuid.UUID) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the total number of units across lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of line totals
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}
