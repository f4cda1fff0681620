package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartProduct(name, price string) CartProduct {
	return CartProduct{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price)}
}

func TestCartAddTwiceMergesLine(t *testing.T) {
	c := NewCart(nil)
	p := cartProduct("Soda", "1.50")

	c.Add(p)
	c.Add(p)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestCartDecrementAtOneRemovesLine(t *testing.T) {
	c := NewCart(nil)
	a, b := cartProduct("A", "10"), cartProduct("B", "5")
	c.Add(a)
	c.Add(b)

	assert.True(t, c.Decrement(a.ID))

	_, found := c.Line(a.ID)
	assert.False(t, found)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, b.ID, c.Lines[0].Product.ID)
}

func TestCartIncrementAndDecrement(t *testing.T) {
	c := NewCart(nil)
	p := cartProduct("A", "10")
	c.Add(p)

	assert.True(t, c.Increment(p.ID))
	assert.True(t, c.Increment(p.ID))
	assert.True(t, c.Decrement(p.ID))

	line, _ := c.Line(p.ID)
	assert.Equal(t, 2, line.Quantity)

	assert.False(t, c.Increment(uuid.New()))
	assert.False(t, c.Decrement(uuid.New()))
	assert.False(t, c.Remove(uuid.New()))
}

func TestCartSubtotal(t *testing.T) {
	c := NewCart(nil)
	a, b := cartProduct("A", "10"), cartProduct("B", "5")
	c.Add(a)
	c.Add(a)
	c.Add(b)

	assert.True(t, decimal.NewFromInt(25).Equal(c.Subtotal()))
	assert.Equal(t, 3, c.ItemCount())
}

func TestNewCartDropsInvalidLines(t *testing.T) {
	p := cartProduct("A", "1")
	c := NewCart([]CartLine{
		{Product: p, Quantity: 2},
		{Product: p, Quantity: 1},
		{Product: cartProduct("B", "1"), Quantity: 0},
		{Product: CartProduct{Name: "no id"}, Quantity: 1},
	})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}
