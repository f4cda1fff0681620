package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$27.00", Format(decimal.NewFromInt(27)))
	assert.Equal(t, "$2.50", Format(decimal.RequireFromString("2.5")))
	assert.Equal(t, "-$5.00", Format(decimal.NewFromInt(-5)))
}

func TestParse(t *testing.T) {
	cases := map[string]string{
		"$1,234.50": "1234.5",
		"10":        "10",
		"-$5.25":    "-5.25",
		"abc":       "0",
		"":          "0",
	}
	for in, want := range cases {
		assert.True(t, decimal.RequireFromString(want).Equal(Parse(in)), in)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "2.00", Round2(decimal.RequireFromString("1.995")).StringFixed(2))
}
