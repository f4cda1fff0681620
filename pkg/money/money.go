package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol prefixes formatted amounts.
var Symbol = "$"

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders d with the currency symbol and two decimals, e.g. "$12.50".
func Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + Symbol + d.Neg().StringFixed(2)
	}
	return Symbol + d.StringFixed(2)
}

// Parse strips everything except digits, the decimal point and a leading
// minus sign and parses the rest. Unparseable input is zero.
func Parse(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
