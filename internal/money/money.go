// Package money holds monetary amounts as decimals so that prices and totals
// never go through float rounding.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that encodes as a JSON number and decodes from a
// number, a numeric string or null.
type Amount struct {
	decimal.Decimal
}

var Zero = Amount{decimal.Zero}

func New(d decimal.Decimal) Amount { return Amount{d} }

// MustParse is for constants and tests.
func MustParse(s string) Amount { return Amount{decimal.RequireFromString(s)} }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		a.Decimal = decimal.Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("amount %s: %w", s, err)
	}
	a.Decimal = d
	return nil
}

// Parse converts loosely typed input (numbers, numeric strings, decimals,
// json.Number) into a decimal. ok is false for nil, blanks and garbage.
func Parse(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case Amount:
		return x.Decimal, true
	case *Amount:
		if x == nil {
			return decimal.Zero, false
		}
		return x.Decimal, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case float32:
		return parseFloat(float64(x))
	case float64:
		return parseFloat(x)
	case json.Number:
		return parseString(x.String())
	case string:
		return parseString(x)
	default:
		return decimal.Zero, false
	}
}

// parseFloat rejects NaN and infinities, which decimal cannot represent.
func parseFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func parseString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NonNegative coerces v to an amount >= 0. Unparsable and negative values
// become zero.
func NonNegative(v any) Amount {
	d, ok := Parse(v)
	if !ok || d.IsNegative() {
		return Zero
	}
	return Amount{d}
}

// Text renders v as a canonical decimal string, "0" when unparsable.
func Text(v any) string {
	d, ok := Parse(v)
	if !ok {
		return "0"
	}
	return d.String()
}
