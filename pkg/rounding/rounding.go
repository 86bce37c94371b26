// Package rounding defines the explicit rounding policy threaded through
// every monetary computation. No primitive rounds with a global default; the
// caller always says how.
package rounding

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/constants"
)

// Method identifies a rounding method.
type Method string

const (
	// Bankers rounds ties to the nearest even digit.
	Bankers Method = "bankers"
	// HalfUp rounds ties toward positive infinity.
	HalfUp Method = "half-up"
	// HalfDown rounds ties toward negative infinity.
	HalfDown Method = "half-down"
	// Up rounds away from zero.
	Up Method = "up"
	// Down rounds toward zero.
	Down Method = "down"
	// HalfAway rounds ties away from zero.
	HalfAway Method = "half-away"
	// HalfToward rounds ties toward zero.
	HalfToward Method = "half-toward"
)

// Methods lists every supported rounding method.
var Methods = []Method{Bankers, HalfUp, HalfDown, Up, Down, HalfAway, HalfToward}

// ParseMethod converts a config string into a Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if Method(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported rounding method %q", s)
}

// Config couples a rounding method with the decimal places it applies at.
type Config struct {
	Method Method
	Places int32
}

// Default returns the conventional currency policy: ties away from zero at
// two decimal places.
func Default() Config {
	return Config{Method: HalfAway, Places: constants.DefaultDecimalPlaces}
}

// Apply rounds d according to the config.
func (c Config) Apply(d decimal.Decimal) decimal.Decimal {
	switch c.Method {
	case Bankers:
		return d.RoundBank(c.Places)
	case Up:
		return d.RoundUp(c.Places)
	case Down:
		return d.RoundDown(c.Places)
	case HalfAway:
		return d.Round(c.Places)
	case HalfUp, HalfDown, HalfToward:
		return roundHalf(d, c.Places, c.Method)
	default:
		return d.Round(c.Places)
	}
}

// roundHalf implements the tie-break variants shopspring/decimal does not
// ship: it resolves exact half ties per method and defers everything else to
// nearest rounding.
func roundHalf(d decimal.Decimal, places int32, method Method) decimal.Decimal {
	shifted := d.Shift(places)
	floor := shifted.Floor()
	frac := shifted.Sub(floor)

	half := decimal.New(5, -1)
	one := decimal.New(1, 0)

	var result decimal.Decimal
	switch frac.Cmp(half) {
	case -1:
		result = floor
	case 1:
		result = floor.Add(one)
	default:
		switch method {
		case HalfUp:
			result = floor.Add(one)
		case HalfDown:
			result = floor
		default: // HalfToward
			if d.IsNegative() {
				result = floor.Add(one)
			} else {
				result = floor
			}
		}
	}
	return result.Shift(-places)
}
