// Package types provides common value types and utilities.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of fractional digits shown for nutrient values.
const DisplayPlaces int32 = 2

// Amount is a nutrient value, serving size or quantity as exchanged with the backend.
//
// Arithmetic stays in float64 (summaries are plain floating-point sums); decimal is only
// used at the edges, for parsing user input and for fixed-precision display.
type Amount float64

// Float64 returns the raw value.
func (a Amount) Float64() float64 { return float64(a) }

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool { return a == 0 }

// Format renders the amount with DisplayPlaces fractional digits ("12.00").
func (a Amount) Format() string {
	return FormatValue(float64(a))
}

// String implements fmt.Stringer.
func (a Amount) String() string { return a.Format() }

// FormatValue renders v with DisplayPlaces fractional digits, rounding half away from zero.
// Rounding applies to the shortest decimal form of v, so 2.675 gives "2.68" even though the
// nearest float64 lies below it. Values that round to zero never carry a minus sign.
func FormatValue(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(DisplayPlaces)
}

// ParseAmount parses a decimal string such as "2", "0.5" or "-1.25".
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount: %w", err)
	}
	f, _ := d.Float64()
	return Amount(f), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string or null.
// Form inputs historically posted numbers as strings, so stored records may contain either.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*a = 0
			return nil
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	*a = Amount(f)
	return nil
}
