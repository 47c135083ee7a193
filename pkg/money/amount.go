// Package money provides a fixed-point amount type for BRL values.
//
// Amounts are stored as an integer number of centavos to avoid floating
// point drift when summing transaction histories. Parsing accepts both
// "100.50" and "100,50" since users type amounts in pt-BR format.
package money

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in centavos (hundredths of the display currency).
// It may be negative in derived results (e.g. a net position); the sign of
// user input is validated where the input is accepted.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// Parse converts a user-supplied decimal string into an Amount.
// At most two decimal places are allowed; a comma is accepted as the
// decimal separator. Negative inputs are rejected.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}

	// pt-BR keyboards produce commas
	s = strings.ReplaceAll(s, ",", ".")

	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount cannot be negative")
	}

	parts := strings.SplitN(s, ".", 2)

	intPart := parts[0]
	if intPart == "" {
		intPart = "0"
	}

	decPart := ""
	if len(parts) > 1 {
		decPart = parts[1]
	}
	if len(decPart) > 2 {
		return 0, fmt.Errorf("amount has more than two decimal places")
	}
	decPart += strings.Repeat("0", 2-len(decPart))

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount format")
	}

	cents, err := strconv.ParseInt(decPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount format")
	}

	return Amount(units*100 + cents), nil
}

// FromCentavos builds an Amount from a raw centavo count.
func FromCentavos(c int64) Amount {
	return Amount(c)
}

// Centavos returns the raw centavo count.
func (a Amount) Centavos() int64 {
	return int64(a)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return a - b
}

// String formats the amount with two decimal places, e.g. "100.50" or "-50.00".
func (a Amount) String() string {
	c := int64(a)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalJSON encodes the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a decimal string into the amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a decimal string: %w", err)
	}

	// Derived values such as net totals round-trip through JSON too,
	// so a leading minus is accepted here even though Parse rejects it.
	neg := strings.HasPrefix(s, "-")
	parsed, err := Parse(strings.TrimPrefix(s, "-"))
	if err != nil {
		return err
	}
	if neg {
		parsed = -parsed
	}
	*a = parsed
	return nil
}
