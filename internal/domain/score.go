package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// CPP is an optional cents-per-point value. The zero value is absent.
// Present values are stored in hundredths of a cent so two-decimal rounding is exact.
type CPP struct {
	hundredths int64
	present    bool
}

// NoCPP returns an absent CPP.
func NoCPP() CPP {
	return CPP{}
}

// SomeCPP returns a present CPP from a value in cents per point, rounded half-to-even to two decimals.
func SomeCPP(value float64) CPP {
	return CPP{hundredths: int64(math.RoundToEven(value * 100)), present: true}
}

// CPPThreshold returns the smallest two-decimal CPP at or above value.
// Scored values are exact hundredths, so c >= value holds exactly when
// c.Compare(CPPThreshold(value)) >= 0.
func CPPThreshold(value float64) CPP {
	// Rounding to 1e-6 first absorbs float noise such as 1.5*100 = 150.00000000000003.
	scaled := math.Round(value*1e6) / 1e4
	return CPP{hundredths: int64(math.Ceil(scaled)), present: true}
}

// CPPFromHundredths returns a present CPP of n/100 cents per point.
func CPPFromHundredths(n int64) CPP {
	return CPP{hundredths: n, present: true}
}

// ComputeCPP returns (cash - taxes) / miles * 100 in cents per point,
// rounded half-to-even to two decimals. miles must be positive.
func ComputeCPP(cash, taxes Money, miles int) (CPP, error) {
	if miles <= 0 {
		return NoCPP(), fmt.Errorf("%w: %d", ErrInvalidMilesCost, miles)
	}
	// (cash$ - taxes$) / miles * 100 == (cashCents - taxesCents) / miles; two decimals adds a factor 100.
	num := (int64(cash) - int64(taxes)) * 100
	return CPPFromHundredths(divRoundHalfEven(num, int64(miles))), nil
}

// divRoundHalfEven returns num/den rounded half-to-even. den must be positive.
func divRoundHalfEven(num, den int64) int64 {
	neg := num < 0
	if neg {
		num = -num
	}
	q, r := num/den, num%den
	switch {
	case 2*r > den:
		q++
	case 2*r == den && q%2 == 1:
		q++
	}
	if neg {
		return -q
	}
	return q
}

// IsPresent reports whether the value is present.
func (c CPP) IsPresent() bool {
	return c.present
}

// Value returns the value in cents per point and whether it is present.
func (c CPP) Value() (float64, bool) {
	if !c.present {
		return 0, false
	}
	return float64(c.hundredths) / 100, true
}

// Hundredths returns the value in hundredths of a cent and whether it is present.
func (c CPP) Hundredths() (int64, bool) {
	return c.hundredths, c.present
}

// Compare orders two present values; the result is -1, 0 or +1.
// Absent values compare lower than any present value.
func (c CPP) Compare(o CPP) int {
	switch {
	case !c.present && !o.present:
		return 0
	case !c.present:
		return -1
	case !o.present:
		return 1
	case c.hundredths < o.hundredths:
		return -1
	case c.hundredths > o.hundredths:
		return 1
	default:
		return 0
	}
}

// String renders "1.80", or "N/A" when absent.
func (c CPP) String() string {
	v, ok := c.Value()
	if !ok {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// MarshalJSON encodes a present value as a number and an absent one as null.
func (c CPP) MarshalJSON() ([]byte, error) {
	if !c.present {
		return []byte("null"), nil
	}
	return []byte(c.String()), nil
}

// UnmarshalJSON decodes a number or null.
func (c *CPP) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = NoCPP()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode cpp: %w", err)
	}
	*c = SomeCPP(v)
	return nil
}

// ScoredCandidate pairs a candidate with its CPP.
type ScoredCandidate struct {
	Candidate FlightCandidate `json:"candidate"`
	CPP       CPP             `json:"cpp"`
}
