package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in US cents. All currency amounts in the core are USD.
type Money int64

// MoneyFromFloat converts a dollar amount to Money, rounding to the nearest cent.
func MoneyFromFloat(dollars float64) Money {
	return Money(math.Round(dollars * 100))
}

// ParseMoney parses a dollar amount such as "500", "500.5", "$1,250.00".
func ParseMoney(s string) (Money, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return 0, fmt.Errorf("parse money %q: empty amount", s)
	}

	whole, frac, hasFrac := strings.Cut(clean, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("parse money %q: at most two decimal places", s)
	}

	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")
	if whole == "" {
		whole = "0"
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}

	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse money %q: %w", s, err)
		}
	}

	total := dollars*100 + cents
	if neg {
		total = -total
	}
	return Money(total), nil
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Dollars returns the amount in dollars.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// String formats the amount as "$1,250.00".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(cents/100), cents%100)
}

// groupThousands renders n with comma separators.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatMiles renders a mileage cost with thousands separators ("25,000").
func FormatMiles(miles int) string {
	if miles < 0 {
		return "-" + groupThousands(int64(-miles))
	}
	return groupThousands(int64(miles))
}
