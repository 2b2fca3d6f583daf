// Package currency converts provider tax amounts to US dollars.
package currency

import (
	"context"
	"math"
	"strings"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// USD is the currency every amount is normalized to.
const USD = "USD"

// Converter turns an amount in minor units of a currency into USD cents.
type Converter interface {
	ToUSD(ctx context.Context, cents int64, currency string) (domain.Money, error)
}

// fallbackRates are approximate USD values of one unit of each currency.
// Unlisted currencies convert at 1.0.
var fallbackRates = map[string]float64{
	"CAD": 0.72,
	"EUR": 1.08,
	"GBP": 1.27,
	"JPY": 0.0067,
	"AUD": 0.65,
	"NZD": 0.60,
}

// FallbackRate returns the built-in USD rate of a currency.
func FallbackRate(currency string) float64 {
	if rate, ok := fallbackRates[normalize(currency)]; ok {
		return rate
	}
	return 1.0
}

// Static converts with the built-in table only.
type Static struct{}

// ToUSD implements Converter.
func (Static) ToUSD(_ context.Context, cents int64, currency string) (domain.Money, error) {
	if isUSD(currency) {
		return domain.Money(cents), nil
	}
	return apply(cents, FallbackRate(currency)), nil
}

func apply(cents int64, rate float64) domain.Money {
	return domain.Money(math.Round(float64(cents) * rate))
}

func normalize(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

func isUSD(currency string) bool {
	c := normalize(currency)
	return c == "" || c == USD
}

var _ Converter = Static{}
