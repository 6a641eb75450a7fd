// Package format renders numbers for the dashboard with locale-aware
// grouping and a capped number of fraction digits.
package format

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	mu      sync.RWMutex
	printer = message.NewPrinter(language.Korean)
)

// SetLocale switches the process-wide number locale (BCP 47, e.g. "ko",
// "en-US"). An unparseable tag leaves the current locale in place.
func SetLocale(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("parsing locale %q: %w", tag, err)
	}
	mu.Lock()
	printer = message.NewPrinter(t)
	mu.Unlock()
	return nil
}

func decimal(v float64, digits int) string {
	mu.RLock()
	p := printer
	mu.RUnlock()
	return p.Sprint(number.Decimal(roundHalfAway(v, digits), number.MaxFractionDigits(digits)))
}

// roundHalfAway rounds v to digits fraction digits with ties away from zero.
// x/text/number alone would round ties to even (2.5 -> "2").
func roundHalfAway(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow10(digits)
	r := math.Round(v*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	return r
}

// Int formats v with grouping and no fraction digits.
func Int(v float64) string { return decimal(v, 0) }

// OneDecimal formats v with at most one fraction digit.
func OneDecimal(v float64) string { return decimal(v, 1) }

// TwoDecimal formats v with at most two fraction digits.
func TwoDecimal(v float64) string { return decimal(v, 2) }

// Signed is TwoDecimal with an explicit "+" for positive values.
func Signed(v float64) string {
	if v > 0 {
		return "+" + TwoDecimal(v)
	}
	return TwoDecimal(v)
}

// Ptr formats an optional value with fn; nil renders as zero.
func Ptr(v *float64, fn func(float64) string) string {
	if v == nil {
		return fn(0)
	}
	return fn(*v)
}

// Manwon renders a won amount in units of 10,000 for compact axis labels,
// e.g. 1,234,567 -> "123만".
func Manwon(v float64) string {
	return fmt.Sprintf("%.0f만", math.Round(v/10000))
}
