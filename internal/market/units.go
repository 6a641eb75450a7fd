package market

import (
	"fmt"
	"strings"
)

// Unit selects both the quote window requested from the server and the
// density of the x-axis labels.
type Unit string

const (
	Unit10Y Unit = "10y"
	Unit5Y  Unit = "5y"
	Unit1Y  Unit = "1y"
	Unit3M  Unit = "3m"
	Unit1M  Unit = "1m"
	Unit1W  Unit = "1w"
)

// DateFormat is a date-label granularity.
type DateFormat string

const (
	FormatYear      DateFormat = "yyyy"
	FormatYearMonth DateFormat = "yyyy-MM"
	FormatMonthDay  DateFormat = "MM-dd"
)

// UnitSpec describes one selectable time window.
type UnitSpec struct {
	Key       Unit
	Label     string
	Days      int // informational; the server derives the window itself
	TickCount int
	Format    DateFormat
}

// unitTable is ordered widest to narrowest, matching the selector layout.
var unitTable = []UnitSpec{
	{Key: Unit10Y, Label: "10년", Days: 3650, TickCount: 12, Format: FormatYear},
	{Key: Unit5Y, Label: "5년", Days: 1825, TickCount: 10, Format: FormatYear},
	{Key: Unit1Y, Label: "1년", Days: 365, TickCount: 12, Format: FormatYearMonth},
	{Key: Unit3M, Label: "3개월", Days: 90, TickCount: 8, Format: FormatMonthDay},
	{Key: Unit1M, Label: "1개월", Days: 30, TickCount: 8, Format: FormatMonthDay},
	{Key: Unit1W, Label: "1주일", Days: 7, TickCount: 7, Format: FormatMonthDay},
}

// Units returns the six selectable units in display order.
func Units() []UnitSpec {
	out := make([]UnitSpec, len(unitTable))
	copy(out, unitTable)
	return out
}

// ParseUnit converts a query-string key such as "3m" into a Unit.
func ParseUnit(s string) (Unit, error) {
	key := Unit(strings.ToLower(strings.TrimSpace(s)))
	for _, u := range unitTable {
		if u.Key == key {
			return u.Key, nil
		}
	}
	return "", fmt.Errorf("unknown unit %q (want one of 10y, 5y, 1y, 3m, 1m, 1w)", s)
}

// Index returns the position of u in Units(), or -1.
func (u Unit) Index() int {
	for i, spec := range unitTable {
		if spec.Key == u {
			return i
		}
	}
	return -1
}

// Spec returns the registry entry for u. Unknown units fall back to 1w,
// which is also what the server does.
func (u Unit) Spec() UnitSpec {
	if i := u.Index(); i >= 0 {
		return unitTable[i]
	}
	return unitTable[len(unitTable)-1]
}

// Label returns the display label, e.g. "1개월".
func (u Unit) Label() string { return u.Spec().Label }

// TickConfig returns the target tick count and label granularity.
func (u Unit) TickConfig() (int, DateFormat) {
	s := u.Spec()
	return s.TickCount, s.Format
}
