package market

import "time"

// Valid end-date window. Enforced only as a clamp on the fetch.
const (
	DataMin = "2015-01-01"
	DataMax = "2024-12-31"
)

const isoDate = "2006-01-02"

// FormatDateStr slices an ISO date into the requested granularity. Strings
// shorter than ten characters are returned as is.
func FormatDateStr(d string, f DateFormat) string {
	if len(d) < 10 {
		return d
	}
	yyyy, mm, dd := d[0:4], d[5:7], d[8:10]
	switch f {
	case FormatYear:
		return yyyy
	case FormatYearMonth:
		return yyyy + "-" + mm
	default:
		return mm + "-" + dd
	}
}

// ClampEndDate forces d into [DataMin, DataMax]. Input that does not parse
// as a date is passed through and left for the server to reject.
func ClampEndDate(d string) string {
	t, err := time.Parse(isoDate, d)
	if err != nil {
		return d
	}
	lo, _ := time.Parse(isoDate, DataMin)
	hi, _ := time.Parse(isoDate, DataMax)
	switch {
	case t.After(hi):
		return DataMax
	case t.Before(lo):
		return DataMin
	default:
		return d
	}
}

// ValidDate reports whether d parses as YYYY-MM-DD.
func ValidDate(d string) bool {
	_, err := time.Parse(isoDate, d)
	return err == nil
}

// TickIndices chooses up to count label positions spread evenly over n
// points. The first and last points are always included.
func TickIndices(n, count int) []int {
	if n <= 0 {
		return nil
	}
	if n == 1 || count <= 1 {
		if n == 1 {
			return []int{0}
		}
		return []int{0, n - 1}
	}
	if count >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	out := make([]int, 0, count)
	last := -1
	for i := 0; i < count; i++ {
		idx := i * (n - 1) / (count - 1)
		if idx != last {
			out = append(out, idx)
			last = idx
		}
	}
	return out
}
