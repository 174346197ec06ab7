// Package format renders byte counts, row counts, durations and timestamps
// for the dashboard grids and charts.
package format

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// Bytes renders a byte count in binary units, the way ClickHouse's own
// formatReadableSize does.
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}

// Count renders a row count with thousands separators.
func Count(n uint64) string {
	return humanize.Comma(int64(n)) //nolint:gosec // row counts fit in int64
}

// CompactCount renders a count in SI units for chart axes and tiles, where
// "2.4 M" reads better than "2,400,000".
func CompactCount(n float64) string {
	if n < 1000 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return humanize.SIWithDigits(n, 1, "")
}

// DurationMs renders a millisecond measurement. Sub-second values stay in
// milliseconds, sub-minute values get two decimals of seconds, and longer
// values fall back to Go's duration syntax rounded to the second.
func DurationMs(ms float64) string {
	switch {
	case ms < 1:
		return "<1ms"
	case ms < 1000:
		return strconv.FormatFloat(ms, 'f', 0, 64) + "ms"
	case ms < 60_000:
		return strconv.FormatFloat(ms/1000, 'f', 2, 64) + "s"
	default:
		return time.Duration(ms * float64(time.Millisecond)).Round(time.Second).String()
	}
}

// Seconds renders a second measurement using the millisecond rules.
func Seconds(s float64) string {
	return DurationMs(s * 1000)
}

// Percent renders a 0..1 progress ratio.
func Percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 1, 64) + "%"
}

// Time renders a timestamp in the wire layout, or "-" for the zero time.
func Time(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(domain.TimeLayout)
}
