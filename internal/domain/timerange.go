package domain

import (
	"encoding/json"
	"time"
)

// TimeLayout is the wire format for every timestamp crossing the API boundary.
// Local-naive, space separated. Changing it is a wire-compatibility break.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in the wire format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a wire-format timestamp in the local zone.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}

// WireTime is a time.Time that serializes in the wire format instead of RFC 3339.
type WireTime time.Time

func (t WireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTime(time.Time(t)))
}

func (t *WireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = WireTime(parsed)
	return nil
}

// Time converts back to a time.Time.
func (t WireTime) Time() time.Time { return time.Time(t) }

// TimeRange is the window applied to the query-log and part-log views.
// An inverted range (Start after End) is not rejected; it yields an empty
// result set from the server.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// LastHours returns a range ending now and starting n hours earlier.
func LastHours(n int) TimeRange {
	now := time.Now()
	return TimeRange{Start: now.Add(-time.Duration(n) * time.Hour), End: now}
}

// Span returns the width of the range. Negative for inverted ranges.
func (r TimeRange) Span() time.Duration {
	return r.End.Sub(r.Start)
}

// Shift moves both endpoints by d, keeping the span.
func (r TimeRange) Shift(d time.Duration) TimeRange {
	return TimeRange{Start: r.Start.Add(d), End: r.End.Add(d)}
}

// bucketSteps are the allowed time-series bucket widths, ascending.
var bucketSteps = []time.Duration{
	time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
	time.Hour,
	6 * time.Hour,
	24 * time.Hour,
}

// Bucket picks the chart bucket width for the range: the smallest step that
// keeps the series at or under roughly 120 points.
func (r TimeRange) Bucket() time.Duration {
	span := r.Span()
	if span <= 0 {
		return bucketSteps[0]
	}
	target := span / 120
	for _, step := range bucketSteps {
		if step >= target {
			return step
		}
	}
	return bucketSteps[len(bucketSteps)-1]
}
