package client

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// Params carries the shared parameter set of the listing endpoints. Zero
// fields are left off the wire, so the server's defaults apply.
type Params struct {
	// Start and End bound the time window. The log endpoints require both;
	// the parts and partitions grids ignore them.
	Start time.Time
	End   time.Time

	Search    string
	SortField string
	SortOrder string
	Limit     int
	Offset    int

	// Bucket is the chart bucket width for the timeseries endpoints. Zero
	// lets the server derive one from the window.
	Bucket time.Duration

	Filters      domain.FieldFilters
	RangeFilters domain.RangeFilters
}

// values encodes the parameters the way the server's handlers parse them:
// wire-format timestamps, bucket in whole seconds, filters and range
// filters as JSON inside a single parameter each.
func (p Params) values() (url.Values, error) {
	vals := url.Values{}

	if !p.Start.IsZero() {
		vals.Set("start", domain.FormatTime(p.Start))
	}
	if !p.End.IsZero() {
		vals.Set("end", domain.FormatTime(p.End))
	}
	if p.Search != "" {
		vals.Set("search", p.Search)
	}
	if p.SortField != "" {
		vals.Set("sortField", p.SortField)
	}
	if p.SortOrder != "" {
		vals.Set("sortOrder", p.SortOrder)
	}
	if p.Limit > 0 {
		vals.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		vals.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Bucket > 0 {
		vals.Set("bucket", strconv.Itoa(int(p.Bucket/time.Second)))
	}
	if len(p.Filters) > 0 {
		raw, err := json.Marshal(p.Filters)
		if err != nil {
			return nil, err
		}
		vals.Set("filters", string(raw))
	}
	if len(p.RangeFilters) > 0 {
		raw, err := json.Marshal(p.RangeFilters)
		if err != nil {
			return nil, err
		}
		vals.Set("rangeFilters", string(raw))
	}
	return vals, nil
}
