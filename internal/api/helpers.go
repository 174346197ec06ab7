package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// countResponse wraps the total row count for the grid pagers.
type countResponse struct {
	Total uint64 `json:"total"`
}

// parseTableQuery reads the shared parameter set the log endpoints accept:
// start, end, sortField, sortOrder, limit, offset, search, and the
// JSON-encoded filters and rangeFilters. The time window is required.
func parseTableQuery(r *http.Request) (domain.TableQuery, error) {
	q, err := parseGridQuery(r)
	if err != nil {
		return domain.TableQuery{}, err
	}
	if q.TimeRange, err = parseTimeRange(r.URL.Query()); err != nil {
		return domain.TableQuery{}, err
	}
	return q, nil
}

// parseGridQuery is parseTableQuery without the time window, for the grids
// over current state (parts, partitions).
func parseGridQuery(r *http.Request) (domain.TableQuery, error) {
	vals := r.URL.Query()

	q := domain.TableQuery{
		Search: vals.Get("search"),
		Sort: domain.SortSpec{
			Field: vals.Get("sortField"),
			Order: domain.SortOrder(strings.ToUpper(vals.Get("sortOrder"))),
		},
	}

	if raw := vals.Get("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Filters); err != nil {
			return domain.TableQuery{}, domain.ErrValidation("filters is not a JSON object of string arrays: %v", err)
		}
	}
	if raw := vals.Get("rangeFilters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.RangeFilters); err != nil {
			return domain.TableQuery{}, domain.ErrValidation("rangeFilters is not a JSON object of {min,max} bounds: %v", err)
		}
	}

	var err error
	if q.Limit, err = intParam(vals, "limit"); err != nil {
		return domain.TableQuery{}, err
	}
	if q.Offset, err = intParam(vals, "offset"); err != nil {
		return domain.TableQuery{}, err
	}
	return q, nil
}

// parseTimeRange requires both window boundaries in wire format.
func parseTimeRange(vals url.Values) (domain.TimeRange, error) {
	start, err := timeParam(vals, "start")
	if err != nil {
		return domain.TimeRange{}, err
	}
	end, err := timeParam(vals, "end")
	if err != nil {
		return domain.TimeRange{}, err
	}
	return domain.TimeRange{Start: start, End: end}, nil
}

func timeParam(vals url.Values, name string) (time.Time, error) {
	raw := vals.Get(name)
	if raw == "" {
		return time.Time{}, domain.ErrValidation("%s is required", name)
	}
	t, err := domain.ParseTime(raw)
	if err != nil {
		return time.Time{}, domain.ErrValidation("%s %q is not a %q timestamp", name, raw, domain.TimeLayout)
	}
	return t, nil
}

func intParam(vals url.Values, name string) (int, error) {
	raw := vals.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.ErrValidation("%s must be a non-negative integer, got %q", name, raw)
	}
	return n, nil
}

// parseBucket reads the chart bucket width in whole seconds. Zero means the
// server picks one from the time range.
func parseBucket(vals url.Values) (time.Duration, error) {
	raw := vals.Get("bucket")
	if raw == "" {
		return 0, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0, domain.ErrValidation("bucket must be a width in whole seconds, got %q", raw)
	}
	return time.Duration(secs) * time.Second, nil
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("request body is not valid JSON: %v", err)
	}
	return nil
}
