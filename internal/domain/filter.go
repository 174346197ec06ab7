package domain

// FieldFilters maps a column name to its allowed values. Values are
// OR-combined within a field and AND-combined across fields. Unknown values
// are not validated; they simply match nothing server-side.
type FieldFilters map[string][]string

// Clone returns a deep copy.
func (f FieldFilters) Clone() FieldFilters {
	out := make(FieldFilters, len(f))
	for k, v := range f {
		vals := make([]string, len(v))
		copy(vals, v)
		out[k] = vals
	}
	return out
}

// Equal reports order-insensitive equality per field.
func (f FieldFilters) Equal(other FieldFilters) bool {
	if len(f) != len(other) {
		return false
	}
	for field, vals := range f {
		if !sameValueSet(vals, other[field]) {
			return false
		}
	}
	return true
}

func sameValueSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		seen[v]--
		if seen[v] < 0 {
			return false
		}
	}
	return true
}

// Bounds is an inclusive numeric range filter; either side may be open.
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Empty reports whether both bounds are open. An empty Bounds is semantically
// "no filter" but is still stored until cleared explicitly.
func (b Bounds) Empty() bool {
	return b.Min == nil && b.Max == nil
}

// RangeFilters maps a numeric column name to its bounds.
type RangeFilters map[string]Bounds

// Clone returns a copy.
func (r RangeFilters) Clone() RangeFilters {
	out := make(RangeFilters, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
