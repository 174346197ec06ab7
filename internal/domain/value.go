package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// ValueKind tags the dynamic cell value variants.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindTime
	KindStringList
)

// Value is one cell of a log row. Query-log and part-log rows have no fixed
// schema, so cells are tagged values; column metadata (fetched once per
// table) selects formatting and sort behavior, never the value itself.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Time time.Time
	List []string
}

func NullValue() Value            { return Value{Kind: KindNull} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t} }
func ListValue(ss []string) Value { return Value{Kind: KindStringList, List: ss} }

// MarshalJSON emits the natural JSON form; times use the wire format.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindTime:
		return json.Marshal(FormatTime(v.Time))
	case KindStringList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON tags by JSON type. Wire-format times arrive as strings and
// stay strings; column metadata decides how they are treated downstream.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = NullValue()
	case string:
		*v = StringValue(x)
	case float64:
		*v = NumberValue(x)
	case bool:
		if x {
			*v = NumberValue(1)
		} else {
			*v = NumberValue(0)
		}
	case []interface{}:
		list := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		*v = ListValue(list)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		*v = StringValue(string(b))
	}
	return nil
}

// Display renders the value for a grid cell.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindTime:
		return FormatTime(v.Time)
	case KindStringList:
		out := ""
		for i, s := range v.List {
			if i > 0 {
				out += ", "
			}
			out += s
		}
		return out
	default:
		return ""
	}
}

// Row is a dynamically shaped log row keyed by column name.
type Row map[string]Value
