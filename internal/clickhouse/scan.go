package clickhouse

import (
	"fmt"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// Columns maps a result set's column types onto wire metadata.
func Columns(types []driver.ColumnType) []domain.ColumnMeta {
	out := make([]domain.ColumnMeta, len(types))
	for i, ct := range types {
		out[i] = domain.ColumnMeta{Name: ct.Name(), Type: ct.DatabaseTypeName()}
	}
	return out
}

// CollectRows drains rows into the untyped row model and closes them. Scan
// targets are allocated from each column's native scan type, so any SELECT
// works without a per-table struct.
func CollectRows(rows driver.Rows) ([]domain.ColumnMeta, []domain.Row, error) {
	defer rows.Close()

	types := rows.ColumnTypes()
	meta := Columns(types)
	data := []domain.Row{}
	for rows.Next() {
		targets := make([]any, len(types))
		for i, ct := range types {
			st := ct.ScanType()
			if st == nil {
				targets[i] = new(any)
				continue
			}
			targets[i] = reflect.New(st).Interface()
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(domain.Row, len(types))
		for i, ct := range types {
			row[ct.Name()] = tagValue(reflect.ValueOf(targets[i]).Elem().Interface())
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return meta, data, nil
}

// tagValue converts one scanned cell into a tagged value. Numeric widths
// collapse to float64, matching what the JSON layer emits.
func tagValue(v any) domain.Value {
	switch x := v.(type) {
	case nil:
		return domain.NullValue()
	case string:
		return domain.StringValue(x)
	case bool:
		if x {
			return domain.NumberValue(1)
		}
		return domain.NumberValue(0)
	case time.Time:
		return domain.TimeValue(x)
	case []string:
		return domain.ListValue(x)
	case int:
		return domain.NumberValue(float64(x))
	case int8:
		return domain.NumberValue(float64(x))
	case int16:
		return domain.NumberValue(float64(x))
	case int32:
		return domain.NumberValue(float64(x))
	case int64:
		return domain.NumberValue(float64(x))
	case uint:
		return domain.NumberValue(float64(x))
	case uint8:
		return domain.NumberValue(float64(x))
	case uint16:
		return domain.NumberValue(float64(x))
	case uint32:
		return domain.NumberValue(float64(x))
	case uint64:
		return domain.NumberValue(float64(x))
	case float32:
		return domain.NumberValue(float64(x))
	case float64:
		return domain.NumberValue(x)
	}

	// Nullable columns scan as pointers, arrays of non-string element types
	// as typed slices; everything else (UUID, IP, Decimal, Map) renders as
	// its string form.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return domain.NullValue()
		}
		return tagValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		list := make([]string, rv.Len())
		for i := range list {
			list[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return domain.ListValue(list)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.NumberValue(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return domain.NumberValue(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return domain.NumberValue(rv.Float())
	}
	return domain.StringValue(fmt.Sprint(v))
}
