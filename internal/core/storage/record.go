package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one loosely typed table row. Fields keep the order in which they were first set.
// Reading a field that is absent yields "" rather than an error.
type Record struct {
	columns []string
	values  map[string]interface{}
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]interface{})}
}

// Set assigns a field, appending it to the column order when it is new.
func (r *Record) Set(field string, value interface{}) *Record {
	if _, ok := r.values[field]; !ok {
		r.columns = append(r.columns, field)
	}
	r.values[field] = value
	return r
}

// Has reports whether the field is present on the record.
func (r *Record) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Get returns the raw value of a field, or "" when it is absent.
func (r *Record) Get(field string) interface{} {
	v, ok := r.values[field]
	if !ok {
		return ""
	}
	return v
}

// Columns returns the field names in insertion order.
func (r *Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Clone returns a copy that shares no mutable state with r.
func (r *Record) Clone() *Record {
	c := &Record{
		columns: r.Columns(),
		values:  make(map[string]interface{}, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// IsEmpty reports whether the field is absent, nil or blank text.
func (r *Record) IsEmpty(field string) bool {
	v, ok := r.values[field]
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// String renders a field as text.
func (r *Record) String(field string) string {
	return ToString(r.Get(field))
}

// Decimal coerces a field to a decimal; missing or non-numeric values are zero.
func (r *Record) Decimal(field string) decimal.Decimal {
	return ToDecimal(r.Get(field))
}

// Int coerces a field to an integer, truncating any fractional part.
func (r *Record) Int(field string) int64 {
	return ToDecimal(r.Get(field)).IntPart()
}

// OptionalInt returns nil when the field is empty or not numeric.
func (r *Record) OptionalInt(field string) *int64 {
	if r.IsEmpty(field) {
		return nil
	}
	d, ok := parseDecimal(r.Get(field))
	if !ok {
		return nil
	}
	n := d.IntPart()
	return &n
}

// Bool coerces a field to a boolean. Text is parsed with strconv.ParseBool; numbers are
// true when non-zero.
func (r *Record) Bool(field string) bool {
	switch v := r.Get(field).(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		d, ok := parseDecimal(v)
		return ok && !d.IsZero()
	}
}

// ToString renders a generic table value as text. nil becomes "".
func ToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		return strconv.FormatBool(val)
	case decimal.Decimal:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// ToDecimal coerces a generic table value to a decimal.
// Returns decimal.Zero if the value is missing, empty, or not a recognized numeric type.
func ToDecimal(v interface{}) decimal.Decimal {
	d, ok := parseDecimal(v)
	if !ok {
		return decimal.Zero
	}
	return d
}

func parseDecimal(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case float64:
		return decimal.NewFromFloat(val), true
	case float32:
		return decimal.NewFromFloat(float64(val)), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case int32:
		return decimal.NewFromInt(int64(val)), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

// UnionColumns returns every field name used by records, in first-appearance order.
// The first record's fields come first.
func UnionColumns(records []*Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for _, c := range r.columns {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	return cols
}
