package table

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Value represents a typed cell value with an explicit missing sentinel.
// A missing token is distinct from an empty-string token: empty strings
// are normalized to missing at construction time.
type Value struct {
	Type         ValueType  `json:"type"`
	StringVal    *string    `json:"string_val,omitempty"`
	NumericVal   *float64   `json:"numeric_val,omitempty"`
	TimestampVal *time.Time `json:"timestamp_val,omitempty"`
	IsMissing    bool       `json:"is_missing"`
}

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString    ValueType = "string"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeMissing   ValueType = "missing"
)

// NewStringValue creates a string value; empty strings become missing
func NewStringValue(s string) Value {
	if s == "" {
		return Missing()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewTimestampValue creates a timestamp value
func NewTimestampValue(t time.Time) Value {
	return Value{Type: ValueTypeTimestamp, TimestampVal: &t}
}

// Missing creates the missing-value sentinel
func Missing() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// String returns the string representation of the value
func (v Value) String() string {
	switch v.Type {
	case ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
		}
	case ValueTypeTimestamp:
		if v.TimestampVal != nil {
			return v.TimestampVal.Format(time.RFC3339)
		}
	case ValueTypeMissing:
		return ""
	}
	return "<invalid>"
}

// Float returns the numeric payload, parsing string values on demand.
// The second return is false for missing, unparseable, or non-finite
// values: "NaN" and "Inf" cells in exported CSVs mark absent data, not
// usable numbers.
func (v Value) Float() (float64, bool) {
	switch v.Type {
	case ValueTypeNumeric:
		if v.NumericVal != nil && isFinite(*v.NumericVal) {
			return *v.NumericVal, true
		}
	case ValueTypeString:
		if v.StringVal != nil {
			if f, err := strconv.ParseFloat(*v.StringVal, 64); err == nil && isFinite(f) {
				return f, true
			}
		}
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Time returns the timestamp payload if present
func (v Value) Time() (time.Time, bool) {
	if v.Type == ValueTypeTimestamp && v.TimestampVal != nil {
		return *v.TimestampVal, true
	}
	return time.Time{}, false
}

// Equal reports payload equality, treating all missing values as equal
func (v Value) Equal(o Value) bool {
	if v.IsMissing || o.IsMissing {
		return v.IsMissing == o.IsMissing
	}
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case ValueTypeString:
		return derefStr(v.StringVal) == derefStr(o.StringVal)
	case ValueTypeNumeric:
		return derefFloat(v.NumericVal) == derefFloat(o.NumericVal)
	case ValueTypeTimestamp:
		if v.TimestampVal == nil || o.TimestampVal == nil {
			return v.TimestampVal == o.TimestampVal
		}
		return v.TimestampVal.Equal(*o.TimestampVal)
	}
	return false
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// GoString aids test failure output
func (v Value) GoString() string {
	if v.IsMissing {
		return "table.Missing()"
	}
	return fmt.Sprintf("table.Value(%s:%s)", v.Type, v.String())
}
