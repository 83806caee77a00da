// Package data defines the row-keyed data model shared by the
// classification, search, and alignment engines.
package data

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// Value is a tagged variant for loosely-structured external data
// (JSON payloads, delimited-text cells). External input is decoded
// into Values at the ingestion boundary and converted eagerly into
// the typed structures the engines consume.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

// Null is the zero Value.
var Null = Value{}

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array constructs an array Value.
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

// Object constructs an object Value.
func Object(m map[string]Value) Value { return Value{kind: KindObject, obj: m} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the value as a string. Numbers and booleans are
// formatted; arrays and objects yield "".
func (v Value) Str() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Float returns the value as a float64 and whether the conversion
// succeeded. Numeric strings are parsed; empty strings, booleans,
// arrays, objects, and NaN all fail.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) {
			return 0, false
		}
		return v.num, true
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int returns the value as an int, accepting integers, floats, and
// numeric strings. Used for UniProt positions, which arrive in all
// three forms depending on the API version.
func (v Value) Int() (int, bool) {
	f, ok := v.Float()
	if !ok {
		return 0, false
	}
	return int(f), true
}

// TruthyBool returns the boolean interpretation of the value.
func (v Value) TruthyBool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return strings.EqualFold(v.str, "true")
	case KindNumber:
		return v.num != 0
	default:
		return false
	}
}

// Items returns the array elements, or nil for non-arrays.
func (v Value) Items() []Value { return v.arr }

// Field returns the named object field, or Null.
func (v Value) Field(name string) Value {
	if v.kind != KindObject {
		return Null
	}
	return v.obj[name]
}

// Fields returns the object map, or nil for non-objects.
func (v Value) Fields() map[string]Value { return v.obj }

// FromAny converts a decoded JSON value (any of the types produced by
// encoding/json into interface{}) to a Value.
func FromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null
	case string:
		return String(x)
	case float64:
		return Number(x)
	case bool:
		return Bool(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Number(f)
	case []any:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = FromAny(e)
		}
		return Value{kind: KindArray, arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, e := range x {
			obj[k] = FromAny(e)
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return String(fmt.Sprint(x))
	}
}

// DecodeJSON parses raw JSON into a Value.
func DecodeJSON(raw []byte) (Value, error) {
	var any any
	if err := json.Unmarshal(raw, &any); err != nil {
		return Null, fmt.Errorf("decode value: %w", err)
	}
	return FromAny(any), nil
}

// ToAny converts a Value back to the plain types encoding/json accepts.
func (v Value) ToAny() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.ToAny()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(raw []byte) error {
	parsed, err := DecodeJSON(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
