package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Value is an explicit tagged union over the shapes a recovered document can
// take: null, boolean, number, string, object, or array. Downstream consumers
// switch on Kind rather than type-asserting on interface{}.
type Value struct {
	kind Kind
	b    bool
	n    json.Number
	s    string
	o    map[string]Value
	a    []Value
}

// Null returns the null Value. The zero Value is also null.
func Null() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue wraps a JSON number kept in its textual form.
func NumberValue(n json.Number) Value { return Value{kind: KindNumber, n: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ObjectValue wraps a key-to-Value mapping. Key insertion order is not preserved.
func ObjectValue(o map[string]Value) Value { return Value{kind: KindObject, o: o} }

// ArrayValue wraps an ordered sequence of Values.
func ArrayValue(a []Value) Value { return Value{kind: KindArray, a: a} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsObject reports whether the value is a mapping.
func (v Value) IsObject() bool { return v.kind == KindObject }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload. Valid only for KindNumber.
func (v Value) Number() json.Number { return v.n }

// Text returns the string payload. Valid only for KindString.
func (v Value) Text() string { return v.s }

// Object returns the mapping payload. Valid only for KindObject.
func (v Value) Object() map[string]Value { return v.o }

// Array returns the sequence payload. Valid only for KindArray.
func (v Value) Array() []Value { return v.a }

// Get looks up a key in an object value. The second return is false when the
// value is not an object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.o[key]
	return val, ok
}

// MarshalJSON serializes the value back to standard JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toAny())
}

func (v Value) toAny() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindObject:
		out := make(map[string]interface{}, len(v.o))
		for k, val := range v.o {
			out[k] = val.toAny()
		}
		return out
	case KindArray:
		out := make([]interface{}, len(v.a))
		for i, val := range v.a {
			out[i] = val.toAny()
		}
		return out
	default:
		return nil
	}
}

// ParseStrict parses s as exactly one JSON document: a single value with
// nothing but whitespace around it. Numbers keep their textual form.
func ParseStrict(s string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("decode: %w", err)
	}

	// Anything after the first value makes the document non-strict.
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("trailing data after JSON value")
	}

	return fromAny(raw), nil
}

func fromAny(raw interface{}) Value {
	switch t := raw.(type) {
	case bool:
		return BoolValue(t)
	case json.Number:
		return NumberValue(t)
	case string:
		return StringValue(t)
	case map[string]interface{}:
		obj := make(map[string]Value, len(t))
		for k, val := range t {
			obj[k] = fromAny(val)
		}
		return ObjectValue(obj)
	case []interface{}:
		arr := make([]Value, len(t))
		for i, val := range t {
			arr[i] = fromAny(val)
		}
		return ArrayValue(arr)
	default:
		return Null()
	}
}
