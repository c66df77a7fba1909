package model

import "encoding/json"

// RawKey is the single key of the fallback wrapper produced when no structured
// object can be recovered from model output.
const RawKey = "raw"

// Record is the structured record recovered from model output. A Record is
// always a mapping at the top level: either a genuine object parsed out of the
// response, or the {"raw": <original text>} wrapper.
type Record struct {
	v Value
}

// RecordOf wraps v as a Record. It returns false when v is not an object.
func RecordOf(v Value) (Record, bool) {
	if !v.IsObject() {
		return Record{}, false
	}
	return Record{v: v}, true
}

// RawRecord builds the fallback wrapper around unrecoverable model output.
// The original text is preserved verbatim.
func RawRecord(raw string) Record {
	return Record{v: ObjectValue(map[string]Value{RawKey: StringValue(raw)})}
}

// Get looks up a top-level key.
func (r Record) Get(key string) (Value, bool) { return r.v.Get(key) }

// Value returns the underlying object value.
func (r Record) Value() Value { return r.v }

// IsRawWrapper reports whether the record is the fallback wrapper: exactly one
// key, "raw", holding a string.
func (r Record) IsRawWrapper() bool {
	obj := r.v.Object()
	if len(obj) != 1 {
		return false
	}
	raw, ok := obj[RawKey]
	return ok && raw.Kind() == KindString
}

// MarshalJSON serializes the underlying object.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.v)
}
