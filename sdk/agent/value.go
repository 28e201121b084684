package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the JSON shape held by a Value.
type Kind int

const (
	// KindNull is JSON null (and the zero Value).
	KindNull Kind = iota
	// KindString is a JSON string.
	KindString
	// KindNumber is a JSON number.
	KindNumber
	// KindBool is a JSON boolean.
	KindBool
	// KindArray is a JSON array.
	KindArray
	// KindObject is a JSON object.
	KindObject
)

// Value is a JSON value whose shape is not known statically: tool arguments,
// final-answer state, raw tool results. Unlike map[string]any it is a proper
// tagged union, so payloads can be inspected and re-serialized without loss.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	arr  []Value
	obj  map[string]Value
}

// NullValue returns the JSON null value.
func NullValue() Value { return Value{} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a number Value.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: json.Number(fmt.Sprintf("%g", f))}
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ArrayValue returns an array Value.
func ArrayValue(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue returns an object Value. A nil map yields an empty object.
func ObjectValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, obj: fields}
}

// ParseValue decodes raw JSON into a Value.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("parse value: %w", err)
	}
	return fromAny(raw), nil
}

func fromAny(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case string:
		return Value{kind: KindString, str: v}
	case json.Number:
		return Value{kind: KindNumber, num: v}
	case bool:
		return Value{kind: KindBool, b: v}
	case []any:
		arr := make([]Value, len(v))
		for i, el := range v {
			arr[i] = fromAny(el)
		}
		return Value{kind: KindArray, arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(v))
		for k, el := range v {
			obj[k] = fromAny(el)
		}
		return Value{kind: KindObject, obj: obj}
	default:
		// Only reachable for exotic inputs; encode through JSON text.
		b, err := json.Marshal(v)
		if err != nil {
			return Value{}
		}
		parsed, err := ParseValue(b)
		if err != nil {
			return Value{}
		}
		return parsed
	}
}

// Kind returns the JSON kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string content, or "" for non-strings.
func (v Value) Str() string { return v.str }

// Float returns the numeric content, or 0 for non-numbers.
func (v Value) Float() float64 {
	f, err := v.num.Float64()
	if err != nil {
		return 0
	}
	return f
}

// Int returns the numeric content truncated to int64, or 0 for non-numbers.
func (v Value) Int() int64 {
	if i, err := v.num.Int64(); err == nil {
		return i
	}
	return int64(v.Float())
}

// Bool returns the boolean content, or false for non-booleans.
func (v Value) Bool() bool { return v.b }

// Items returns the array elements, or nil for non-arrays.
func (v Value) Items() []Value { return v.arr }

// Len returns the element count for arrays and the field count for objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Field returns the named object field.
func (v Value) Field(key string) (Value, bool) {
	f, ok := v.obj[key]
	return f, ok
}

// First returns the first field present among keys, in priority order.
func (v Value) First(keys ...string) (Value, bool) {
	for _, k := range keys {
		if f, ok := v.obj[k]; ok {
			return f, true
		}
	}
	return Value{}, false
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if v.num == "" {
			return []byte("0"), nil
		}
		return []byte(v.num), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("marshal value: unknown kind %d", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
