// Package jsonvalue provides a closed, tagged representation of JSON values.
//
// Field maps that travel through a global ID are decoded into Value instead of
// interface{} so that the encode/decode round trip stays type safe: numbers keep
// their literal text, objects and arrays keep their element kinds.
package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

var (
	ErrKindMismatch    = errors.New("json value kind mismatch")
	ErrNotObject       = errors.New("json value is not an object")
	ErrUnsupportedType = errors.New("unsupported type for json value")
)

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	text    string
	array   []Value
	object  map[string]Value
}

func NullValue() Value {
	return Value{}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// NumberValue keeps the literal text of n.
func NumberValue(n json.Number) Value {
	return Value{kind: KindNumber, text: n.String()}
}

func IntValue(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

func FloatValue(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, array: items}
}

func ObjectValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, object: fields}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.boolean, nil
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.text, nil
}

func (v Value) AsNumber() (json.Number, error) {
	if v.kind != KindNumber {
		return "", v.mismatch(KindNumber)
	}
	return json.Number(v.text), nil
}

func (v Value) Int64() (int64, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	return n.Int64()
}

func (v Value) Float64() (float64, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	return n.Float64()
}

func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.array, nil
}

func (v Value) AsObject() (map[string]Value, error) {
	if v.kind != KindObject {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, v.kind)
	}
	return v.object, nil
}

// Text returns the scalar's literal text: the string itself, the number
// literal, "true"/"false" or "null". Arrays and objects are rendered as
// canonical JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNull:
		return "null"
	default:
		out, err := Canonical.Marshal(v)
		if err != nil {
			return ""
		}
		return string(out)
	}
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, want, v.kind)
}

// Interface converts v into the plain Go representation used by JSON codecs:
// nil, bool, json.Number, string, []interface{} or map[string]interface{}.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return json.Number(v.text)
	case KindString:
		return v.text
	case KindArray:
		out := make([]interface{}, len(v.array))
		for i := range v.array {
			out[i] = v.array[i].Interface()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.object))
		for key, field := range v.object {
			out[key] = field.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromInterface converts the output of a generic JSON decoder, or a literal Go
// value built the same way, into a Value.
func FromInterface(in interface{}) (Value, error) {
	switch t := in.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case float64:
		return FloatValue(t), nil
	case float32:
		return FloatValue(float64(t)), nil
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint:
		return Value{kind: KindNumber, text: strconv.FormatUint(uint64(t), 10)}, nil
	case uint8:
		return IntValue(int64(t)), nil
	case uint16:
		return IntValue(int64(t)), nil
	case uint32:
		return IntValue(int64(t)), nil
	case uint64:
		return Value{kind: KindNumber, text: strconv.FormatUint(t, 10)}, nil
	case []interface{}:
		items := make([]Value, len(t))
		for i := range t {
			item, err := FromInterface(t[i])
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return ArrayValue(items...), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for key, raw := range t {
			field, err := FromInterface(raw)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", key, err)
			}
			fields[key] = field
		}
		return ObjectValue(fields), nil
	case map[string]Value:
		return ObjectValue(t), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, in)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return Canonical.Marshal(v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := Canonical.Unmarshal(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
