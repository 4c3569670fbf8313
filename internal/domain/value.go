package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the shape of a Value.
type Kind int

// The closed set of shapes a Value can take. Model replies are parsed into
// this union rather than inspected dynamically, so transforms over them can
// be total by construction.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value is a closed representation of a JSON document. The zero Value is
// the JSON null. Values are treated as immutable: transforms return new
// trees and never modify their receiver.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	obj  map[string]Value
	arr  []Value
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value. The textual form is preserved so that
// round-tripping through JSON does not reformat numbers.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Object returns an object value holding the given members.
func Object(members map[string]Value) Value {
	return Value{kind: KindObject, obj: members}
}

// Array returns an array value holding the given elements.
func Array(elems []Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string payload. It is only meaningful for KindString.
func (v Value) Str() string {
	return v.str
}

// Members returns the object members, or nil for non-objects.
func (v Value) Members() map[string]Value {
	return v.obj
}

// Elems returns the array elements, or nil for non-arrays.
func (v Value) Elems() []Value {
	return v.arr
}

// UnmarshalJSON decodes arbitrary JSON into the closed union.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	decoded, err := fromInterface(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalJSON encodes the value back to JSON. Object member order follows
// encoding/json's sorted-key convention.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.num), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindObject:
		return json.Marshal(v.obj)
	case KindArray:
		// Preserve the distinction between an empty array and null.
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// Sanitize returns a copy of the tree in which every null leaf has been
// replaced by the empty string. Object keys and array order are preserved,
// and the receiver is left untouched. Applying Sanitize twice yields the
// same tree as applying it once.
func (v Value) Sanitize() Value {
	switch v.kind {
	case KindNull:
		return String("")
	case KindObject:
		members := make(map[string]Value, len(v.obj))
		for k, member := range v.obj {
			members[k] = member.Sanitize()
		}
		return Object(members)
	case KindArray:
		elems := make([]Value, len(v.arr))
		for i, elem := range v.arr {
			elems[i] = elem.Sanitize()
		}
		return Array(elems)
	default:
		return v
	}
}

func fromInterface(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case map[string]interface{}:
		members := make(map[string]Value, len(t))
		for k, member := range t {
			decoded, err := fromInterface(member)
			if err != nil {
				return Value{}, err
			}
			members[k] = decoded
		}
		return Object(members), nil
	case []interface{}:
		elems := make([]Value, len(t))
		for i, elem := range t {
			decoded, err := fromInterface(elem)
			if err != nil {
				return Value{}, err
			}
			elems[i] = decoded
		}
		return Array(elems), nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value of type %T", raw)
	}
}
