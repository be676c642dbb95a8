// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson

import (
	"fmt"
	"sort"
)

// A Kind is the tag of a Value.
type Kind int

// Constants defining the valid Kind values.
const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindStr = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "boolean",
	KindInt:     "integer",
	KindFloat:   "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStr) {
		return kindStr[KindInvalid]
	}
	return kindStr[k]
}

// A Value is a fully materialized JSON value of arbitrary shape. Use a Value
// when the structure of the input is unknown or only partially known; when
// the input may exceed available memory, use the streaming traversal methods
// of Reader instead.
//
// Every Value knows how to encode itself, so a Value satisfies StreamEncoder.
type Value interface {
	Kind() Kind
	EncodeStream(w *Writer) error
}

// Null represents the JSON null constant.
type Null struct{}

// A Bool is a JSON true or false constant.
type Bool bool

// An Int is a JSON number with no fractional part, as a 64-bit signed value.
type Int int64

// A Float is a JSON number with a fractional part.
type Float float64

// A String is a JSON string value, already unescaped.
type String string

// An Array is an ordered sequence of values.
type Array []Value

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Object is an ordered sequence of key-value members. Duplicate keys are
// preserved in arrival order, not deduplicated.
type Object []Member

// Kind satisfies the Value interface.
func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for i, m := range o {
		if m.Key == key {
			return &o[i]
		}
	}
	return nil
}

// AsBool converts v to a plain bool, or reports a type mismatch.
func AsBool(v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, typeError(KindBool, v.Kind())
	}
	return bool(b), nil
}

// AsInt converts v to an int64, or reports a type mismatch.
func AsInt(v Value) (int64, error) {
	z, ok := v.(Int)
	if !ok {
		return 0, typeError(KindInt, v.Kind())
	}
	return int64(z), nil
}

// AsFloat converts v to a float64, or reports a type mismatch. An Int
// converts by widening, since the generic numeric path tags integral input
// as Int even where the caller wanted a number.
func AsFloat(v Value) (float64, error) {
	switch t := v.(type) {
	case Float:
		return float64(t), nil
	case Int:
		return float64(t), nil
	}
	return 0, typeError(KindFloat, v.Kind())
}

// AsString converts v to a plain string, or reports a type mismatch.
func AsString(v Value) (string, error) {
	s, ok := v.(String)
	if !ok {
		return "", typeError(KindString, v.Kind())
	}
	return string(s), nil
}

// Path traverses a sequence of object keys and array indices starting from v
// and returns the value reached. A string element selects the first member
// of an Object with that key; an int element selects an element of an Array,
// counting from the end if negative. An empty path returns v.
func Path(v Value, path ...any) (Value, error) {
	for _, p := range path {
		switch t := p.(type) {
		case string:
			obj, ok := v.(Object)
			if !ok {
				return nil, fmt.Errorf("path %q: %w", t, typeError(KindObject, v.Kind()))
			}
			m := obj.Find(t)
			if m == nil {
				return nil, fmt.Errorf("path %q: key not found", t)
			}
			v = m.Value
		case int:
			arr, ok := v.(Array)
			if !ok {
				return nil, fmt.Errorf("path %d: %w", t, typeError(KindArray, v.Kind()))
			}
			if t < 0 {
				t += len(arr)
			}
			if t < 0 || t >= len(arr) {
				return nil, fmt.Errorf("path %d: index out of range for %d elements", t, len(arr))
			}
			v = arr[t]
		default:
			return nil, fmt.Errorf("invalid path element %T", p)
		}
	}
	return v, nil
}

// ToValue converts a plain Go value to a Value. It supports nil, booleans,
// strings, integer and floating types, values that are already a Value, and
// []any and map[string]any compositions of those (map keys are emitted in
// sorted order, since Go maps carry none). ToValue panics if v does not have
// one of these types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		arr := make(Array, len(t))
		for i, elt := range t {
			arr[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := make(Object, len(keys))
		for i, key := range keys {
			obj[i] = Member{Key: key, Value: ToValue(t[key])}
		}
		return obj
	}
	panic(fmt.Sprintf("microjson: cannot convert %T to a Value", v))
}
