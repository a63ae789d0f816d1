package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Value is a decoded JSON value. The set of implementations is closed:
// Null, Bool, Int, Float, String, Array, *Object and Opaque.
type Value interface {
	// Interface returns the Go-native form of the value.
	Interface() any
	json.Marshaler
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	Int    int64
	Float  float64
	String string
	Array  []Value
)

// Opaque wraps a Go value that has no JSON counterpart. It classifies as unknown.
type Opaque struct{ V any }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Int) isValue()     {}
func (Float) isValue()   {}
func (String) isValue()  {}
func (Array) isValue()   {}
func (*Object) isValue() {}
func (Opaque) isValue()  {}

func (Null) Interface() any     { return nil }
func (b Bool) Interface() any   { return bool(b) }
func (i Int) Interface() any    { return int64(i) }
func (f Float) Interface() any  { return float64(f) }
func (s String) Interface() any { return string(s) }
func (o Opaque) Interface() any { return o.V }

func (a Array) Interface() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Interface()
	}
	return out
}

func (Null) MarshalJSON() ([]byte, error)     { return []byte("null"), nil }
func (b Bool) MarshalJSON() ([]byte, error)   { return strconv.AppendBool(nil, bool(b)), nil }
func (i Int) MarshalJSON() ([]byte, error)    { return strconv.AppendInt(nil, int64(i), 10), nil }
func (s String) MarshalJSON() ([]byte, error) { return json.Marshal(string(s)) }
func (o Opaque) MarshalJSON() ([]byte, error) { return json.Marshal(fmt.Sprintf("%v", o.V)) }

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported float value %v", v)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		// Keep the decimal point so the value reads back as a number, not an integer.
		return []byte(strconv.FormatFloat(v, 'f', 1, 64)), nil
	}
	return json.Marshal(v)
}

func (a Array) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Value(a))
}

// Object is a string-keyed mapping that remembers insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Set adds or replaces a field. Replacing keeps the original position.
func (o *Object) Set(key string, v Value) {
	if o.fields == nil {
		o.fields = make(map[string]Value)
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns the field value and whether it is present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns field names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func (o *Object) Interface() any {
	out := make(map[string]any, o.Len())
	if o == nil {
		return out
	}
	for _, k := range o.keys {
		out[k] = o.fields[k].Interface()
	}
	return out
}

func (o *Object) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	if o != nil {
		for i, k := range o.keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := o.fields[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			buf = append(buf, vb...)
		}
	}
	return append(buf, '}'), nil
}

// FromAny converts a Go-native value (as produced by encoding/json or
// yaml.v3 decoding) into a Value. Map keys are sorted because Go maps carry
// no order.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
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
	case uint:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		if t > math.MaxInt64 {
			return Float(t)
		}
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i)
		}
		if f, err := t.Float64(); err == nil {
			return Float(f)
		}
		return String(t.String())
	case string:
		return String(t)
	case []any:
		arr := make(Array, len(t))
		for i, e := range t {
			arr[i] = FromAny(e)
		}
		return arr
	case []string:
		arr := make(Array, len(t))
		for i, e := range t {
			arr[i] = String(e)
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromAny(t[k]))
		}
		return obj
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = e
		}
		return FromAny(m)
	default:
		return Opaque{V: v}
	}
}

// Equal reports whether two values are structurally equal. Int and Float are
// distinct variants and never compare equal to each other.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.Keys() {
			xv, _ := x.Get(k)
			yv, found := y.Get(k)
			if !found || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case Opaque:
		y, ok := b.(Opaque)
		return ok && fmt.Sprint(x.V) == fmt.Sprint(y.V)
	default:
		return a == nil && b == nil
	}
}

// Render returns a compact JSON rendering, falling back to fmt for values
// JSON cannot encode.
func Render(v Value) string {
	if v == nil {
		return "null"
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", v.Interface())
	}
	return string(data)
}
