// Package value is the generic, order-preserving parse result of a sample
// document.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant of a Value.
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
	}
	return "invalid"
}

// Number is a numeric literal. IsInt is set when the literal has no
// fraction or exponent and fits in 64 bits.
type Number struct {
	Literal string
	IsInt   bool
	Float   float64
}

// ParseNumber classifies a JSON/YAML number literal.
func ParseNumber(literal string) Number {
	n := Number{Literal: literal}
	n.Float, _ = strconv.ParseFloat(literal, 64)
	if strings.ContainsAny(literal, ".eE") {
		return n
	}
	if _, err := strconv.ParseInt(literal, 10, 64); err == nil {
		n.IsInt = true
	} else if _, err := strconv.ParseUint(literal, 10, 64); err == nil {
		n.IsInt = true
	}
	return n
}

// Value is a Null, Bool, Number, String, Array or Object. The zero value
// is Null.
type Value struct {
	kind   Kind
	b      bool
	num    Number
	str    string
	arr    []Value
	object *orderedmap.OrderedMap[string, Value]
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberOf returns a numeric value.
func NumberOf(n Number) Value { return Value{kind: KindNumber, num: n} }

// Int returns an integral numeric value.
func Int(i int64) Value {
	return NumberOf(Number{Literal: strconv.FormatInt(i, 10), IsInt: true, Float: float64(i)})
}

// Float returns a fractional numeric value.
func Float(f float64) Value {
	return NumberOf(Number{Literal: strconv.FormatFloat(f, 'g', -1, 64), Float: f})
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an array value.
func Array(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// Member is a key/value pair for building objects.
type Member struct {
	Key   string
	Value Value
}

// Object returns an object value with members in the given order. A
// repeated key keeps its first position and its last value.
func Object(members ...Member) Value {
	om := orderedmap.New[string, Value]()
	for _, m := range members {
		om.Set(m.Key, m.Value)
	}
	return Value{kind: KindObject, object: om}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// BoolValue returns the payload of a Bool.
func (v Value) BoolValue() bool { return v.b }

// Number returns the payload of a Number.
func (v Value) Number() Number { return v.num }

// StringValue returns the payload of a String.
func (v Value) StringValue() string { return v.str }

// Elems returns the elements of an Array.
func (v Value) Elems() []Value { return v.arr }

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.object.Len()
	}
	return 0
}

// Get returns the object member key.
func (v Value) Get(key string) (Value, bool) {
	if v.object == nil {
		return Value{}, false
	}
	return v.object.Get(key)
}

// Members calls fn for every object member in order until fn returns false.
func (v Value) Members(fn func(key string, val Value) bool) {
	if v.object == nil {
		return
	}
	for pair := v.object.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Lookup resolves pointer segments against v. The segment "-" fans out
// over every array element or object member; a numeric segment indexes an
// array. Segments that do not resolve contribute nothing.
func Lookup(v Value, segments []string) []Value {
	current := []Value{v}
	for _, seg := range segments {
		var next []Value
		for _, c := range current {
			switch c.kind {
			case KindArray:
				if seg == "-" {
					next = append(next, c.arr...)
				} else if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < len(c.arr) {
					next = append(next, c.arr[i])
				}
			case KindObject:
				if seg == "-" {
					c.Members(func(_ string, val Value) bool {
						next = append(next, val)
						return true
					})
				} else if val, ok := c.Get(seg); ok {
					next = append(next, val)
				}
			}
		}
		current = next
	}
	return current
}

// Interface converts v to the plain Go form used by encoding/json and gojq:
// nil, bool, int or float64, string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.num.IsInt {
			if i, err := strconv.ParseInt(v.num.Literal, 10, 64); err == nil && i >= math.MinInt && i <= math.MaxInt {
				return int(i)
			}
			if bi, ok := new(big.Int).SetString(v.num.Literal, 10); ok {
				return bi
			}
		}
		return v.num.Float
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.object.Len())
		v.Members(func(key string, val Value) bool {
			out[key] = val.Interface()
			return true
		})
		return out
	}
	return nil
}

// FromInterface is the inverse of Interface. Map keys are sorted because Go
// maps carry no order. Values of unsupported types become strings.
func FromInterface(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case *big.Int:
		return NumberOf(ParseNumber(t.String()))
	case float64:
		return Float(t)
	case json.Number:
		return NumberOf(ParseNumber(t.String()))
	case string:
		return String(t)
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromInterface(e)
		}
		return Array(elems...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			members[i] = Member{Key: k, Value: FromInterface(t[k])}
		}
		return Object(members...)
	}
	return String(fmt.Sprint(x))
}
